package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescope/salescope/internal/engine"
	"github.com/salescope/salescope/internal/logging"
)

// LoadSnapshot reads the fact table and both report views into an immutable
// in-memory snapshot. It performs read-only scans; every report computed
// from the returned snapshot sees the same data.
func LoadSnapshot(ctx context.Context, pool *pgxpool.Pool) (*engine.Snapshot, error) {
	snap := &engine.Snapshot{}

	if err := loadProducts(ctx, pool, snap); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if err := loadCustomers(ctx, pool, snap); err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	if err := loadFacts(ctx, pool, snap); err != nil {
		return nil, fmt.Errorf("failed to load facts: %w", err)
	}

	logging.Debug().
		Int("facts", len(snap.Facts)).
		Int("products", len(snap.Products)).
		Int("customers", len(snap.Customers)).
		Msg("Loaded warehouse snapshot")

	return snap, nil
}

func loadProducts(ctx context.Context, pool *pgxpool.Pool, snap *engine.Snapshot) error {
	rows, err := pool.Query(ctx, `
        SELECT product_key, product_name, category, subcategory, cost
        FROM report_products
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p engine.Product
		var category, subcategory *string
		if err := rows.Scan(&p.Key, &p.Name, &category, &subcategory, &p.Cost); err != nil {
			return err
		}
		if category != nil {
			p.Category = *category
		}
		if subcategory != nil {
			p.Subcategory = *subcategory
		}
		snap.Products = append(snap.Products, p)
	}
	return rows.Err()
}

func loadCustomers(ctx context.Context, pool *pgxpool.Pool, snap *engine.Snapshot) error {
	rows, err := pool.Query(ctx, `
        SELECT customer_key, first_name, last_name, country, gender, age_group
        FROM report_customers
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c engine.Customer
		var country, gender, ageGroup *string
		if err := rows.Scan(&c.Key, &c.FirstName, &c.LastName, &country, &gender, &ageGroup); err != nil {
			return err
		}
		if country != nil {
			c.Country = *country
		}
		if gender != nil {
			c.Gender = *gender
		}
		if ageGroup != nil {
			c.AgeGroup = *ageGroup
		}
		snap.Customers = append(snap.Customers, c)
	}
	return rows.Err()
}

func loadFacts(ctx context.Context, pool *pgxpool.Pool, snap *engine.Snapshot) error {
	rows, err := pool.Query(ctx, `
        SELECT order_number, product_key, customer_key, order_date,
               quantity, sales_amount, price
        FROM fact_sales
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f engine.FactRow
		var orderDate *time.Time
		if err := rows.Scan(&f.OrderNumber, &f.ProductKey, &f.CustomerKey,
			&orderDate, &f.Quantity, &f.SalesAmount, &f.Price); err != nil {
			return err
		}
		f.OrderDate = orderDate
		snap.Facts = append(snap.Facts, f)
	}
	return rows.Err()
}
