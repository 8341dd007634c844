package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescope/salescope/internal/datagen"
	"github.com/salescope/salescope/internal/logging"
)

// SeedConfig controls demo data generation.
type SeedConfig struct {
	Products  int
	Customers int
	Orders    int

	// Seed fixes the random sequence; 0 selects a random seed.
	Seed uint64
}

// DefaultSeedConfig returns a small demo warehouse.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Products:  200,
		Customers: 1000,
		Orders:    20000,
	}
}

// Seeder populates the warehouse with synthetic sales data. The generated
// data intentionally includes the awkward cases the engine must handle:
// orders without a date, fact rows referencing missing dimension keys,
// 'n/a' product categories and customers without an age group.
type Seeder struct {
	faker *datagen.Faker
	cfg   datagen.BatchInsertConfig
}

// NewSeeder creates a seeder for the given configuration.
func NewSeeder(cfg SeedConfig) *Seeder {
	faker := datagen.NewFaker()
	if cfg.Seed != 0 {
		faker = datagen.NewFakerWithSeed(cfg.Seed)
	}
	return &Seeder{
		faker: faker,
		cfg:   datagen.DefaultBatchConfig(),
	}
}

// Seed generates and inserts the demo data.
func (s *Seeder) Seed(ctx context.Context, pool *pgxpool.Pool, cfg SeedConfig) error {
	logging.Info().
		Int("products", cfg.Products).
		Int("customers", cfg.Customers).
		Int("orders", cfg.Orders).
		Msg("Seeding warehouse")

	if err := s.seedProducts(ctx, pool, cfg.Products); err != nil {
		return fmt.Errorf("failed to seed dim_products: %w", err)
	}
	if err := s.seedCustomers(ctx, pool, cfg.Customers); err != nil {
		return fmt.Errorf("failed to seed dim_customers: %w", err)
	}
	if err := s.seedFacts(ctx, pool, cfg); err != nil {
		return fmt.Errorf("failed to seed fact_sales: %w", err)
	}
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context, pool *pgxpool.Pool, count int) error {
	progress := datagen.NewProgressReporter("dim_products", count, s.cfg.ProgressInterval)
	batch := make([]string, 0, s.cfg.BatchSize)

	for key := 1; key <= count; key++ {
		category := s.faker.Category()
		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', '%s', %.2f)",
			key,
			escape(s.faker.ProductName()),
			escape(category),
			escape(s.faker.Subcategory(category)),
			s.faker.Price(2, 800),
		))
		if len(batch) >= s.cfg.BatchSize {
			if err := insertValues(ctx, pool, "dim_products",
				"(product_key, product_name, category, subcategory, cost)", batch); err != nil {
				return err
			}
			progress.Update(len(batch))
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := insertValues(ctx, pool, "dim_products",
			"(product_key, product_name, category, subcategory, cost)", batch); err != nil {
			return err
		}
		progress.Update(len(batch))
	}
	progress.Done()
	return nil
}

func (s *Seeder) seedCustomers(ctx context.Context, pool *pgxpool.Pool, count int) error {
	progress := datagen.NewProgressReporter("dim_customers", count, s.cfg.ProgressInterval)
	batch := make([]string, 0, s.cfg.BatchSize)

	for key := 1; key <= count; key++ {
		ageGroup := "NULL"
		if ag := s.faker.AgeGroup(); ag != "" {
			ageGroup = "'" + escape(ag) + "'"
		}
		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', '%s', '%s', %s)",
			key,
			escape(s.faker.FirstName()),
			escape(s.faker.LastName()),
			escape(s.faker.Country()),
			s.faker.Gender(),
			ageGroup,
		))
		if len(batch) >= s.cfg.BatchSize {
			if err := insertValues(ctx, pool, "dim_customers",
				"(customer_key, first_name, last_name, country, gender, age_group)", batch); err != nil {
				return err
			}
			progress.Update(len(batch))
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := insertValues(ctx, pool, "dim_customers",
			"(customer_key, first_name, last_name, country, gender, age_group)", batch); err != nil {
			return err
		}
		progress.Update(len(batch))
	}
	progress.Done()
	return nil
}

func (s *Seeder) seedFacts(ctx context.Context, pool *pgxpool.Pool, cfg SeedConfig) error {
	progress := datagen.NewProgressReporter("fact_sales", cfg.Orders, s.cfg.ProgressInterval)
	batch := make([]string, 0, s.cfg.BatchSize)

	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	rows := 0
	for order := 1; order <= cfg.Orders; order++ {
		orderNumber := datagen.OrderNumber(order)
		customerKey := s.faker.Int(1, cfg.Customers)

		orderDate := "'" + s.faker.DateRange(start, end).Format("2006-01-02") + "'"
		// Roughly 1% of source orders arrive without a date.
		if s.faker.Int(1, 100) == 1 {
			orderDate = "NULL"
		}

		lineItems := s.faker.Int(1, 4)
		for line := 0; line < lineItems; line++ {
			productKey := s.faker.Int(1, cfg.Products)
			// A sliver of facts reference retired product keys with no
			// dimension row; the engine keeps them via the outer join.
			if s.faker.Int(1, 200) == 1 {
				productKey = cfg.Products + s.faker.Int(1, 50)
			}

			quantity := s.faker.Int(1, 5)
			price := s.faker.Price(2, 900)
			batch = append(batch, fmt.Sprintf("('%s', %d, %d, %s, %d, %.2f, %.2f)",
				orderNumber, productKey, customerKey, orderDate,
				quantity, float64(quantity)*price, price,
			))
			rows++
			if len(batch) >= s.cfg.BatchSize {
				if err := insertValues(ctx, pool, "fact_sales",
					"(order_number, product_key, customer_key, order_date, quantity, sales_amount, price)", batch); err != nil {
					return err
				}
				progress.Update(len(batch))
				batch = batch[:0]
			}
		}
	}
	if len(batch) > 0 {
		if err := insertValues(ctx, pool, "fact_sales",
			"(order_number, product_key, customer_key, order_date, quantity, sales_amount, price)", batch); err != nil {
			return err
		}
		progress.Update(len(batch))
	}
	progress.Done()

	logging.Info().Int("fact_rows", rows).Msg("Seed complete")
	return nil
}

func insertValues(ctx context.Context, pool *pgxpool.Pool, table, columns string, values []string) error {
	sql := fmt.Sprintf("INSERT INTO %s %s VALUES %s", table, columns, strings.Join(values, ", "))
	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
