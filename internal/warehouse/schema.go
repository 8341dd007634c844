// Package warehouse is the storage collaborator: it owns the fact/dimension
// schema, loads immutable snapshots for the engine, and materializes report
// result sets. The engine itself never touches the database.
package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the sales warehouse: one fact table, two dimension tables,
// and the derived report views the engine reads. The views attach the
// consumable labels: report_products normalizes the 'n/a' category sentinel
// to NULL, report_customers exposes the externally derived age_group as-is.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS dim_products (
    product_key  INTEGER PRIMARY KEY,
    product_name VARCHAR(120) NOT NULL,
    category     VARCHAR(60),
    subcategory  VARCHAR(60),
    cost         NUMERIC(12,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS dim_customers (
    customer_key INTEGER PRIMARY KEY,
    first_name   VARCHAR(60) NOT NULL,
    last_name    VARCHAR(60) NOT NULL,
    country      VARCHAR(60),
    gender       VARCHAR(10),
    age_group    VARCHAR(20)
);

CREATE TABLE IF NOT EXISTS fact_sales (
    order_number VARCHAR(20) NOT NULL,
    product_key  INTEGER NOT NULL,
    customer_key INTEGER NOT NULL,
    order_date   DATE,
    quantity     INTEGER NOT NULL CHECK (quantity >= 0),
    sales_amount NUMERIC(12,2) NOT NULL CHECK (sales_amount >= 0),
    price        NUMERIC(12,2) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fact_sales_order_date ON fact_sales(order_date);
CREATE INDEX IF NOT EXISTS idx_fact_sales_product ON fact_sales(product_key);
CREATE INDEX IF NOT EXISTS idx_fact_sales_customer ON fact_sales(customer_key);

CREATE OR REPLACE VIEW report_products AS
SELECT product_key,
       product_name,
       CASE WHEN LOWER(category) = 'n/a' THEN NULL ELSE category END AS category,
       subcategory,
       cost
FROM dim_products;

CREATE OR REPLACE VIEW report_customers AS
SELECT customer_key,
       first_name,
       last_name,
       country,
       gender,
       age_group
FROM dim_customers;
`

const dropSchemaSQL = `
DROP VIEW IF EXISTS report_products;
DROP VIEW IF EXISTS report_customers;
DROP TABLE IF EXISTS fact_sales;
DROP TABLE IF EXISTS dim_products;
DROP TABLE IF EXISTS dim_customers;
`

// CreateSchema creates the warehouse tables and report views.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the warehouse tables and report views.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
