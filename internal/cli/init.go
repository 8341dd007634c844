package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/db"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/warehouse"
)

var (
	initProducts     int
	initCustomers    int
	initOrders       int
	initRandomSeed   uint64
	initDropExisting bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the warehouse schema and seed demo data",
	Long: `Initialize a PostgreSQL database with the warehouse schema (product and
customer dimensions plus the sales fact table) and fill it with synthetic
sales data. The generated data includes the cases reports must handle:
orders without a date, fact rows referencing missing dimension keys, 'n/a'
product categories and customers without an age group.

Example:
  salescope init --orders 50000 --connection "postgres://..."`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().IntVar(&initProducts, "products", 0,
		"number of products to generate")
	initCmd.Flags().IntVar(&initCustomers, "customers", 0,
		"number of customers to generate")
	initCmd.Flags().IntVar(&initOrders, "orders", 0,
		"number of orders to generate (each order has 1-4 line items)")
	initCmd.Flags().Uint64Var(&initRandomSeed, "random-seed", 0,
		"fix the data generator seed for reproducible data (0 = random)")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing schema before initialization")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initProducts > 0 {
		cfg.Seed.Products = initProducts
	}
	if initCustomers > 0 {
		cfg.Seed.Customers = initCustomers
	}
	if initOrders > 0 {
		cfg.Seed.Orders = initOrders
	}
	if initRandomSeed != 0 {
		cfg.Seed.RandomSeed = initRandomSeed
	}
	if initDropExisting {
		cfg.Seed.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	logging.Info().
		Int("products", cfg.Seed.Products).
		Int("customers", cfg.Seed.Customers).
		Int("orders", cfg.Seed.Orders).
		Msg("Initializing warehouse")

	// Connect to database
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to reseed an already-initialized warehouse unless asked
	existing, err := db.GetMetadataValue(ctx, pool, "seeded_orders")
	if err == nil && existing != "" && !cfg.Seed.DropExisting {
		return fmt.Errorf(
			"warehouse already initialized (%s orders); use --drop-existing to reinitialize",
			existing)
	}

	if cfg.Seed.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := warehouse.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := warehouse.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	seedCfg := warehouse.SeedConfig{
		Products:  cfg.Seed.Products,
		Customers: cfg.Seed.Customers,
		Orders:    cfg.Seed.Orders,
		Seed:      cfg.Seed.RandomSeed,
	}
	seeder := warehouse.NewSeeder(seedCfg)
	if err := seeder.Seed(ctx, pool, seedCfg); err != nil {
		return fmt.Errorf("failed to seed data: %w", err)
	}

	if err := db.SaveSeedMetadata(ctx, pool, seedCfg.Products, seedCfg.Customers, seedCfg.Orders); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().Msg("Warehouse initialized successfully")
	return nil
}
