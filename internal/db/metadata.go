package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/pkg/version"
)

const metadataTable = "salescope_metadata"

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS salescope_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SaveSeedMetadata records seed provenance after the warehouse is seeded.
func SaveSeedMetadata(ctx context.Context, pool *pgxpool.Pool, products, customers, orders int) error {
	return saveMetadata(ctx, pool, map[string]string{
		"version":   version.Short(),
		"seeded_at": time.Now().UTC().Format(time.RFC3339),
		"products":  fmt.Sprintf("%d", products),
		"customers": fmt.Sprintf("%d", customers),
		"orders":    fmt.Sprintf("%d", orders),
	})
}

// SaveRefreshMetadata records when reports were last recomputed.
func SaveRefreshMetadata(ctx context.Context, pool *pgxpool.Pool, reportsRun int) error {
	return saveMetadata(ctx, pool, map[string]string{
		"version":      version.Short(),
		"refreshed_at": time.Now().UTC().Format(time.RFC3339),
		"reports_run":  fmt.Sprintf("%d", reportsRun),
	})
}

func saveMetadata(ctx context.Context, pool *pgxpool.Pool, metadata map[string]string) error {
	if _, err := pool.Exec(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	for key, value := range metadata {
		_, err := pool.Exec(ctx, `
            INSERT INTO salescope_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().Int("keys", len(metadata)).Msg("Saved metadata")
	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, pool *pgxpool.Pool, key string) (string, error) {
	var value string
	err := pool.QueryRow(ctx, `
        SELECT value FROM salescope_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, `SELECT key, value FROM salescope_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}
