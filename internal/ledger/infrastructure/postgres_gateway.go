package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
)

// PostgresGateway stores each user collection as a single JSONB blob keyed by
// "<collection>_<userID>", mirroring the key-value layout of the original
// client-side storage.
type PostgresGateway struct {
	db *sql.DB
}

func NewPostgresGateway(db *sql.DB) (*PostgresGateway, error) {
	g := &PostgresGateway{db: db}
	if err := g.ensureSchema(); err != nil {
		return nil, fmt.Errorf("could not prepare user_collections table: %w", err)
	}
	return g, nil
}

func (g *PostgresGateway) ensureSchema() error {
	_, err := g.db.Exec(`
		CREATE TABLE IF NOT EXISTS user_collections (
			key        TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			collection TEXT NOT NULL,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS user_collections_user_id_idx ON user_collections (user_id);
	`)
	return err
}

func (g *PostgresGateway) LoadAll(ctx context.Context, userID string) (map[domain.Collection]json.RawMessage, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT collection, data FROM user_collections WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load collections: %w", err)
	}
	defer rows.Close()

	blobs := make(map[domain.Collection]json.RawMessage)
	for rows.Next() {
		var collection string
		var data []byte
		if err := rows.Scan(&collection, &data); err != nil {
			return nil, fmt.Errorf("could not scan collection row: %w", err)
		}
		blobs[domain.Collection(collection)] = json.RawMessage(data)
	}
	return blobs, rows.Err()
}

func (g *PostgresGateway) SaveCollection(ctx context.Context, userID string, collection domain.Collection, data json.RawMessage) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO user_collections (key, user_id, collection, data, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (key) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW()
	`, collection.Key(userID), userID, string(collection), []byte(data))
	if err != nil {
		return fmt.Errorf("could not save %s: %w", collection.Key(userID), err)
	}
	return nil
}
