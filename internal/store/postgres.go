package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const collectionsSchema = `CREATE TABLE IF NOT EXISTS record_collections (
	name       TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps one JSONB row per collection in record_collections.
type PostgresStore struct {
	db *sqlx.DB
}

var _ RecordStore = (*PostgresStore)(nil)

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, collectionsSchema); err != nil {
		return fmt.Errorf("create record_collections: %w", err)
	}
	return nil
}

type collectionRow struct {
	Name    string `db:"name"`
	Payload []byte `db:"payload"`
}

func (p *PostgresStore) Get(ctx context.Context, collection string) (json.RawMessage, error) {
	var row collectionRow
	query := `SELECT name, payload FROM record_collections WHERE name = $1`
	err := p.db.GetContext(ctx, &row, query, collection)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", collection, err)
	}
	return row.Payload, nil
}

func (p *PostgresStore) Set(ctx context.Context, collection string, payload json.RawMessage) error {
	query := `INSERT INTO record_collections (name, payload, updated_at)
	VALUES (:name, :payload, now())
	ON CONFLICT (name) DO UPDATE SET
		payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at`

	// lib/pq sends []byte as bytea, so the payload goes over as text.
	args := map[string]any{"name": collection, "payload": string(payload)}
	if _, err := p.db.NamedExecContext(ctx, query, args); err != nil {
		return fmt.Errorf("set collection %s: %w", collection, err)
	}
	return nil
}

func (p *PostgresStore) Clear(ctx context.Context, collection string) error {
	query := `DELETE FROM record_collections WHERE name = $1`
	if _, err := p.db.ExecContext(ctx, query, collection); err != nil {
		return fmt.Errorf("clear collection %s: %w", collection, err)
	}
	return nil
}
