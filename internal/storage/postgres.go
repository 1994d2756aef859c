package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresConfig holds connection settings for the Postgres backend.
type PostgresConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	MaxConnections  int
	SSLMode         string
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode,
	)
}

// PostgresBackend stores documents as rows in a single table, keyed by
// document name. The JSON payload carries the same logical shape as the
// file backend so state can be moved between the two.
type PostgresBackend struct {
	db *sql.DB
}

func NewPostgresBackend(cfg PostgresConfig) (*PostgresBackend, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 5
	}
	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = 30 * time.Minute
	}
	pingTimeout := cfg.PingTimeout
	if pingTimeout == 0 {
		pingTimeout = 10 * time.Second
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	b := &PostgresBackend{db: db}
	if err := b.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return b, nil
}

func (b *PostgresBackend) migrate(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			name    TEXT PRIMARY KEY,
			doc     JSONB NOT NULL,
			updated TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Save(ctx context.Context, name string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", name, err)
	}

	_, err = b.db.ExecContext(ctx, `
		INSERT INTO documents (name, doc, updated)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated = now()`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", name, err)
	}

	return nil
}

func (b *PostgresBackend) Load(ctx context.Context, name string, into interface{}) error {
	var data []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE name = $1`, name,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load document %s: %w", name, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("%w: document %s: %v", ErrCorrupt, name, err)
	}

	return nil
}

func (b *PostgresBackend) Close() error {
	return b.db.Close()
}
