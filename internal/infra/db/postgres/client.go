package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

func New(dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	db := &DB{Pool: pool}
	if err := db.initSchema(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) initSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			id       TEXT PRIMARY KEY,
			position INT  NOT NULL,
			doc      JSONB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS branding (
			singleton BOOL PRIMARY KEY DEFAULT TRUE,
			data      JSONB NOT NULL
		);
	`)
	return err
}

func (db *DB) Close() { db.Pool.Close() }
