package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bmbat/go_backend/internal/domain/branding"
)

// LoadBranding returns the stored company identity, or the default one
// when nothing has been saved yet.
func (db *DB) LoadBranding(ctx context.Context) (branding.Branding, error) {
	var raw []byte
	err := db.Pool.QueryRow(ctx, `SELECT data FROM branding WHERE singleton`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return branding.Default(), nil
	}
	if err != nil {
		return branding.Branding{}, fmt.Errorf("load branding: %w", err)
	}
	var b branding.Branding
	if err := json.Unmarshal(raw, &b); err != nil {
		return branding.Branding{}, fmt.Errorf("decode branding: %w", err)
	}
	return b, nil
}

func (db *DB) SaveBranding(ctx context.Context, b branding.Branding) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode branding: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO branding (singleton, data) VALUES (TRUE, $1)
		ON CONFLICT (singleton) DO UPDATE SET data = EXCLUDED.data
	`, raw)
	if err != nil {
		return fmt.Errorf("save branding: %w", err)
	}
	return nil
}
