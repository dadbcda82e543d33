package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"bmbat/go_backend/internal/domain/document"
)

// Load returns the full document list in stored order.
func (db *DB) Load(ctx context.Context) ([]document.Document, error) {
	rows, err := db.Pool.Query(ctx, `SELECT doc FROM documents ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var d document.Document
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// SaveAll replaces the stored list wholesale. There are no delta writes:
// the repository contract is whole-list replace, matching the single
// active editing session that owns the list.
func (db *DB) SaveAll(ctx context.Context, docs []document.Document) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}
	for i, d := range docs {
		raw, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encode document %s: %w", d.ID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO documents (id, position, doc) VALUES ($1, $2, $3)`,
			d.ID, i, raw,
		); err != nil {
			return fmt.Errorf("insert document %s: %w", d.ID, err)
		}
	}
	return tx.Commit(ctx)
}
