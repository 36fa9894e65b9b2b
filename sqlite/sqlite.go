// Package sqlite exports price records to a SQLite database file.
//
// The export is a snapshot: any existing file at the destination is replaced
// by a database holding a single `prices` table, one row per record, in store
// order.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/prices"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE prices (
	position    INTEGER PRIMARY KEY,
	product     TEXT NOT NULL,
	category    TEXT NOT NULL,
	price       TEXT NOT NULL,
	price_cents INTEGER NOT NULL,
	url         TEXT NOT NULL,
	timestamp   TEXT NOT NULL
);
CREATE INDEX prices_category ON prices (category COLLATE NOCASE);`

// Export writes records to a new SQLite database at path.
// Any failure is a *prices.WriteError.
func Export(ctx context.Context, path string, records []prices.Record) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &prices.WriteError{Path: path, Err: err}
	}
	if err := export(ctx, path, records); err != nil {
		return &prices.WriteError{Path: path, Err: err}
	}
	return nil
}

func export(ctx context.Context, path string, records []prices.Record) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite %q: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() // no-op after commit.

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO prices (position, product, category, price, price_cents, url, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, r.Product, r.Category, r.Price.String(), r.Price.Cents(), r.URL, r.Timestamp); err != nil {
			return fmt.Errorf("insert record #%d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads back the records of a database written by Export, in store order.
func Load(ctx context.Context, path string) ([]prices.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &prices.ReadError{Path: path, Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &prices.ReadError{Path: path, Err: err}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT product, category, price, url, timestamp FROM prices ORDER BY position")
	if err != nil {
		return nil, &prices.ReadError{Path: path, Err: err}
	}
	defer rows.Close()

	records := make([]prices.Record, 0)
	for rows.Next() {
		var r prices.Record
		var price string
		if err := rows.Scan(&r.Product, &r.Category, &price, &r.URL, &r.Timestamp); err != nil {
			return nil, &prices.ReadError{Path: path, Err: err}
		}
		// Stored by Export, so always valid.
		r.Price, _ = prices.ParsePrice(price)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &prices.ReadError{Path: path, Err: err}
	}
	return records, nil
}
