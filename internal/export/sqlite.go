package export

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"os"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/neo/internal/model"
)

// sqliteSchema is created fresh for every export. Diameter is NULL when
// unknown; designation is NULL for unlinked approaches.
const sqliteSchema = `
CREATE TABLE neos (
    designation TEXT PRIMARY KEY,
    name        TEXT,
    diameter_km REAL,
    hazardous   BOOLEAN NOT NULL
);

CREATE TABLE approaches (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    datetime_utc  TEXT NOT NULL,
    distance_au   REAL NOT NULL,
    velocity_km_s REAL NOT NULL,
    designation   TEXT REFERENCES neos(designation)
);
`

// WriteSQLite writes results into a new SQLite database at path, replacing
// any existing file. Each body referenced by the results is stored once. All
// rows are inserted in a single transaction.
func WriteSQLite(ctx context.Context, path string, results iter.Seq[*model.Approach]) (int, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("export: remove %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("export: open database: %w", err)
	}
	defer db.Close()

	// SQLite supports a single writer; one connection keeps the transaction
	// and the schema on the same handle.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return 0, fmt.Errorf("export: create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("export: begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	insertNEO, err := tx.PrepareContext(ctx,
		`INSERT INTO neos (designation, name, diameter_km, hazardous) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("export: prepare neo insert: %w", err)
	}
	defer insertNEO.Close()

	insertApproach, err := tx.PrepareContext(ctx,
		`INSERT INTO approaches (datetime_utc, distance_au, velocity_km_s, designation) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("export: prepare approach insert: %w", err)
	}
	defer insertApproach.Close()

	written := make(map[*model.Body]bool)
	n := 0
	for a := range results {
		var designation sql.NullString
		if b := a.Body(); b != nil {
			designation = sql.NullString{String: b.Designation, Valid: true}
			if !written[b] {
				if err := insertBody(ctx, insertNEO, b); err != nil {
					return n, err
				}
				written[b] = true
			}
		}

		if _, err := insertApproach.ExecContext(ctx,
			a.TimeString(), a.Distance, a.Velocity, designation); err != nil {
			return n, fmt.Errorf("export: insert approach %s: %w", a.Designation(), err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return n, fmt.Errorf("export: commit: %w", err)
	}
	return n, nil
}

func insertBody(ctx context.Context, stmt *sql.Stmt, b *model.Body) error {
	var name sql.NullString
	if b.HasName() {
		name = sql.NullString{String: *b.Name, Valid: true}
	}
	var diameter sql.NullFloat64
	if v := b.View(); v.Diameter.Known() {
		diameter = sql.NullFloat64{Float64: b.Diameter, Valid: true}
	}
	if _, err := stmt.ExecContext(ctx, b.Designation, name, diameter, b.Hazardous); err != nil {
		return fmt.Errorf("export: insert neo %s: %w", b.Designation, err)
	}
	return nil
}
