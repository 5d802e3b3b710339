package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

var sqlTypes = map[Kind]string{
	Text:    "TEXT",
	Integer: "INTEGER",
	Real:    "REAL",
}

// WriteSQLite stores every table in a fresh SQLite database at path.
// Tables are dropped and recreated inside one transaction; NaN cells become NULL.
func WriteSQLite(ctx context.Context, path string, tables ...Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, t := range tables {
		if err := writeSQLiteTable(ctx, tx, t); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite table %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

func writeSQLiteTable(ctx context.Context, tx *sql.Tx, t Table) error {
	defs := make([]string, len(t.Columns))
	quoted := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		quoted[i] = fmt.Sprintf("%q", c.Name)
		defs[i] = quoted[i] + " " + sqlTypes[c.Kind]
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, t.Name)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %q (%s)`, t.Name, strings.Join(defs, ", "))); err != nil {
		return err
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(t.Columns)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, t.Name, strings.Join(quoted, ", "), ph))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, row := range t.Rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = finite(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}
