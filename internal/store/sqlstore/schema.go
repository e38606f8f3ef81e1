package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ensureSchema creates the document table for one collection.
func ensureSchema(ctx context.Context, db *sql.DB, table string) error {
	if !identRe.MatchString(table) {
		return errors.Errorf("invalid table name %q", table)
	}
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL DEFAULT '',
			date       TEXT NOT NULL DEFAULT '',
			name       TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_date ON %s (user_id, date)`, table, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_name ON %s (user_id, name)`, table, table),
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return errors.Wrapf(err, "create schema for %s", table)
		}
	}
	return nil
}
