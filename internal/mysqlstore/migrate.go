package mysqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema runs schema.sql's CREATE TABLE IF NOT EXISTS statements
// against db, for deployments that pass cmd/server's -migrate flag instead
// of provisioning the traders/orders/trades tables out of band.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %q: %w", stmt, err)
		}
	}
	return nil
}
