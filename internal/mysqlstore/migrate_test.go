package mysqlstore

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestSchemaSQL_SplitsIntoThreeCreateStatements(t *testing.T) {
	var statements []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	if len(statements) != 3 {
		t.Fatalf("expected 3 statements (traders, orders, trades), got %d", len(statements))
	}
	for _, want := range []string{"traders", "orders", "trades"} {
		found := false
		for _, stmt := range statements {
			if strings.Contains(stmt, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a CREATE TABLE statement for %q", want)
		}
	}
}

// TestApplySchemaIntegration requires a live database; it is skipped unless
// DATABASE_URL is set, mirroring the teacher's DB_DSN-gated integration
// tests.
func TestApplySchemaIntegration(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db, err := Connect()
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	if err := ApplySchema(context.Background(), db); err != nil {
		t.Fatalf("ApplySchema: %v", err)
	}
	if err := ApplySchema(context.Background(), db); err != nil {
		t.Fatalf("ApplySchema must be idempotent, second run failed: %v", err)
	}
}
