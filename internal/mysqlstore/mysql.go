// Package mysqlstore implements the store.TraderStore, store.OrderStore and
// store.TradeStore interfaces against MySQL/TiDB, adapted from the
// teacher's internal/db connector (spec §6.2-§6.3: the durable store is
// specified only through the operations the core consumes; this package is
// the concrete binding).
package mysqlstore

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// convertURIToDSN converts a mysql:// URI (e.g. a TiDB Cloud connection
// string) into the go-sql-driver DSN format; a string that already looks
// like a DSN passes through unchanged. Kept adapted from the teacher's
// internal/db/mysql.go, which this repo's DATABASE_URL loading reuses
// verbatim in spirit.
func convertURIToDSN(connectionString string) (string, error) {
	if !strings.HasPrefix(connectionString, "mysql://") {
		return connectionString, nil
	}

	u, err := url.Parse(connectionString)
	if err != nil {
		return "", fmt.Errorf("failed to parse URI: %w", err)
	}
	if u.Scheme != "mysql" {
		return "", fmt.Errorf("unsupported scheme: %s (expected mysql)", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("host is required")
	}

	var userInfo string
	if u.User != nil {
		username := u.User.Username()
		password, _ := u.User.Password()
		if password != "" {
			userInfo = username + ":" + password
		} else {
			userInfo = username
		}
	}

	database := strings.TrimPrefix(u.Path, "/")
	if database == "" {
		database = "orders"
	}

	dsn := fmt.Sprintf("%s@tcp(%s)/%s", userInfo, u.Host, database)

	defaultParams := url.Values{
		"parseTime": []string{"true"},
		"charset":   []string{"utf8mb4"},
		"collation": []string{"utf8mb4_unicode_ci"},
	}
	existingParams := u.Query()
	for key, values := range defaultParams {
		if !existingParams.Has(key) {
			existingParams[key] = values
		}
	}
	if len(existingParams) > 0 {
		dsn += "?" + existingParams.Encode()
	}
	return dsn, nil
}

// ConnPoolSize is the bounded connection pool size referenced by spec §5
// (reference: 5 connections).
const ConnPoolSize = 5

// Connect opens and verifies a MySQL connection using the DATABASE_URL
// environment variable (spec §6.3), which may be either a plain DSN or a
// mysql:// URI.
func Connect() (*sql.DB, error) {
	connectionString := os.Getenv("DATABASE_URL")
	if connectionString == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	dsn, err := convertURIToDSN(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to process connection string: %w", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(ConnPoolSize)
	db.SetMaxIdleConns(ConnPoolSize)

	return db, nil
}
