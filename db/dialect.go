// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect selects the SQL flavour used for document tables.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ParseDialect validates a configured database type.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case SQLite, Postgres:
		return Dialect(name), nil
	}
	return "", fmt.Errorf("unsupported SQL dialect %q", name)
}

// Open connects to the database. SQLite is limited to a single connection so
// in-memory databases are shared and writers never see SQLITE_BUSY.
func Open(dialect Dialect, url string) (*sql.DB, error) {
	conn, err := sql.Open(dialect.driverName(), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if dialect == SQLite {
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

func (d Dialect) driverName() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

func (d Dialect) docType() string {
	if d == Postgres {
		return "JSONB"
	}
	return "TEXT"
}

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?" + strconv.Itoa(n)
}

// lockClause is appended to the read of a read-merge-write so concurrent
// updates of one row serialize. SQLite runs on a single connection and has
// no row locks.
func (d Dialect) lockClause() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// field returns the SQL expression extracting a top-level string field.
func (d Dialect) field(name string) (string, error) {
	if !fieldName.MatchString(name) {
		return "", fmt.Errorf("invalid field name %q", name)
	}
	if d == Postgres {
		return "doc->>'" + name + "'", nil
	}
	return "json_extract(doc, '$." + name + "')", nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch code := liteErr.Code(); {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			// extended result codes disabled
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}
	return false
}
