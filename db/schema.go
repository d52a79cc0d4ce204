// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/contest-hub/models"
)

// CreateSchema creates one document table per collection.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	var b strings.Builder
	for _, name := range collections {
		fmt.Fprintf(&b, tableTemplate, name, dialect.docType())
		fmt.Fprintf(&b, indexTemplate, name)
	}

	_, err := db.Exec(b.String())
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

var collections = []string{
	models.CollectionUsers,
	models.CollectionContests,
	models.CollectionParticipates,
}

// unique_key holds the collection's unique field (users.email) and is NULL
// elsewhere; NULLs never collide.
const tableTemplate = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id TEXT PRIMARY KEY,
    unique_key TEXT UNIQUE,
    doc %[2]s NOT NULL
);
`

const indexTemplate = `
CREATE INDEX IF NOT EXISTS idx_%[1]s_unique_key ON %[1]s(unique_key);
`
