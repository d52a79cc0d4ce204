// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db implements store.Collection on SQLite or PostgreSQL.

# Schema Creation

CreateSchema creates one table per collection:

	conn, err := db.Open(db.SQLite, "file:contests.db")
	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

users, contests and participates share the same layout:

	id          TEXT PRIMARY KEY   -- hex object id
	unique_key  TEXT UNIQUE        -- users.email, NULL elsewhere
	doc         TEXT | JSONB       -- the document without _id

The unique key on users gives registration an atomic insert-if-absent:
a second insert with the same email fails with store.ErrDuplicate.

# Queries

Filters are evaluated in SQL on the JSON document: json_extract for SQLite,
the ->> operator for PostgreSQL. Substring matches use LOWER(...) LIKE with
the pattern escaped. Updates read, merge and write inside one transaction.
*/
package db
