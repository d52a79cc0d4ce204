// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/danielhkuo/contest-hub/models"
	"github.com/danielhkuo/contest-hub/store"
)

// Collection stores documents as JSON rows in a single table.
type Collection struct {
	db          *sql.DB
	dialect     Dialect
	table       string
	uniqueField string
}

// NewCollection returns a collection backed by table. If uniqueField is set,
// its string value is copied into the unique_key column on every write.
func NewCollection(db *sql.DB, dialect Dialect, table, uniqueField string) *Collection {
	return &Collection{db: db, dialect: dialect, table: table, uniqueField: uniqueField}
}

// NewStore wires the three server collections to db.
func NewStore(db *sql.DB, dialect Dialect) store.Store {
	return store.Store{
		Users:        NewCollection(db, dialect, models.CollectionUsers, models.FieldEmail),
		Contests:     NewCollection(db, dialect, models.CollectionContests, ""),
		Participates: NewCollection(db, dialect, models.CollectionParticipates, ""),
	}
}

func (c *Collection) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	where, args, err := c.where(q)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, "SELECT id, doc FROM "+c.table+where+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.table, err)
	}
	defer rows.Close()

	docs := []store.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", c.table, err)
		}
		docs = append(docs, project(doc, q.Fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.table, err)
	}

	return docs, nil
}

func (c *Collection) FindOne(ctx context.Context, q store.Query) (store.Document, error) {
	where, args, err := c.where(q)
	if err != nil {
		return nil, err
	}

	row := c.db.QueryRowContext(ctx, "SELECT id, doc FROM "+c.table+where+" ORDER BY id LIMIT 1", args...)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.table, err)
	}

	return project(doc, q.Fields), nil
}

func (c *Collection) InsertOne(ctx context.Context, doc store.Document) (store.InsertResult, error) {
	id := store.NewID()
	body := store.Without(doc, store.IDField)

	payload, err := json.Marshal(body)
	if err != nil {
		return store.InsertResult{}, fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		"INSERT INTO "+c.table+" (id, unique_key, doc) VALUES ("+c.placeholders(3)+")",
		id, c.uniqueKey(body), string(payload),
	)
	if isUniqueViolation(err) {
		return store.InsertResult{}, store.ErrDuplicate
	}
	if err != nil {
		return store.InsertResult{}, fmt.Errorf("failed to insert into %s: %w", c.table, err)
	}

	return store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// UpdateOne merges set into the first matching document. The read and the
// write share a transaction and the row is locked on read, so concurrent
// updates of different fields all survive.
func (c *Collection) UpdateOne(ctx context.Context, q store.Query, set store.Document) (store.UpdateResult, error) {
	where, args, err := c.where(q)
	if err != nil {
		return store.UpdateResult{}, err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, c.selectForUpdate(where), args...)
	current, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return store.UpdateResult{Acknowledged: true}, nil
	}
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("failed to query %s: %w", c.table, err)
	}

	id := current.ID()
	before, err := json.Marshal(store.Without(current, store.IDField))
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("failed to encode document: %w", err)
	}

	merged := store.Merge(store.Without(current, store.IDField), store.Without(set, store.IDField))
	after, err := json.Marshal(merged)
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("failed to encode document: %w", err)
	}

	result := store.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if string(before) == string(after) {
		return result, nil
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE "+c.table+" SET doc = "+c.dialect.placeholder(1)+", unique_key = "+c.dialect.placeholder(2)+
			" WHERE id = "+c.dialect.placeholder(3),
		string(after), c.uniqueKey(merged), id,
	)
	if isUniqueViolation(err) {
		return store.UpdateResult{}, store.ErrDuplicate
	}
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("failed to update %s: %w", c.table, err)
	}

	if err := tx.Commit(); err != nil {
		return store.UpdateResult{}, fmt.Errorf("failed to commit update: %w", err)
	}

	result.ModifiedCount = 1
	return result, nil
}

func (c *Collection) DeleteOne(ctx context.Context, q store.Query) (store.DeleteResult, error) {
	where, args, err := c.where(q)
	if err != nil {
		return store.DeleteResult{}, err
	}

	res, err := c.db.ExecContext(ctx,
		"DELETE FROM "+c.table+" WHERE id = (SELECT id FROM "+c.table+where+" ORDER BY id LIMIT 1)",
		args...,
	)
	if err != nil {
		return store.DeleteResult{}, fmt.Errorf("failed to delete from %s: %w", c.table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return store.DeleteResult{}, fmt.Errorf("failed to read delete count: %w", err)
	}

	return store.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

// where renders q as a WHERE clause with numbered placeholders.
func (c *Collection) where(q store.Query) (string, []any, error) {
	var clauses []string
	var args []any
	bind := func(v any) string {
		args = append(args, v)
		return c.dialect.placeholder(len(args))
	}

	if q.ID != "" {
		if err := store.ValidateID(q.ID); err != nil {
			return "", nil, err
		}
		clauses = append(clauses, "id = "+bind(q.ID))
	}

	if len(q.AnyOf) > 0 {
		ors := make([]string, 0, len(q.AnyOf))
		for _, cond := range q.AnyOf {
			expr, err := c.dialect.field(cond.Field)
			if err != nil {
				return "", nil, err
			}
			ors = append(ors, expr+" = "+bind(cond.Value))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	if q.Contains != nil {
		expr, err := c.dialect.field(q.Contains.Field)
		if err != nil {
			return "", nil, err
		}
		pattern := "%" + escapeLike(strings.ToLower(q.Contains.Value)) + "%"
		clauses = append(clauses, "LOWER("+expr+") LIKE "+bind(pattern)+` ESCAPE '\'`)
	}

	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func (c *Collection) selectForUpdate(where string) string {
	return "SELECT id, doc FROM " + c.table + where + " ORDER BY id LIMIT 1" + c.dialect.lockClause()
}

func (c *Collection) placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = c.dialect.placeholder(i + 1)
	}
	return strings.Join(ph, ", ")
}

func (c *Collection) uniqueKey(doc store.Document) any {
	if c.uniqueField == "" {
		return nil
	}
	if v := doc.String(c.uniqueField); v != "" {
		return v
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (store.Document, error) {
	var id string
	var raw []byte
	if err := s.Scan(&id, &raw); err != nil {
		return nil, err
	}

	doc, err := store.UnmarshalDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("corrupt document %s: %w", id, err)
	}
	doc[store.IDField] = id
	return doc, nil
}

func project(doc store.Document, fields []string) store.Document {
	if len(fields) == 0 {
		return doc
	}
	return store.Project(doc, fields)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var _ store.Collection = (*Collection)(nil)
