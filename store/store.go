// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalidID = errors.New("invalid document id")
)

// IDField is the key that holds a document's identifier.
const IDField = "_id"

// Document is a schemaless record. The identifier, when present, is stored
// under IDField as a 24 character hex string.
type Document map[string]any

// String returns the string value at key, or "" if it is missing or not a string.
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// ID returns the document identifier.
func (d Document) ID() string {
	return d.String(IDField)
}

// Condition is a single field/value match.
type Condition struct {
	Field string
	Value string
}

// Query selects documents from a collection.
//
// ID restricts the match to a single document. AnyOf matches documents where
// at least one condition holds; an empty AnyOf matches everything. Contains
// is a case-insensitive substring match. Fields, when set, limits the
// returned fields and drops the identifier.
type Query struct {
	ID       string
	AnyOf    []Condition
	Contains *Condition
	Fields   []string
}

// ByID is a convenience for a single-document query.
func ByID(id string) Query {
	return Query{ID: id}
}

// ByField matches documents where field equals value.
func ByField(field, value string) Query {
	return Query{AnyOf: []Condition{{Field: field, Value: value}}}
}

// Result types mirror the document database driver so the JSON seen by
// clients does not depend on the backend.

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collection is one named set of documents.
type Collection interface {
	Find(ctx context.Context, q Query) ([]Document, error)
	// FindOne returns ErrNotFound when nothing matches.
	FindOne(ctx context.Context, q Query) (Document, error)
	// InsertOne returns ErrDuplicate when a unique key is already taken.
	InsertOne(ctx context.Context, doc Document) (InsertResult, error)
	// UpdateOne sets the given top-level fields on the first match.
	UpdateOne(ctx context.Context, q Query, set Document) (UpdateResult, error)
	DeleteOne(ctx context.Context, q Query) (DeleteResult, error)
}

// Store groups the collections used by the server.
type Store struct {
	Users        Collection
	Contests     Collection
	Participates Collection
}

// NewID returns a fresh object id in hex form.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidateID checks that id is a 24 character hex object id.
func ValidateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
