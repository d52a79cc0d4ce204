// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/contest-hub/middleware"
	"github.com/danielhkuo/contest-hub/store"
)

// pathID returns the {id} path value if it is a valid document id.
func pathID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if err := store.ValidateID(id); err != nil {
		return "", err
	}
	return id, nil
}

func parseDocument(r *http.Request) (store.Document, error) {
	doc, err := middleware.ParseDocument(r)
	if err != nil {
		return nil, middleware.BadRequest("Invalid JSON")
	}
	return doc, nil
}

// setDefault fills key only when the client left it out or sent it empty.
func setDefault(doc store.Document, key string, value any) {
	if v, ok := doc[key]; !ok || v == nil || v == "" {
		doc[key] = value
	}
}

// updateByID applies set to the document with id. A miss is reported as
// store.ErrNotFound instead of a zero-count result.
func updateByID(ctx context.Context, c store.Collection, id string, set store.Document) (store.UpdateResult, error) {
	res, err := c.UpdateOne(ctx, store.ByID(id), set)
	if err != nil {
		return store.UpdateResult{}, err
	}
	if res.MatchedCount == 0 {
		return store.UpdateResult{}, store.ErrNotFound
	}
	return res, nil
}

func deleteByID(ctx context.Context, c store.Collection, id string) (store.DeleteResult, error) {
	res, err := c.DeleteOne(ctx, store.ByID(id))
	if err != nil {
		return store.DeleteResult{}, err
	}
	if res.DeletedCount == 0 {
		return store.DeleteResult{}, store.ErrNotFound
	}
	return res, nil
}

// emailFilter matches documents where any of fields equals email. An empty
// email matches everything.
func emailFilter(email string, fields ...string) store.Query {
	if email == "" {
		return store.Query{}
	}
	q := store.Query{AnyOf: make([]store.Condition, 0, len(fields))}
	for _, f := range fields {
		q.AnyOf = append(q.AnyOf, store.Condition{Field: f, Value: email})
	}
	return q
}
