// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the document store used by the handlers.

# Collections

A Collection holds schemaless Documents keyed by a hex object id under
"_id". Two implementations exist:

  - store/mongostore: MongoDB
  - db: SQLite or PostgreSQL, one JSON document per row

Handlers only see the Collection interface, grouped in a Store:

	st := store.Store{Users: users, Contests: contests, Participates: participates}

# Queries

	store.ByID(id)                                  // single document
	store.ByField("email", email)                   // equality
	store.Query{AnyOf: []store.Condition{...}}      // OR of equalities
	store.Query{Contains: &store.Condition{...}}    // case-insensitive substring
	store.Query{Fields: []string{"name", "image"}}  // projection, drops _id

# Updates

UpdateOne applies a shallow $set. Two helpers build the set document:

	store.Without(body, "_id")              // partial merge: only fields sent
	store.SetFields(body, "name", "price")  // always write these, nil if absent

# Errors

	ErrNotFound   FindOne matched nothing
	ErrDuplicate  unique key (users.email) already taken
	ErrInvalidID  id is not a 24 character hex object id
*/
package store
