// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/contest-hub/store"
)

// Collection adapts a driver collection to store.Collection.
type Collection struct {
	coll *mongo.Collection
}

func NewCollection(coll *mongo.Collection) *Collection {
	return &Collection{coll: coll}
}

func (c *Collection) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if proj := buildProjection(q.Fields); proj != nil {
		opts.SetProjection(proj)
	}

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.coll.Name(), err)
	}

	docs := make([]store.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, toDocument(m))
	}
	return docs, nil
}

func (c *Collection) FindOne(ctx context.Context, q store.Query) (store.Document, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}

	opts := options.FindOne()
	if proj := buildProjection(q.Fields); proj != nil {
		opts.SetProjection(proj)
	}

	var m bson.M
	err = c.coll.FindOne(ctx, filter, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}

	return toDocument(m), nil
}

func (c *Collection) InsertOne(ctx context.Context, doc store.Document) (store.InsertResult, error) {
	id := primitive.NewObjectID()

	_, err := c.coll.InsertOne(ctx, fromDocument(store.Without(doc, store.IDField), id))
	if mongo.IsDuplicateKeyError(err) {
		return store.InsertResult{}, store.ErrDuplicate
	}
	if err != nil {
		return store.InsertResult{}, fmt.Errorf("failed to insert into %s: %w", c.coll.Name(), err)
	}

	return store.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}

func (c *Collection) UpdateOne(ctx context.Context, q store.Query, set store.Document) (store.UpdateResult, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return store.UpdateResult{}, err
	}

	fields := store.Without(set, store.IDField)
	if len(fields) == 0 {
		// $set rejects an empty document; report the match only.
		n, err := c.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return store.UpdateResult{}, fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
		}
		return store.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
	}

	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M(fields)})
	if mongo.IsDuplicateKeyError(err) {
		return store.UpdateResult{}, store.ErrDuplicate
	}
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("failed to update %s: %w", c.coll.Name(), err)
	}

	return store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}, nil
}

func (c *Collection) DeleteOne(ctx context.Context, q store.Query) (store.DeleteResult, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return store.DeleteResult{}, err
	}

	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return store.DeleteResult{}, fmt.Errorf("failed to delete from %s: %w", c.coll.Name(), err)
	}

	return store.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

var _ store.Collection = (*Collection)(nil)
