// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mongostore implements store.Collection on MongoDB.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/contest-hub/models"
	"github.com/danielhkuo/contest-hub/store"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "ContestDB"

// Client owns the driver connection and the contest database handle.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri with Stable API v1 and pings the deployment.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	if dbName == "" {
		dbName = DefaultDatabase
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	return &Client{client: client, db: client.Database(dbName)}, nil
}

// Store returns the server collections.
func (c *Client) Store() store.Store {
	return store.Store{
		Users:        NewCollection(c.db.Collection(models.CollectionUsers)),
		Contests:     NewCollection(c.db.Collection(models.CollectionContests)),
		Participates: NewCollection(c.db.Collection(models.CollectionParticipates)),
	}
}

// EnsureIndexes creates the unique email index on users. Documents without a
// string email are left out of the index.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	_, err := c.db.Collection(models.CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: models.FieldEmail, Value: 1}},
		Options: options.Index().
			SetName("users_email_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{models.FieldEmail: bson.M{"$type": "string"}}),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	return nil
}

// Drop removes the whole database. Used by tests.
func (c *Client) Drop(ctx context.Context) error {
	return c.db.Drop(ctx)
}

func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
