// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/danielhkuo/contest-hub/store"
)

// buildFilter translates a store query into a MongoDB filter document.
func buildFilter(q store.Query) (bson.M, error) {
	filter := bson.M{}

	if q.ID != "" {
		oid, err := primitive.ObjectIDFromHex(q.ID)
		if err != nil {
			return nil, store.ErrInvalidID
		}
		filter[store.IDField] = oid
	}

	switch len(q.AnyOf) {
	case 0:
	case 1:
		filter[q.AnyOf[0].Field] = q.AnyOf[0].Value
	default:
		or := make(bson.A, 0, len(q.AnyOf))
		for _, cond := range q.AnyOf {
			or = append(or, bson.M{cond.Field: cond.Value})
		}
		filter["$or"] = or
	}

	if q.Contains != nil {
		match := bson.M{"$regex": regexp.QuoteMeta(q.Contains.Value), "$options": "i"}
		if _, taken := filter[q.Contains.Field]; taken {
			filter["$and"] = bson.A{bson.M{q.Contains.Field: match}}
		} else {
			filter[q.Contains.Field] = match
		}
	}

	return filter, nil
}

// buildProjection returns nil when every field should be returned.
func buildProjection(fields []string) bson.M {
	if len(fields) == 0 {
		return nil
	}
	proj := bson.M{store.IDField: 0}
	for _, f := range fields {
		proj[f] = 1
	}
	return proj
}

// toDocument converts a decoded BSON document, rendering the object id as hex.
func toDocument(m bson.M) store.Document {
	doc := make(store.Document, len(m))
	for k, v := range m {
		doc[k] = v
	}
	if oid, ok := m[store.IDField].(primitive.ObjectID); ok {
		doc[store.IDField] = oid.Hex()
	}
	return doc
}

// fromDocument builds the BSON document to insert under a new object id.
func fromDocument(doc store.Document, id primitive.ObjectID) bson.M {
	m := make(bson.M, len(doc)+1)
	for k, v := range doc {
		m[k] = v
	}
	m[store.IDField] = id
	return m
}
