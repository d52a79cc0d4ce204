// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/danielhkuo/contest-hub/store"
)

func TestBuildFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name  string
		query store.Query
		want  bson.M
	}{
		{
			name:  "empty matches everything",
			query: store.Query{},
			want:  bson.M{},
		},
		{
			name:  "by id",
			query: store.ByID(oid.Hex()),
			want:  bson.M{"_id": oid},
		},
		{
			name:  "single equality",
			query: store.ByField("email", "a@example.com"),
			want:  bson.M{"email": "a@example.com"},
		},
		{
			name: "or of equalities",
			query: store.Query{AnyOf: []store.Condition{
				{Field: "creatorEmail", Value: "a@example.com"},
				{Field: "participateEmail", Value: "a@example.com"},
			}},
			want: bson.M{"$or": bson.A{
				bson.M{"creatorEmail": "a@example.com"},
				bson.M{"participateEmail": "a@example.com"},
			}},
		},
		{
			name:  "contains quotes regex metacharacters",
			query: store.Query{Contains: &store.Condition{Field: "tag", Value: "c++"}},
			want:  bson.M{"tag": bson.M{"$regex": `c\+\+`, "$options": "i"}},
		},
		{
			name: "contains on a field already matched",
			query: store.Query{
				AnyOf:    []store.Condition{{Field: "tag", Value: "Art"}},
				Contains: &store.Condition{Field: "tag", Value: "ar"},
			},
			want: bson.M{
				"tag":  "Art",
				"$and": bson.A{bson.M{"tag": bson.M{"$regex": "ar", "$options": "i"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildFilter(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildFilter_InvalidID(t *testing.T) {
	_, err := buildFilter(store.ByID("nope"))
	assert.ErrorIs(t, err, store.ErrInvalidID)
}

func TestBuildProjection(t *testing.T) {
	assert.Nil(t, buildProjection(nil))
	assert.Equal(t, bson.M{"_id": 0, "name": 1, "image": 1}, buildProjection([]string{"name", "image"}))
}

func TestDocumentConversion(t *testing.T) {
	oid := primitive.NewObjectID()

	doc := toDocument(bson.M{"_id": oid, "name": "Logo", "price": int32(10)})
	assert.Equal(t, store.Document{"_id": oid.Hex(), "name": "Logo", "price": int32(10)}, doc)

	m := fromDocument(store.Document{"name": "Logo"}, oid)
	assert.Equal(t, bson.M{"_id": oid, "name": "Logo"}, m)
}
