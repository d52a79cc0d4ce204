// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_OnlyTouchesPatchedFields(t *testing.T) {
	dst := Document{"name": "Logo Design", "price": int64(10), "tag": "Art"}

	got := Merge(dst, Document{"price": int64(50)})

	assert.Equal(t, Document{"name": "Logo Design", "price": int64(50), "tag": "Art"}, got)
}

func TestMerge_NilDestination(t *testing.T) {
	got := Merge(nil, Document{"a": "b"})
	assert.Equal(t, Document{"a": "b"}, got)
}

func TestMerge_IsShallow(t *testing.T) {
	dst := Document{"profile": map[string]any{"city": "Dhaka", "zip": "1207"}}

	got := Merge(dst, Document{"profile": map[string]any{"city": "Sylhet"}})

	assert.Equal(t, map[string]any{"city": "Sylhet"}, got["profile"])
}

func TestSetFields_AbsentFieldsBecomeNil(t *testing.T) {
	body := Document{"name": "Essay", "price": int64(5), "extra": true}

	got := SetFields(body, "name", "price", "tag")

	assert.Equal(t, Document{"name": "Essay", "price": int64(5), "tag": nil}, got)
	assert.NotContains(t, got, "extra")
}

func TestWithout(t *testing.T) {
	doc := Document{"_id": "abc", "name": "x"}

	got := Without(doc, IDField)

	assert.Equal(t, Document{"name": "x"}, got)
	assert.Equal(t, "abc", doc.ID(), "original must not be modified")
}

func TestProject(t *testing.T) {
	doc := Document{"_id": "1", "name": "n", "image": "i", "tag": "t"}
	assert.Equal(t, Document{"name": "n", "image": "i"}, Project(doc, []string{"name", "image"}))
}

func TestDecodeDocument_Numbers(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(`{"price": 50, "prize": 12.5, "nested": {"n": 3}, "list": [1, 2.5]}`))
	require.NoError(t, err)

	assert.Equal(t, int64(50), doc["price"])
	assert.Equal(t, 12.5, doc["prize"])
	assert.Equal(t, int64(3), doc["nested"].(map[string]any)["n"])
	assert.Equal(t, []any{int64(1), 2.5}, doc["list"])
}

func TestDecodeDocument_Rejects(t *testing.T) {
	for _, body := range []string{`null`, `[1,2]`, `not json`, ``} {
		t.Run(body, func(t *testing.T) {
			_, err := DecodeDocument(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestValidateID(t *testing.T) {
	require.NoError(t, ValidateID(NewID()))
	assert.ErrorIs(t, ValidateID("not-an-id"), ErrInvalidID)
	assert.ErrorIs(t, ValidateID(""), ErrInvalidID)
}

func TestNewID_Unique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
	assert.Len(t, NewID(), 24)
}

func TestDocumentAccessors(t *testing.T) {
	doc := Document{"_id": "abc", "role": "admin", "price": int64(3)}
	assert.Equal(t, "abc", doc.ID())
	assert.Equal(t, "admin", doc.String("role"))
	assert.Equal(t, "", doc.String("price"))
	assert.Equal(t, "", doc.String("missing"))
}
