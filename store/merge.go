// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

// Merge copies every top-level key of patch into dst and returns dst.
// Nested values are replaced, not merged.
func Merge(dst, patch Document) Document {
	if dst == nil {
		dst = Document{}
	}
	for k, v := range patch {
		dst[k] = v
	}
	return dst
}

// SetFields builds an update that always writes each named field. Fields
// missing from body are set to nil.
func SetFields(body Document, fields ...string) Document {
	set := make(Document, len(fields))
	for _, f := range fields {
		set[f] = body[f]
	}
	return set
}

// Without returns a copy of doc with the given keys removed.
func Without(doc Document, keys ...string) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Project returns only the named fields of doc.
func Project(doc Document, fields []string) Document {
	out := make(Document, len(fields))
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out
}
