// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeDocument reads a JSON object. Integral numbers become int64 and the
// rest float64, so integers survive a round trip through either backend.
func DecodeDocument(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}
	return Document(normalize(raw).(map[string]any)), nil
}

// UnmarshalDocument is DecodeDocument for a byte slice.
func UnmarshalDocument(data []byte) (Document, error) {
	return DecodeDocument(bytes.NewReader(data))
}

func normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, inner := range val {
			val[k] = normalize(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = normalize(inner)
		}
		return val
	default:
		return v
	}
}
