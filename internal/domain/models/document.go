// internal/domain/models/document.go
package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documents in this service are schemaless on the wire. Each model declares
// the fields the service reads or writes itself and keeps every other
// client-supplied field in an Extra map. Extra is inlined into the BSON
// document and flattened into the JSON object, so a stored document looks
// exactly like what the client posted plus the server-stamped fields.
//
// Extra must never hold a key that is also a declared field; the BSON
// encoder rejects such documents. unmarshalFlat strips declared keys.

// marshalFlat encodes known as a JSON object and merges extra into it.
// Declared fields win over extra keys with the same name.
func marshalFlat(known any, extra bson.M) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return b, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, declared := obj[k]; declared {
			continue
		}
		raw, err := json.Marshal(plain(v))
		if err != nil {
			return nil, err
		}
		obj[k] = raw
	}
	return json.Marshal(obj)
}

// unmarshalFlat decodes data into known and returns the keys of the JSON
// object that are neither declared nor ignored. Ignored keys are
// server-owned names the client may not set; they are dropped before any
// typed decoding so a malformed value never fails the body.
func unmarshalFlat(data []byte, known any, declared []string, ignored ...string) (bson.M, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range ignored {
		delete(all, k)
	}

	kept, err := json.Marshal(all)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(kept, known); err != nil {
		return nil, err
	}

	for _, k := range declared {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	extra := make(bson.M, len(all))
	for k, raw := range all {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		extra[k] = v
	}
	return extra, nil
}

// plain converts driver container types into values encoding/json renders
// as ordinary objects and arrays.
func plain(v any) any {
	switch x := v.(type) {
	case primitive.D:
		m := make(map[string]any, len(x))
		for _, e := range x {
			m[e.Key] = plain(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = plain(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = plain(e)
		}
		return m
	case primitive.A:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	case primitive.DateTime:
		return x.Time().UTC()
	default:
		return v
	}
}

// cloneExtra returns a shallow copy of m so two documents never share a map.
func cloneExtra(m bson.M) bson.M {
	if len(m) == 0 {
		return nil
	}
	out := make(bson.M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
