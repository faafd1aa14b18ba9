package services

import (
	"bytes"
	"encoding/json"
	"errors"
)

// UnwrapCollection extracts a list from any of the envelope shapes the backend returns.
// Shapes are tried in order and the first match wins:
//
//	[...]                      bare array
//	{"data": [...]}            single envelope
//	{"<key>": [...]}           named collection, at the top level or under "data"
//	{"data": {"data": [...]}}  double envelope
//
// Anything else yields an empty, non-nil slice. Elements that fail to decode are skipped.
func UnwrapCollection[T any](raw json.RawMessage, keys ...string) []T {
	if isArray(raw) {
		return decodeElements[T](raw)
	}

	obj, ok := asObject(raw)
	if !ok {
		return []T{}
	}

	data := obj["data"]
	if isArray(data) {
		return decodeElements[T](data)
	}

	dataObj, dataIsObject := asObject(data)
	for _, key := range keys {
		if v, found := obj[key]; found && isArray(v) {
			return decodeElements[T](v)
		}
		if dataIsObject {
			if v, found := dataObj[key]; found && isArray(v) {
				return decodeElements[T](v)
			}
		}
	}

	if dataIsObject && isArray(dataObj["data"]) {
		return decodeElements[T](dataObj["data"])
	}

	return []T{}
}

// UnwrapObject returns data.data, else data, else the payload itself
func UnwrapObject(raw json.RawMessage) json.RawMessage {
	obj, ok := asObject(raw)
	if !ok {
		return raw
	}
	data, found := obj["data"]
	if !found || isNull(data) {
		return raw
	}
	if inner, ok := asObject(data); ok {
		if nested, found := inner["data"]; found && !isNull(nested) {
			return nested
		}
	}
	return data
}

// DecodeObject unwraps and decodes a single record
func DecodeObject[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(UnwrapObject(raw), &v)
	return v, err
}

func decodeElements[T any](raw json.RawMessage) []T {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return []T{}
	}
	out := make([]T, 0, len(elements))
	for _, el := range elements {
		var v T
		if err := json.Unmarshal(el, &v); err != nil {
			// a mistyped field inside a record leaves the rest of it decoded; keep it
			var typeErr *json.UnmarshalTypeError
			if !isObject(el) || !errors.As(err, &typeErr) {
				continue
			}
		}
		out = append(out, v)
	}
	return out
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}
