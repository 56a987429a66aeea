package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is a loosely typed bag of entity fields. It is the unit of exchange
// between the transformation pipeline and the storage layer, where the set of
// populated keys varies per entity.
type Record map[string]any

func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r Record) Get(key string) any {
	return r[key]
}

// GetString renders the value under key as a string. Numbers are formatted
// without an exponent so identifiers survive a JSON roundtrip intact.
func (r Record) GetString(key string) string {
	val, ok := r[key]
	if !ok || val == nil {
		return ""
	}

	switch typed := val.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func (r Record) GetInt64(key string) (int64, bool) {
	val, ok := r[key]
	if !ok {
		return 0, false
	}

	switch typed := val.(type) {
	case int64:
		return typed, true
	case int:
		return int64(typed), true
	case float64:
		return int64(typed), true
	case json.Number:
		parsed, err := typed.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		parsed, err := strconv.ParseInt(typed, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func (r Record) Set(key string, value any) {
	r[key] = value
}

func (r Record) Delete(key string) {
	delete(r, key)
}

// Clone returns a shallow copy so callers can mutate field sets without
// affecting the source record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = value
	}

	return out
}

// DecodeInto re-marshals the value under key into target. Values coming out
// of a cache roundtrip lose their concrete types, so structured fields are
// recovered through JSON rather than type assertions.
func (r Record) DecodeInto(key string, target any) error {
	val, ok := r[key]
	if !ok || val == nil {
		return nil
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encoding field %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decoding field %s: %w", key, err)
	}

	return nil
}
