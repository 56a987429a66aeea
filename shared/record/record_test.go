package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookable/shared/record"
)

func TestRecordGetString(t *testing.T) {
	rec := record.Record{
		"name":    "Consultation",
		"id":      float64(123),
		"count":   7,
		"enabled": true,
		"missing": nil,
	}

	assert.Equal(t, "Consultation", rec.GetString("name"))
	assert.Equal(t, "123", rec.GetString("id"))
	assert.Equal(t, "7", rec.GetString("count"))
	assert.Equal(t, "true", rec.GetString("enabled"))
	assert.Equal(t, "", rec.GetString("missing"))
	assert.Equal(t, "", rec.GetString("absent"))
}

func TestRecordGetInt64(t *testing.T) {
	rec := record.Record{
		"float":  float64(42),
		"int":    17,
		"string": "99",
		"bad":    "not-a-number",
	}

	got, ok := rec.GetInt64("float")
	require.True(t, ok)
	assert.Equal(t, int64(42), got)

	got, ok = rec.GetInt64("int")
	require.True(t, ok)
	assert.Equal(t, int64(17), got)

	got, ok = rec.GetInt64("string")
	require.True(t, ok)
	assert.Equal(t, int64(99), got)

	_, ok = rec.GetInt64("bad")
	assert.False(t, ok)

	_, ok = rec.GetInt64("absent")
	assert.False(t, ok)
}

func TestRecordClone(t *testing.T) {
	src := record.Record{"a": 1, "b": "two"}

	clone := src.Clone()
	clone.Set("a", 10)
	clone.Delete("b")

	assert.Equal(t, 1, src.Get("a"))
	assert.True(t, src.Has("b"))
}

func TestRecordDecodeInto(t *testing.T) {
	type sessionType struct {
		Label string `json:"label"`
		Type  string `json:"type"`
	}

	rec := record.Record{
		"session_types": []any{
			map[string]any{"label": "Short", "type": "fixed_duration"},
			map[string]any{"label": "Long", "type": "fixed_duration"},
		},
	}

	var decoded []sessionType
	require.NoError(t, rec.DecodeInto("session_types", &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Short", decoded[0].Label)
	assert.Equal(t, "fixed_duration", decoded[1].Type)

	var untouched []sessionType
	require.NoError(t, rec.DecodeInto("absent", &untouched))
	assert.Nil(t, untouched)
}
