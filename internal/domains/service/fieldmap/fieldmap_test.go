package fieldmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookable/internal/domains/service/fieldmap"
)

func TestToStorageKey(t *testing.T) {
	testCases := []struct {
		name      string
		domainKey string
		want      string
		wantOk    bool
	}{
		{name: "id maps to host key", domainKey: "id", want: "ID", wantOk: true},
		{name: "name maps to title column", domainKey: "name", want: "post_title", wantOk: true},
		{name: "description maps to excerpt column", domainKey: "description", want: "post_excerpt", wantOk: true},
		{name: "status maps to status column", domainKey: "status", want: "post_status", wantOk: true},
		{name: "menu_order passes through", domainKey: "menu_order", want: "menu_order", wantOk: true},
		{name: "tags_input passes through", domainKey: "tags_input", want: "tags_input", wantOk: true},
		{name: "tax_input passes through", domainKey: "tax_input", want: "tax_input", wantOk: true},
		{name: "meta_input passes through", domainKey: "meta_input", want: "meta_input", wantOk: true},
		{name: "meta key falls back to identity", domainKey: "bookings_enabled", want: "bookings_enabled", wantOk: false},
		{name: "unknown key falls back to identity", domainKey: "whatever", want: "whatever", wantOk: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := fieldmap.ToStorageKey(tc.domainKey)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOk, ok)
		})
	}
}

func TestToDomainKey(t *testing.T) {
	testCases := []struct {
		name       string
		storageKey string
		want       string
		wantOk     bool
	}{
		{name: "host id key maps back", storageKey: "ID", want: "id", wantOk: true},
		{name: "title column maps back", storageKey: "post_title", want: "name", wantOk: true},
		{name: "excerpt column maps back", storageKey: "post_excerpt", want: "description", wantOk: true},
		{name: "unknown key falls back to identity", storageKey: "meta_value", want: "meta_value", wantOk: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := fieldmap.ToDomainKey(tc.storageKey)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOk, ok)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, domainKey := range fieldmap.DomainKeys() {
		storageKey, ok := fieldmap.ToStorageKey(domainKey)
		assert.True(t, ok, domainKey)

		back, ok := fieldmap.ToDomainKey(storageKey)
		assert.True(t, ok, storageKey)
		assert.Equal(t, domainKey, back)
	}
}

func TestIsCoreField(t *testing.T) {
	assert.True(t, fieldmap.IsCoreField("id"))
	assert.True(t, fieldmap.IsCoreField("name"))
	assert.False(t, fieldmap.IsCoreField("availability"))
	assert.False(t, fieldmap.IsCoreField("session_types"))
}
