package fieldmap

// The storage layer keeps the host CMS's record field names, so domain field
// keys are translated at the storage boundary and back when rows are read.
var domainToStorage = map[string]string{
	// Core service fields
	"id":          "ID",
	"name":        "post_title",
	"description": "post_excerpt",
	"status":      "post_status",
	// Other record fields
	"author":     "post_author",
	"type":       "post_type",
	"date":       "post_date",
	"content":    "post_content",
	"parent":     "post_parent",
	"modified":   "post_modified",
	// Technical fields passed through under their own names
	"menu_order": "menu_order",
	"tags_input": "tags_input",
	"tax_input":  "tax_input",
	"meta_input": "meta_input",
}

var storageToDomain = invert(domainToStorage)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for key, value := range m {
		out[value] = key
	}

	return out
}

// ToStorageKey maps a domain field key to its storage counterpart. Unknown
// keys are returned unchanged with ok set to false.
func ToStorageKey(domainKey string) (string, bool) {
	if storageKey, ok := domainToStorage[domainKey]; ok {
		return storageKey, true
	}

	return domainKey, false
}

// ToDomainKey maps a storage field key back to its domain counterpart.
// Unknown keys are returned unchanged with ok set to false.
func ToDomainKey(storageKey string) (string, bool) {
	if domainKey, ok := storageToDomain[storageKey]; ok {
		return domainKey, true
	}

	return storageKey, false
}

// IsCoreField reports whether the domain key addresses a record column
// rather than metadata.
func IsCoreField(domainKey string) bool {
	_, ok := domainToStorage[domainKey]

	return ok
}

// DomainKeys returns the set of known domain field keys.
func DomainKeys() []string {
	keys := make([]string, 0, len(domainToStorage))
	for key := range domainToStorage {
		keys = append(keys, key)
	}

	return keys
}
