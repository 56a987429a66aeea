package manager

import (
	"crypto/md5" //nolint:gosec // session type fingerprinting, not security
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"bookable/internal/domains/service/fieldmap"
	"bookable/internal/domains/service/model"
	"bookable/internal/domains/service/model/dto"
	"bookable/internal/domains/service/rulecodec"
	"bookable/shared/record"
)

// ir is the intermediate shape between an entity record and storage rows.
// Core fields live under Post keyed by storage names, metadata under Meta
// keyed by unprefixed keys, and availability sits at the top level because
// it maps to rule rows rather than a record column.
type ir struct {
	Post            map[string]any
	Meta            map[string]any
	Availability    []dto.SessionRule
	HasAvailability bool
	ImageID         *string
}

// entityToIR splits a domain-keyed record into the intermediate
// representation. The record type and bookings flag are seeded so every
// stored service is discoverable even when the caller omits them.
func (m *managerImpl) entityToIR(rec record.Record) (ir, error) {
	out := ir{
		Post: map[string]any{model.FieldPostType: m.cfg.Services.PostType},
		Meta: map[string]any{model.MetaBookingsEnabled: "1"},
	}

	for key, value := range rec {
		switch {
		case key == dto.KeyAvailability:
			rules, err := decodeRules(value)
			if err != nil {
				return out, err
			}

			out.Availability = rules
			out.HasAvailability = true
		case key == dto.KeyImageID:
			imageID := rec.GetString(key)
			out.ImageID = &imageID
		case key == dto.KeyScheduleID:
			// Schedule linkage is owned by the manager, never by callers.
		case key == model.MetaBookingsEnabled:
			enabled := "1"
			if !toBool(value) {
				enabled = ""
			}

			out.Meta[model.MetaBookingsEnabled] = enabled
		case key == model.MetaSessionTypes:
			types, err := decodeSessionTypes(value)
			if err != nil {
				return out, err
			}

			out.Meta[model.MetaSessionTypes] = stampSessionTypes(types)
		case fieldmap.IsCoreField(key):
			storageKey, _ := fieldmap.ToStorageKey(key)
			out.Post[storageKey] = value
		default:
			out.Meta[key] = value
		}
	}

	return out, nil
}

// irToRow renders the intermediate representation into a record column map
// and a prefixed meta map ready for storage. The meta prefix is applied here
// and nowhere else.
func (m *managerImpl) irToRow(in ir) (map[string]any, map[string]string, error) {
	post := make(map[string]any, len(in.Post))
	for key, value := range in.Post {
		post[key] = value
	}

	post[model.FieldPostType] = m.cfg.Services.PostType

	meta := make(map[string]string, len(in.Meta))

	for key, value := range in.Meta {
		encoded, err := encodeMetaValue(value)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding meta %s: %w", key, err)
		}

		meta[m.cfg.Services.MetaPrefix+key] = encoded
	}

	return post, meta, nil
}

// rowToEntity assembles a domain-keyed record from storage rows. Availability
// timestamps are rendered in the schedule's timezone-agnostic storage form.
func (m *managerImpl) rowToEntity(rec model.Record, metas []model.Meta, schedule model.Schedule, rules []model.SessionRule) record.Record {
	out := record.Record{
		dto.KeyID:          rec.ID,
		dto.KeyName:        rec.PostTitle,
		dto.KeyDescription: rec.PostExcerpt,
		dto.KeyStatus:      rec.PostStatus,
	}

	prefix := m.cfg.Services.MetaPrefix

	for _, meta := range metas {
		if !strings.HasPrefix(meta.MetaKey, prefix) {
			continue
		}

		out.Set(strings.TrimPrefix(meta.MetaKey, prefix), decodeMetaValue(meta.MetaValue))
	}

	if schedule.ID != "" {
		out.Set(dto.KeyScheduleID, schedule.ID)
	}

	if schedule.Timezone != "" {
		out.Set(dto.KeyTimezone, schedule.Timezone)
	}

	availability := make([]dto.SessionRule, 0, len(rules))
	for _, rule := range rules {
		availability = append(availability, rulecodec.Decode(rule))
	}

	out.Set(dto.KeyAvailability, availability)

	return out
}

// stampSessionTypes assigns each session type missing an id a deterministic
// fingerprint of its content, keeping ids stable across identical saves.
func stampSessionTypes(types []dto.SessionType) []dto.SessionType {
	out := make([]dto.SessionType, len(types))

	for idx, sessionType := range types {
		if sessionType.ID == "" {
			fingerprint := sessionType
			fingerprint.ID = ""

			raw, err := json.Marshal(fingerprint)
			if err == nil {
				sum := md5.Sum(raw) //nolint:gosec
				sessionType.ID = hex.EncodeToString(sum[:])
			}
		}

		out[idx] = sessionType
	}

	return out
}

func decodeRules(value any) ([]dto.SessionRule, error) {
	if rules, ok := value.([]dto.SessionRule); ok {
		return rules, nil
	}

	var rules []dto.SessionRule
	if err := reencode(value, &rules); err != nil {
		return nil, fmt.Errorf("decoding availability: %w", err)
	}

	return rules, nil
}

func decodeSessionTypes(value any) ([]dto.SessionType, error) {
	if types, ok := value.([]dto.SessionType); ok {
		return types, nil
	}

	var types []dto.SessionType
	if err := reencode(value, &types); err != nil {
		return nil, fmt.Errorf("decoding session types: %w", err)
	}

	return types, nil
}

func reencode(value, target any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return json.Unmarshal(raw, target) //nolint:wrapcheck
}

// encodeMetaValue stores strings verbatim, booleans as the host-compatible
// "1"/"" pair, and anything structured as JSON.
func encodeMetaValue(value any) (string, error) {
	switch typed := value.(type) {
	case string:
		return typed, nil
	case bool:
		if typed {
			return "1", nil
		}

		return "", nil
	default:
		raw, err := json.Marshal(typed)
		if err != nil {
			return "", err //nolint:wrapcheck
		}

		return string(raw), nil
	}
}

// decodeMetaValue reverses encodeMetaValue. Values that do not parse as JSON
// are plain strings.
func decodeMetaValue(value string) any {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return value
	}

	return decoded
}

func toBool(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		return typed == "1" || typed == "true"
	default:
		return false
	}
}
