package migration

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"bookable/config"
	"bookable/infras/otel"
	"bookable/internal/domains/service/model"
	"bookable/internal/domains/service/model/dto"
	"bookable/internal/domains/service/repository"
	"bookable/shared/constant"
	gDto "bookable/shared/dto"
)

// Migrator upgrades metadata written by older releases to the current shape.
type Migrator interface {
	ConvertSessionTypes(ctx context.Context) (int, error)
}

type migratorImpl struct {
	meta repository.Meta
	cfg  *config.Config
	otel otel.Otel
}

func New(meta repository.Meta, cfg *config.Config, otel otel.Otel) Migrator {
	return &migratorImpl{
		meta: meta,
		cfg:  cfg,
		otel: otel,
	}
}

// ConvertSessionTypes rewrites legacy session length entries into typed
// session types. Entries already carrying a type are left alone, so the
// conversion can run repeatedly. Returns the number of records changed.
func (m *migratorImpl) ConvertSessionTypes(ctx context.Context) (res int, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConvertSessionTypes")
	defer scope.End()
	defer scope.TraceIfError(err)

	metaKey := m.cfg.Services.MetaPrefix + model.MetaSessionTypes

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMetaKey,
				Operator: gDto.FilterOperatorEq,
				Value:    metaKey,
			},
			repository.MetaOfRecordTypeFilter(m.cfg.Services.PostType),
		},
	}

	metas, err := m.meta.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load session type metadata")

		return 0, err
	}

	converted := 0

	for _, meta := range metas {
		var elements []map[string]any
		if err := json.Unmarshal([]byte(meta.MetaValue), &elements); err != nil {
			log.Warn().Str("recordId", meta.RecordID).Msg("skipping unreadable session types")

			continue
		}

		changed := false

		for idx, element := range elements {
			next, ok := ConvertElement(element)
			if ok {
				elements[idx] = next
				changed = true
			}
		}

		if !changed {
			continue
		}

		raw, err := json.Marshal(elements)
		if err != nil {
			return converted, err //nolint:wrapcheck
		}

		meta.MetaValue = string(raw)

		if err := m.meta.Upsert(ctx, meta); err != nil {
			return converted, err
		}

		converted++
	}

	log.Info().Int("converted", converted).Msg("session type conversion finished")

	return converted, nil
}

// ConvertElement rewrites one legacy session length entry. An entry is legacy
// when it carries the old duration key and no type.
func ConvertElement(element map[string]any) (map[string]any, bool) {
	if _, hasType := element["type"]; hasType {
		return element, false
	}

	rawLength, hasLegacy := element[model.MetaLegacySessionLength]
	if !hasLegacy {
		return element, false
	}

	out := map[string]any{
		"label": "",
		"type":  dto.SessionTypeFixedDuration,
		"data": map[string]any{
			"duration": toInt(rawLength),
			"price":    toFloat(element["price"]),
		},
	}

	if id, ok := element["id"]; ok {
		out["id"] = id
	}

	return out, true
}

func toInt(value any) int {
	switch typed := value.(type) {
	case int:
		return typed
	case int64:
		return int(typed)
	case float64:
		return int(typed)
	case string:
		var parsed float64
		if err := json.Unmarshal([]byte(typed), &parsed); err == nil {
			return int(parsed)
		}

		return 0
	default:
		return 0
	}
}

func toFloat(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		var parsed float64
		if err := json.Unmarshal([]byte(typed), &parsed); err == nil {
			return parsed
		}

		return 0
	default:
		return 0
	}
}
