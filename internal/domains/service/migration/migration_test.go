package migration_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookable/config"
	"bookable/infras/otel/mocks"
	serviceMocks "bookable/internal/domains/service/mocks"
	"bookable/internal/domains/service/migration"
	"bookable/internal/domains/service/model"
	gDto "bookable/shared/dto"
)

func newMigrator(ctrl *gomock.Controller) (migration.Migrator, *serviceMocks.MockMeta) {
	mockMeta := serviceMocks.NewMockMeta(ctrl)

	cfg := &config.Config{}
	cfg.Services.MetaPrefix = "eddbk_"
	cfg.Services.PostType = "download"

	return migration.New(mockMeta, cfg, mocks.NewOtel()), mockMeta
}

func TestConvertSessionTypes(t *testing.T) {
	t.Run("rewrites legacy entries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		migrator, mockMeta := newMigrator(ctrl)

		metas := []model.Meta{
			{RecordID: "svc-1", MetaKey: "eddbk_session_types", MetaValue: `[{"sessionLength":3600,"price":25}]`},
			{RecordID: "svc-2", MetaKey: "eddbk_session_types", MetaValue: `[{"id":"st-1","label":"Hour","type":"fixed_duration","data":{"duration":3600,"price":25}}]`},
		}

		mockMeta.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(metas, nil)

		var saved model.Meta

		mockMeta.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, meta model.Meta) error {
				saved = meta
				return nil
			})

		converted, err := migrator.ConvertSessionTypes(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, converted)
		assert.Equal(t, "svc-1", saved.RecordID)

		var elements []map[string]any
		require.NoError(t, json.Unmarshal([]byte(saved.MetaValue), &elements))
		require.Len(t, elements, 1)
		assert.Equal(t, "fixed_duration", elements[0]["type"])

		data, ok := elements[0]["data"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 3600, data["duration"])
		assert.EqualValues(t, 25, data["price"])
	})

	t.Run("scans only metadata of service records", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		migrator, mockMeta := newMigrator(ctrl)

		var captured gDto.FilterGroup

		mockMeta.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Meta, error) {
				captured = filter
				return nil, nil
			})

		_, err := migrator.ConvertSessionTypes(context.Background())

		require.NoError(t, err)
		require.Len(t, captured.Filters, 2)

		keyFilter, ok := captured.Filters[0].(gDto.Filter)
		require.True(t, ok)
		assert.Equal(t, gDto.FilterOperatorEq, keyFilter.Operator)
		assert.Equal(t, "eddbk_session_types", keyFilter.Value)

		typeFilter, ok := captured.Filters[1].(gDto.Filter)
		require.True(t, ok)
		assert.Equal(t, gDto.FilterPlainQuery, typeFilter.Operator)
		assert.Contains(t, typeFilter.Value, "post_type")
		assert.Equal(t, "download", typeFilter.Args["record_post_type"])
	})

	t.Run("second run changes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		migrator, mockMeta := newMigrator(ctrl)

		metas := []model.Meta{
			{RecordID: "svc-1", MetaKey: "eddbk_session_types", MetaValue: `[{"label":"","type":"fixed_duration","data":{"duration":3600,"price":25}}]`},
		}

		mockMeta.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(metas, nil)

		converted, err := migrator.ConvertSessionTypes(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, converted)
	})

	t.Run("unreadable metadata is skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		migrator, mockMeta := newMigrator(ctrl)

		metas := []model.Meta{
			{RecordID: "svc-1", MetaKey: "eddbk_session_types", MetaValue: `not json`},
		}

		mockMeta.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(metas, nil)

		converted, err := migrator.ConvertSessionTypes(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, converted)
	})
}

func TestConvertElement(t *testing.T) {
	t.Run("keeps the element id", func(t *testing.T) {
		element := map[string]any{"id": "st-1", "sessionLength": float64(1800), "price": float64(15)}

		out, changed := migration.ConvertElement(element)

		assert.True(t, changed)
		assert.Equal(t, "st-1", out["id"])
	})

	t.Run("typed entries pass through", func(t *testing.T) {
		element := map[string]any{"type": "fixed_duration"}

		out, changed := migration.ConvertElement(element)

		assert.False(t, changed)
		assert.Equal(t, element, out)
	})

	t.Run("entries without the legacy key pass through", func(t *testing.T) {
		_, changed := migration.ConvertElement(map[string]any{"label": "Hour"})

		assert.False(t, changed)
	})
}
