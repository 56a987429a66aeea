package manager_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bookable/config"
	kafkaMocks "bookable/infras/kafka/mocks"
	"bookable/infras/otel/mocks"
	"bookable/internal/domains/service/manager"
	serviceMocks "bookable/internal/domains/service/mocks"
	"bookable/internal/domains/service/model"
	"bookable/internal/domains/service/model/dto"
	cacheMocks "bookable/shared/cache/mocks"
	gDto "bookable/shared/dto"
	"bookable/shared/failure"
)

type fakeTransactor struct{}

func (fakeTransactor) RunInTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

type fakeImageResolver struct {
	url string
	err error
}

func (f fakeImageResolver) ResolveURL(ctx context.Context, imageID string) (string, error) {
	return f.url, f.err
}

type managerMocks struct {
	records   *serviceMocks.MockRecord
	meta      *serviceMocks.MockMeta
	schedules *serviceMocks.MockSchedule
	rules     *serviceMocks.MockRule
	cache     *cacheMocks.MockRedisCache
	kafka     *kafkaMocks.MockClient
}

func newManager(ctrl *gomock.Controller, images manager.ImageResolver) (manager.Manager, managerMocks) {
	m := managerMocks{
		records:   serviceMocks.NewMockRecord(ctrl),
		meta:      serviceMocks.NewMockMeta(ctrl),
		schedules: serviceMocks.NewMockSchedule(ctrl),
		rules:     serviceMocks.NewMockRule(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		kafka:     kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Services.PostType = "download"
	cfg.Services.MetaPrefix = "eddbk_"
	cfg.Kafka.Topic.ServiceEvents = "bookable.service-events"

	svc := manager.New(m.records, m.meta, m.schedules, m.rules, fakeTransactor{}, images, cfg, m.cache, mocks.NewOtel(), m.kafka)

	// Async cache maintenance and event publishing run on their own
	// goroutines and may or may not land before a test ends.
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return svc, m
}

func expectReadBack(m managerMocks) {
	rec := model.Record{
		ID:         "svc-1",
		PostTitle:  "Yoga Class",
		PostStatus: model.StatusDraft,
		PostType:   "download",
	}

	metas := []model.Meta{
		{RecordID: "svc-1", MetaKey: "eddbk_bookings_enabled", MetaValue: "1"},
	}

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.records.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rec, nil).AnyTimes()
	m.meta.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(metas, nil).AnyTimes()
	m.schedules.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Schedule{ID: "sched-1", ServiceID: "svc-1", Timezone: "UTC"}, nil).AnyTimes()
	m.rules.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
}

func TestServiceManager_Add(t *testing.T) {
	t.Run("creates record, schedule, metadata and rules", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		var inserted model.Record

		m.records.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, rec model.Record) error {
				inserted = rec
				return nil
			})

		m.schedules.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.meta.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		m.rules.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.rules.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		expectReadBack(m)

		req := dto.CreateServiceRequest{
			Name: "Yoga Class",
			Availability: []dto.SessionRule{
				{Start: "2018-10-10 10:00:00", End: "2018-10-10 18:00:00"},
			},
		}

		res, err := svc.Add(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "Yoga Class", inserted.PostTitle)
		assert.Equal(t, "download", inserted.PostType)
		assert.Equal(t, model.StatusDraft, inserted.PostStatus)
		assert.NotEmpty(t, inserted.ID)
		assert.Equal(t, "Yoga Class", res.Name)
		assert.True(t, res.BookingsEnabled)
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		m.records.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := svc.Add(context.Background(), dto.CreateServiceRequest{Name: "Yoga Class"})

		assert.Error(t, err)
	})

	t.Run("rejects an invalid availability timezone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		m.records.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.schedules.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.meta.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		req := dto.CreateServiceRequest{
			Name:     "Yoga Class",
			Timezone: "Mars/Olympus",
			Availability: []dto.SessionRule{
				{Start: "2018-10-10 10:00:00", End: "2018-10-10 18:00:00"},
			},
		}

		_, err := svc.Add(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 422, failure.GetCode(err))
	})
}

func TestServiceManager_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newManager(ctrl, fakeImageResolver{url: "https://cdn.example.com/img.png"})

	rec := model.Record{
		ID:          "svc-1",
		PostTitle:   "Yoga Class",
		PostExcerpt: "A calm hour",
		PostStatus:  model.StatusPublish,
		PostType:    "download",
	}

	metas := []model.Meta{
		{RecordID: "svc-1", MetaKey: "eddbk_bookings_enabled", MetaValue: "1"},
		{RecordID: "svc-1", MetaKey: "eddbk_session_types", MetaValue: `[{"id":"st-1","label":"Hour","type":"fixed_duration","data":{"duration":3600,"price":25}}]`},
		{RecordID: "svc-1", MetaKey: "eddbk_image_id", MetaValue: "img-1"},
		{RecordID: "svc-1", MetaKey: "other_plugin_key", MetaValue: "ignored"},
	}

	rules := []model.SessionRule{
		{ID: "rule-1", ResourceID: "sched-1", Start: 1539158400, End: 1539187200},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		check     func(t *testing.T, res dto.ServiceResponse)
	}{
		{
			name: "assembles the full service view",
			setupMock: func() {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				m.records.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rec, nil)
				m.meta.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(metas, nil)
				m.schedules.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Schedule{ID: "sched-1", ServiceID: "svc-1", Timezone: "Europe/Paris"}, nil)
				m.rules.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rules, nil)
			},
			check: func(t *testing.T, res dto.ServiceResponse) {
				assert.Equal(t, "svc-1", res.ID)
				assert.Equal(t, "Yoga Class", res.Name)
				assert.Equal(t, "A calm hour", res.Description)
				assert.True(t, res.BookingsEnabled)
				assert.Equal(t, "Europe/Paris", res.Timezone)
				assert.Equal(t, "img-1", res.ImageID)
				assert.Equal(t, "https://cdn.example.com/img.png", res.ImageURL)
				assert.Len(t, res.SessionTypes, 1)
				assert.Equal(t, 3600, res.SessionTypes[0].Data.Duration)
				assert.Len(t, res.Availability, 1)
				assert.Equal(t, "rule-1", res.Availability[0].ID)
			},
		},
		{
			name: "unknown id",
			setupMock: func() {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				m.records.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Record{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "svc-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, failure.IsNotFound(err))
			} else {
				assert.NoError(t, err)
				tt.check(t, res)
			}
		})
	}
}

func TestServiceManager_Has(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newManager(ctrl, nil)

	m.records.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

	exist, err := svc.Has(context.Background(), "svc-1")

	assert.NoError(t, err)
	assert.True(t, exist)
}

func TestServiceManager_Query(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newManager(ctrl, nil)

	records := []model.Record{
		{ID: "svc-1", PostTitle: "Yoga Class", PostStatus: model.StatusPublish, PostType: "download"},
	}

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	m.records.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	m.records.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(records, nil)
	m.meta.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.schedules.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Schedule{}, nil)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	res, err := svc.Query(context.Background(), params, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Services, 1)
	assert.Equal(t, "Yoga Class", res.Services[0].Name)
}

func TestServiceManager_Update(t *testing.T) {
	t.Run("updates only supplied fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		expectReadBack(m)

		var updated map[string]any

		m.records.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				updated = fields
				return nil
			})

		name := "Renamed Class"
		req := dto.UpdateServiceRequest{Name: &name}

		_, err := svc.Update(context.Background(), "svc-1", req)

		assert.NoError(t, err)
		assert.Equal(t, "Renamed Class", updated[model.FieldPostTitle])
		assert.Contains(t, updated, model.FieldPostModified)
		assert.NotContains(t, updated, model.FieldPostExcerpt)
	})

	t.Run("removes the image on an explicit empty id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		expectReadBack(m)

		m.records.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.meta.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		empty := ""
		req := dto.UpdateServiceRequest{ImageID: &empty}

		_, err := svc.Update(context.Background(), "svc-1", req)

		assert.NoError(t, err)
	})

	t.Run("reconciles availability inside the transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		expectReadBack(m)

		m.records.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		// One rule keeps its id and is updated, the other is new.
		m.rules.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.rules.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.rules.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := dto.UpdateServiceRequest{
			Availability: []dto.SessionRule{
				{ID: "rule-1", Start: "2018-10-10 10:00:00", End: "2018-10-10 18:00:00"},
				{Start: "2018-10-11 10:00:00", End: "2018-10-11 18:00:00"},
			},
		}

		_, err := svc.Update(context.Background(), "svc-1", req)

		assert.NoError(t, err)
	})

	t.Run("deletes only rules the caller no longer names", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		expectReadBack(m)

		m.records.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.rules.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		var insertedID string

		m.rules.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, row model.SessionRule) error {
				insertedID = row.ID
				return nil
			})

		var deleteFilter gDto.FilterGroup

		m.rules.EXPECT().
			DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) error {
				deleteFilter = filter
				return nil
			})

		req := dto.UpdateServiceRequest{
			Availability: []dto.SessionRule{
				{ID: "rule-1", Start: "2018-10-10 10:00:00", End: "2018-10-10 18:00:00"},
				{Start: "2018-10-11 10:00:00", End: "2018-10-11 18:00:00"},
			},
		}

		_, err := svc.Update(context.Background(), "svc-1", req)

		assert.NoError(t, err)
		assert.NotEmpty(t, insertedID)

		// The trailing delete sweeps the owning schedule but spares every
		// rule the request still names, the freshly inserted one included.
		if assert.Len(t, deleteFilter.Filters, 2) {
			owner, ok := deleteFilter.Filters[0].(gDto.Filter)
			assert.True(t, ok)
			assert.Equal(t, model.FieldResourceID, owner.Field)
			assert.Equal(t, gDto.FilterOperatorEq, owner.Operator)
			assert.Equal(t, "sched-1", owner.Value)

			keep, ok := deleteFilter.Filters[1].(gDto.Filter)
			assert.True(t, ok)
			assert.Equal(t, model.FieldRuleID, keep.Field)
			assert.Equal(t, gDto.FilterOperatorNotIn, keep.Operator)
			assert.Equal(t, []string{"rule-1", insertedID}, keep.Value)
		}
	})

	t.Run("saving an already assigned set updates in place", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		expectReadBack(m)

		m.records.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		// Every rule carries its id, so the save is pure updates. No
		// InsertTx expectation is registered: an insert would fail the test.
		m.rules.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		var deleteFilter gDto.FilterGroup

		m.rules.EXPECT().
			DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) error {
				deleteFilter = filter
				return nil
			})

		req := dto.UpdateServiceRequest{
			Availability: []dto.SessionRule{
				{ID: "rule-1", Start: "2018-10-10 10:00:00", End: "2018-10-10 18:00:00"},
				{ID: "rule-2", Start: "2018-10-11 10:00:00", End: "2018-10-11 18:00:00"},
			},
		}

		_, err := svc.Update(context.Background(), "svc-1", req)

		assert.NoError(t, err)

		if assert.Len(t, deleteFilter.Filters, 2) {
			keep, ok := deleteFilter.Filters[1].(gDto.Filter)
			assert.True(t, ok)
			assert.Equal(t, []string{"rule-1", "rule-2"}, keep.Value)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		m.records.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Record{}, nil)

		name := "Renamed Class"

		_, err := svc.Update(context.Background(), "svc-1", dto.UpdateServiceRequest{Name: &name})

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestServiceManager_Delete(t *testing.T) {
	t.Run("cascades through rules, schedule and metadata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		m.records.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.schedules.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Schedule{ID: "sched-1", ServiceID: "svc-1"}, nil)

		m.rules.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.schedules.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.meta.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.records.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(context.Background(), "svc-1")

		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newManager(ctrl, nil)

		m.records.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), "svc-1")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}
