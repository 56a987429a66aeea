package manager

//go:generate go run go.uber.org/mock/mockgen -source=./manager.go -destination=./mocks/manager_mock.go -package=mocks

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"bookable/config"
	"bookable/infras/kafka"
	"bookable/infras/otel"
	"bookable/infras/postgres"
	"bookable/internal/domains/service/fieldmap"
	"bookable/internal/domains/service/model"
	"bookable/internal/domains/service/model/dto"
	"bookable/internal/domains/service/repository"
	"bookable/shared"
	"bookable/shared/cache"
	"bookable/shared/constant"
	gDto "bookable/shared/dto"
	"bookable/shared/failure"
	"bookable/shared/record"
	"bookable/shared/timezone"
)

const (
	cacheGetService    = "service:get"
	cacheGetAllService = "service:gets"
	cacheCountService  = "service:count"
)

// Service lifecycle events published to the broker after each write.
const (
	EventServiceCreated = "service.created"
	EventServiceUpdated = "service.updated"
	EventServiceDeleted = "service.deleted"
)

type ServiceEvent struct {
	Event      string    `json:"event"`
	ServiceID  string    `json:"service_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ImageResolver turns a stored image id into a serveable URL.
type ImageResolver interface {
	ResolveURL(ctx context.Context, imageID string) (string, error)
}

type Manager interface {
	Add(ctx context.Context, req dto.CreateServiceRequest) (dto.ServiceResponse, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	Has(ctx context.Context, id string) (bool, error)
	Query(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, id string, req dto.UpdateServiceRequest) (dto.ServiceResponse, error)
	Set(ctx context.Context, id string, req dto.CreateServiceRequest) (dto.ServiceResponse, error)
	Delete(ctx context.Context, id string) error
}

type managerImpl struct {
	records   repository.Record
	meta      repository.Meta
	schedules repository.Schedule
	rules     repository.Rule
	tx        postgres.Transactor
	images    ImageResolver
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	kafka     kafka.Client
}

func New(
	records repository.Record,
	meta repository.Meta,
	schedules repository.Schedule,
	rules repository.Rule,
	tx postgres.Transactor,
	images ImageResolver,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Manager {
	return &managerImpl{
		records:   records,
		meta:      meta,
		schedules: schedules,
		rules:     rules,
		tx:        tx,
		images:    images,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		kafka:     kafka,
	}
}

func (m *managerImpl) Add(ctx context.Context, req dto.CreateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer scope.TraceIfError(err)

	in, err := m.entityToIR(req.ToRecord())
	if err != nil {
		log.Error().Err(err).Msg("failed to convert service request")

		return res, failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	}

	_, metaRows, err := m.irToRow(in)
	if err != nil {
		log.Error().Err(err).Msg("failed to render service rows")

		return res, err
	}

	id := uuid.NewString()
	scheduleID := uuid.NewString()
	now := timezone.Now()
	tzName := m.resolveTimezone(in, model.Schedule{})

	post := record.Record(in.Post)

	rec := model.Record{
		ID:           id,
		PostTitle:    post.GetString(model.FieldPostTitle),
		PostExcerpt:  post.GetString(model.FieldPostExcerpt),
		PostStatus:   post.GetString(model.FieldPostStatus),
		PostType:     m.cfg.Services.PostType,
		PostContent:  post.GetString(model.FieldPostContent),
		PostAuthor:   post.GetString(model.FieldPostAuthor),
		PostParent:   post.GetString(model.FieldPostParent),
		PostDate:     now,
		PostModified: now,
	}

	if rec.PostStatus == constant.Empty {
		rec.PostStatus = model.StatusDraft
	}

	metaRows[m.cfg.Services.MetaPrefix+model.MetaScheduleID] = scheduleID

	if in.ImageID != nil && *in.ImageID != constant.Empty {
		metaRows[m.cfg.Services.MetaPrefix+model.MetaImageID] = *in.ImageID
	}

	err = m.tx.RunInTx(ctx, func(sqltx *sqlx.Tx) error {
		if err := m.records.InsertTx(ctx, sqltx, rec); err != nil {
			return err
		}

		schedule := model.Schedule{ID: scheduleID, ServiceID: id, Timezone: tzName}
		if err := m.schedules.InsertTx(ctx, sqltx, schedule); err != nil {
			return err
		}

		if err := m.upsertMetaTx(ctx, sqltx, id, metaRows); err != nil {
			return err
		}

		return m.reconcileRules(ctx, sqltx, scheduleID, tzName, in.Availability)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create service")

		return res, err
	}

	m.invalidateListCaches(ctx)
	m.publishEvent(ctx, EventServiceCreated, id)

	return m.Get(ctx, id)
}

func (m *managerImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	err = m.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service")

		return res, nil
	}

	rec, err := m.records.Get(ctx, m.recordFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, err
	}

	if rec.ID == constant.Empty {
		return res, failure.NotFound("service not found") //nolint:wrapcheck
	}

	entity, err := m.loadEntity(ctx, rec)
	if err != nil {
		return res, err
	}

	if err = res.FromRecord(entity); err != nil {
		log.Error().Err(err).Msg("failed to build service response")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := m.cache.Save(c, cacheKey, res, m.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (m *managerImpl) Has(ctx context.Context, id string) (res bool, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Has")
	defer scope.End()
	defer scope.TraceIfError(err)

	return m.records.Exist(ctx, m.recordFilter(id)) //nolint:wrapcheck
}

func (m *managerImpl) Query(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Query")
	defer scope.End()
	defer scope.TraceIfError(err)

	params = normalizeSort(params)
	scoped := m.scopedFilter(params, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllService, params, scoped)

	err = m.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := m.Count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	records, err := m.records.GetAll(ctx, params, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, err
	}

	entities := make([]record.Record, 0, len(records))

	for _, rec := range records {
		entity, err := m.loadEntity(ctx, rec)
		if err != nil {
			return res, err
		}

		entities = append(entities, entity)
	}

	if err = res.FromRecords(entities, total, shared.CalculateTotalPage(total, params.Limit)); err != nil {
		log.Error().Err(err).Msg("failed to build services response")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := m.cache.Save(c, cacheKey, res, m.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (m *managerImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	params = normalizeSort(params)
	scoped := m.scopedFilter(params, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountService, params, scoped)

	err = m.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service count")

		return res, nil
	}

	res, err = m.records.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := m.cache.Save(c, cacheKey, res, m.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service count to cache")
		}
	}()

	return res, nil
}

func (m *managerImpl) Update(ctx context.Context, id string, req dto.UpdateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := m.recordFilter(id)

	current, err := m.records.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check service existence")

		return res, err
	}

	if current.ID == constant.Empty {
		log.Error().Str("id", id).Msg("service not found")

		return res, failure.NotFound("service not found") //nolint:wrapcheck
	}

	in, err := m.entityToIR(req.ToRecord())
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	}

	// Partial update: only keys the caller supplied may change.
	m.dropUnsuppliedSeeds(req, &in)

	post, metaRows, err := m.irToRow(in)
	if err != nil {
		return res, err
	}

	schedule, err := m.schedules.Get(ctx, m.scheduleFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service schedule")

		return res, err
	}

	tzName := m.resolveTimezone(in, schedule)

	err = m.tx.RunInTx(ctx, func(sqltx *sqlx.Tx) error {
		post[model.FieldPostModified] = timezone.Now()

		if err := m.records.UpdateTx(ctx, sqltx, post, filter); err != nil {
			return err
		}

		if err := m.upsertMetaTx(ctx, sqltx, id, metaRows); err != nil {
			return err
		}

		if in.ImageID != nil {
			if err := m.applyImageTx(ctx, sqltx, id, *in.ImageID); err != nil {
				return err
			}
		}

		return m.applyScheduleTx(ctx, sqltx, id, &schedule, tzName, in)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update service")

		return res, err
	}

	m.invalidateWriteCaches(ctx, id)
	m.publishEvent(ctx, EventServiceUpdated, id)

	return m.Get(ctx, id)
}

func (m *managerImpl) Set(ctx context.Context, id string, req dto.CreateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Set")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := m.recordFilter(id)

	current, err := m.records.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check service existence")

		return res, err
	}

	if current.ID == constant.Empty {
		log.Error().Str("id", id).Msg("service not found")

		return res, failure.NotFound("service not found") //nolint:wrapcheck
	}

	in, err := m.entityToIR(req.ToRecord())
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	}

	_, metaRows, err := m.irToRow(in)
	if err != nil {
		return res, err
	}

	schedule, err := m.schedules.Get(ctx, m.scheduleFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service schedule")

		return res, err
	}

	tzName := m.resolveTimezone(in, schedule)
	post := record.Record(in.Post)

	status := post.GetString(model.FieldPostStatus)
	if status == constant.Empty {
		status = model.StatusDraft
	}

	// Full replacement: every core column is overwritten and stale
	// metadata is removed.
	fields := map[string]any{
		model.FieldPostTitle:    post.GetString(model.FieldPostTitle),
		model.FieldPostExcerpt:  post.GetString(model.FieldPostExcerpt),
		model.FieldPostStatus:   status,
		model.FieldPostType:     m.cfg.Services.PostType,
		model.FieldPostModified: timezone.Now(),
	}

	err = m.tx.RunInTx(ctx, func(sqltx *sqlx.Tx) error {
		if err := m.records.UpdateTx(ctx, sqltx, fields, filter); err != nil {
			return err
		}

		if err := m.replaceMetaTx(ctx, sqltx, id, metaRows); err != nil {
			return err
		}

		if in.ImageID != nil {
			if err := m.applyImageTx(ctx, sqltx, id, *in.ImageID); err != nil {
				return err
			}
		}

		return m.applyScheduleTx(ctx, sqltx, id, &schedule, tzName, in)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to replace service")

		return res, err
	}

	m.invalidateWriteCaches(ctx, id)
	m.publishEvent(ctx, EventServiceUpdated, id)

	return m.Get(ctx, id)
}

func (m *managerImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := m.records.Exist(ctx, m.recordFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check service existence")

		return err
	}

	if !exist {
		log.Error().Str("id", id).Msg("service not found")

		return failure.NotFound("service not found") //nolint:wrapcheck
	}

	schedule, err := m.schedules.Get(ctx, m.scheduleFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service schedule")

		return err
	}

	err = m.tx.RunInTx(ctx, func(sqltx *sqlx.Tx) error {
		if schedule.ID != constant.Empty {
			rulesFilter := gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{gDto.Filter{
					Field:    model.FieldResourceID,
					Operator: gDto.FilterOperatorEq,
					Value:    schedule.ID,
				}},
			}
			if err := m.rules.DeleteTx(ctx, sqltx, rulesFilter); err != nil {
				return err
			}

			if err := m.schedules.DeleteTx(ctx, sqltx, m.scheduleFilter(id)); err != nil {
				return err
			}
		}

		metaFilter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{gDto.Filter{
				Field:    model.FieldRecordID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
			}},
		}
		if err := m.meta.DeleteTx(ctx, sqltx, metaFilter); err != nil {
			return err
		}

		return m.records.DeleteTx(ctx, sqltx, m.recordFilter(id))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete service")

		return err
	}

	m.invalidateWriteCaches(ctx, id)
	m.publishEvent(ctx, EventServiceDeleted, id)

	return nil
}

// loadEntity resolves the record's children and assembles the domain view.
// Any child failing to resolve aborts the read.
func (m *managerImpl) loadEntity(ctx context.Context, rec model.Record) (record.Record, error) {
	metaFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{gDto.Filter{
			Field:    model.FieldRecordID,
			Operator: gDto.FilterOperatorEq,
			Value:    rec.ID,
		}},
	}

	metas, err := m.meta.GetAll(ctx, gDto.QueryParams{}, metaFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service metadata")

		return nil, err
	}

	schedule, err := m.schedules.Get(ctx, m.scheduleFilter(rec.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service schedule")

		return nil, err
	}

	var rules []model.SessionRule

	if schedule.ID != constant.Empty {
		rulesFilter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{gDto.Filter{
				Field:    model.FieldResourceID,
				Operator: gDto.FilterOperatorEq,
				Value:    schedule.ID,
			}},
		}

		rules, err = m.rules.GetAll(ctx, gDto.QueryParams{}, rulesFilter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get service rules")

			return nil, err
		}
	}

	entity := m.rowToEntity(rec, metas, schedule, rules)
	m.resolveImage(ctx, entity)

	return entity, nil
}

func (m *managerImpl) resolveImage(ctx context.Context, entity record.Record) {
	imageID := entity.GetString(dto.KeyImageID)
	if imageID == constant.Empty || m.images == nil {
		return
	}

	url, err := m.images.ResolveURL(ctx, imageID)
	if err != nil {
		log.Warn().Err(err).Str("imageId", imageID).Msg("failed to resolve service image")

		return
	}

	entity.Set(dto.KeyImageURL, url)
}

func (m *managerImpl) upsertMetaTx(ctx context.Context, sqltx *sqlx.Tx, id string, metaRows map[string]string) error {
	for key, value := range metaRows {
		meta := model.Meta{RecordID: id, MetaKey: key, MetaValue: value}
		if err := m.meta.UpsertTx(ctx, sqltx, meta); err != nil {
			return err
		}
	}

	return nil
}

// replaceMetaTx deletes metadata absent from the new set before writing it.
// The schedule link survives a replacement because it is manager-owned.
func (m *managerImpl) replaceMetaTx(ctx context.Context, sqltx *sqlx.Tx, id string, metaRows map[string]string) error {
	kept := make([]string, 0, len(metaRows)+2)
	for key := range metaRows {
		kept = append(kept, key)
	}

	kept = append(kept,
		m.cfg.Services.MetaPrefix+model.MetaScheduleID,
		m.cfg.Services.MetaPrefix+model.MetaImageID,
	)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRecordID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
			},
			gDto.Filter{
				Field:    model.FieldMetaKey,
				ArgName:  "kept_meta_key",
				Operator: gDto.FilterOperatorNotIn,
				Value:    kept,
			},
		},
	}

	if err := m.meta.DeleteTx(ctx, sqltx, filter); err != nil {
		return err
	}

	return m.upsertMetaTx(ctx, sqltx, id, metaRows)
}

// applyImageTx attaches the image to the record, or detaches it when the
// caller sent an explicit empty id.
func (m *managerImpl) applyImageTx(ctx context.Context, sqltx *sqlx.Tx, id, imageID string) error {
	metaKey := m.cfg.Services.MetaPrefix + model.MetaImageID

	if imageID == constant.Empty {
		filter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldRecordID,
					Operator: gDto.FilterOperatorEq,
					Value:    id,
				},
				gDto.Filter{
					Field:    model.FieldMetaKey,
					ArgName:  "image_meta_key",
					Operator: gDto.FilterOperatorEq,
					Value:    metaKey,
				},
			},
		}

		return m.meta.DeleteTx(ctx, sqltx, filter)
	}

	return m.meta.UpsertTx(ctx, sqltx, model.Meta{RecordID: id, MetaKey: metaKey, MetaValue: imageID})
}

// applyScheduleTx keeps the schedule row and its rules in step with the
// incoming change. A schedule is created lazily the first time availability
// or a timezone shows up for a record that has none.
func (m *managerImpl) applyScheduleTx(ctx context.Context, sqltx *sqlx.Tx, id string, schedule *model.Schedule, tzName string, in ir) error {
	if schedule.ID == constant.Empty {
		if !in.HasAvailability {
			return nil
		}

		schedule.ID = uuid.NewString()
		schedule.ServiceID = id
		schedule.Timezone = tzName

		if err := m.schedules.InsertTx(ctx, sqltx, *schedule); err != nil {
			return err
		}

		metaKey := m.cfg.Services.MetaPrefix + model.MetaScheduleID
		meta := model.Meta{RecordID: id, MetaKey: metaKey, MetaValue: schedule.ID}

		if err := m.meta.UpsertTx(ctx, sqltx, meta); err != nil {
			return err
		}
	} else if schedule.Timezone != tzName {
		fields := map[string]any{"timezone": tzName}
		if err := m.schedules.UpdateTx(ctx, sqltx, fields, m.scheduleFilter(id)); err != nil {
			return err
		}

		schedule.Timezone = tzName
	}

	if !in.HasAvailability {
		return nil
	}

	return m.reconcileRules(ctx, sqltx, schedule.ID, tzName, in.Availability)
}

// resolveTimezone picks the timezone rule datetimes are interpreted in: the
// incoming value wins, then the stored schedule's, then UTC.
func (m *managerImpl) resolveTimezone(in ir, schedule model.Schedule) string {
	if tz, ok := in.Meta[model.MetaTimezone]; ok {
		if name, ok := tz.(string); ok && name != constant.Empty {
			return name
		}
	}

	if schedule.Timezone != constant.Empty {
		return schedule.Timezone
	}

	return constant.DefaultTimezone
}

// dropUnsuppliedSeeds strips the creation defaults from a partial update so
// omitted fields keep their stored values.
func (m *managerImpl) dropUnsuppliedSeeds(req dto.UpdateServiceRequest, in *ir) {
	if req.BookingsEnabled == nil {
		delete(in.Meta, model.MetaBookingsEnabled)
	}
}

func (m *managerImpl) recordFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Table:    model.TableRecords,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
			},
			gDto.Filter{
				Field:    model.FieldPostType,
				Table:    model.TableRecords,
				Operator: gDto.FilterOperatorEq,
				Value:    m.cfg.Services.PostType,
			},
		},
	}
}

func (m *managerImpl) scheduleFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{gDto.Filter{
			Field:    model.FieldServiceID,
			Operator: gDto.FilterOperatorEq,
			Value:    id,
		}},
	}
}

// Sortable record columns. Anything else would end up quoted verbatim in the
// ORDER BY clause and fail at the database.
var sortColumns = map[string]struct{}{
	model.FieldID:           {},
	model.FieldPostTitle:    {},
	model.FieldPostExcerpt:  {},
	model.FieldPostStatus:   {},
	model.FieldPostType:     {},
	model.FieldPostDate:     {},
	model.FieldPostModified: {},
	model.FieldPostContent:  {},
	model.FieldPostAuthor:   {},
	model.FieldPostParent:   {},
	model.FieldMenuOrder:    {},
}

// normalizeSort maps a domain sort key to its storage column so callers can
// sort by the names they read and write. Keys that do not address a record
// column fall back to the default ordering.
func normalizeSort(params gDto.QueryParams) gDto.QueryParams {
	if storageKey, ok := fieldmap.ToStorageKey(params.SortBy); ok {
		params.SortBy = strings.ToLower(storageKey)
	}

	if _, ok := sortColumns[params.SortBy]; !ok {
		params.SortBy = constant.DefaultValueSortBy
	}

	return params
}

// scopedFilter narrows any caller filter to service records and applies the
// free-text search against the service name.
func (m *managerImpl) scopedFilter(params gDto.QueryParams, filter gDto.FilterGroup) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldPostType,
			Table:    model.TableRecords,
			Operator: gDto.FilterOperatorEq,
			Value:    m.cfg.Services.PostType,
		},
	}

	if params.Search != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldPostTitle,
			Table:    model.TableRecords,
			Operator: gDto.FilterOperatorLike,
			Value:    params.Search,
		})
	}

	if len(filter.Filters) > 0 {
		filters = append(filters, filter)
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func (m *managerImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, m.cache, cacheGetAllService)
		shared.InvalidateCaches(c, m.cache, cacheCountService)
	}()
}

func (m *managerImpl) invalidateWriteCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := m.cache.Delete(c, shared.BuildCacheKey(cacheGetService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service cache")
		}

		shared.InvalidateCaches(c, m.cache, cacheGetAllService)
		shared.InvalidateCaches(c, m.cache, cacheCountService)
	}()
}

func (m *managerImpl) publishEvent(ctx context.Context, event, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{
			Key: id,
			Value: ServiceEvent{
				Event:      event,
				ServiceID:  id,
				OccurredAt: timezone.Now(),
			},
		}

		if err := m.kafka.SendMessages(c, m.cfg.Kafka.Topic.ServiceEvents, msg); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish service event")
		}
	}()
}
