package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"bookable/infras/otel"
	"bookable/infras/postgres"
	"bookable/internal/domains/service/model"
	"bookable/shared/constant"
	gDto "bookable/shared/dto"
	"bookable/shared/logger"
	gRepo "bookable/shared/repository"
)

type Record interface {
	Insert(ctx context.Context, model model.Record) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Record) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Record, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Record, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type Meta interface {
	Upsert(ctx context.Context, meta model.Meta) error
	UpsertTx(ctx context.Context, sqltx *sqlx.Tx, meta model.Meta) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Meta, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type Schedule interface {
	Insert(ctx context.Context, model model.Schedule) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Schedule) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Schedule, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type Rule interface {
	Insert(ctx context.Context, model model.SessionRule) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.SessionRule) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.SessionRule, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SessionRule, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type recordRepositoryImpl struct {
	gRepo.Repository[model.Record]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRecord(db *postgres.Connection, otel otel.Otel) Record {
	return &recordRepositoryImpl{
		Repository: gRepo.NewRepository[model.Record](model.EntityName, model.TableRecords, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Update lowercases incoming column keys so mapper output keyed by the
// canonical "ID" storage key still addresses the "id" column.
func (repo *recordRepositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	return repo.Repository.Update(ctx, lowerKeys(req), filter) //nolint:wrapcheck
}

func (repo *recordRepositoryImpl) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error {
	return repo.Repository.UpdateTx(ctx, sqltx, lowerKeys(req), filter) //nolint:wrapcheck
}

func lowerKeys(req map[string]any) map[string]any {
	out := make(map[string]any, len(req))
	for key, value := range req {
		out[strings.ToLower(key)] = value
	}

	return out
}

type metaRepositoryImpl struct {
	gRepo.Repository[model.Meta]
	db   *postgres.Connection
	otel otel.Otel
}

func NewMeta(db *postgres.Connection, otel otel.Otel) Meta {
	return &metaRepositoryImpl{
		Repository: gRepo.NewRepository[model.Meta](model.EntityName+"_meta", model.TableRecordMeta, model.FieldRecordID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *metaRepositoryImpl) upsert(ctx context.Context, exec sqlx.ExtContext, meta model.Meta) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".record_meta.upsert")
	defer scope.End()

	query := fmt.Sprintf(
		"INSERT INTO %s (record_id, meta_key, meta_value) VALUES (:record_id, :meta_key, :meta_value) ON CONFLICT (record_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value",
		model.TableRecordMeta,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = sqlx.NamedExecContext(ctx, exec, query, meta)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert record meta: %w", err)
	}

	return nil
}

func (repo *metaRepositoryImpl) Upsert(ctx context.Context, meta model.Meta) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".record_meta.Upsert")
	defer scope.End()

	return repo.upsert(ctx, repo.db.Write, meta)
}

func (repo *metaRepositoryImpl) UpsertTx(ctx context.Context, sqltx *sqlx.Tx, meta model.Meta) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".record_meta.UpsertTx")
	defer scope.End()

	return repo.upsert(ctx, sqltx, meta)
}

type scheduleRepositoryImpl struct {
	gRepo.Repository[model.Schedule]
	db   *postgres.Connection
	otel otel.Otel
}

func NewSchedule(db *postgres.Connection, otel otel.Otel) Schedule {
	return &scheduleRepositoryImpl{
		Repository: gRepo.NewRepository[model.Schedule](model.ScheduleEntityName, model.TableSchedules, model.FieldScheduleID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type ruleRepositoryImpl struct {
	gRepo.Repository[model.SessionRule]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRule(db *postgres.Connection, otel otel.Otel) Rule {
	return &ruleRepositoryImpl{
		Repository: gRepo.NewRepository[model.SessionRule](model.RuleEntityName, model.TableSessionRules, model.FieldRuleID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// MetaExistsFilter builds a plain filter matching records that carry the
// given meta key/value pair. The idx keeps bind names unique when several
// meta conditions join one where clause.
func MetaExistsFilter(metaKey, metaValue string, idx int) gDto.Filter {
	keyArg := fmt.Sprintf("meta_key_%d", idx)
	valueArg := fmt.Sprintf("meta_value_%d", idx)

	query := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s WHERE %s.record_id = %s.id AND %s.meta_key = :%s AND %s.meta_value = :%s)",
		model.TableRecordMeta, model.TableRecordMeta, model.TableRecords,
		model.TableRecordMeta, keyArg, model.TableRecordMeta, valueArg,
	)

	return gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    query,
		Args: map[string]any{
			keyArg:   metaKey,
			valueArg: metaValue,
		},
	}
}

// MetaOfRecordTypeFilter builds a plain filter keeping meta rows whose owning
// record carries the given post type.
func MetaOfRecordTypeFilter(postType string) gDto.Filter {
	query := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s WHERE %s.id = %s.record_id AND %s.post_type = :record_post_type)",
		model.TableRecords, model.TableRecords, model.TableRecordMeta, model.TableRecords,
	)

	return gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    query,
		Args: map[string]any{
			"record_post_type": postType,
		},
	}
}
