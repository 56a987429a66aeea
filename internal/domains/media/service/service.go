package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	b64 "encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookable/config"
	"bookable/infras/otel"
	"bookable/infras/s3"
	"bookable/internal/domains/media/model"
	"bookable/internal/domains/media/model/dto"
	"bookable/internal/domains/media/repository"
	"bookable/shared"
	"bookable/shared/cache"
	"bookable/shared/constant"
	"bookable/shared/failure"
)

const (
	cacheGetMedia = "media:get"
)

type Media interface {
	Upload(ctx context.Context, req dto.UploadMediaRequest) (dto.MediaResponse, error)
	Get(ctx context.Context, id string) (dto.MediaResponse, error)
	Delete(ctx context.Context, id string) error
	ResolveURL(ctx context.Context, imageID string) (string, error)
}

type serviceImpl struct {
	repo  repository.Media
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Media, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Media {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadMediaRequest) (res dto.MediaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	contentType := req.ContentType()
	if contentType == constant.Empty {
		return res, failure.BadRequestFromString("data is not a base64 data URI") //nolint:wrapcheck
	}

	fileData, err := b64.StdEncoding.DecodeString(req.Payload())
	if err != nil {
		log.Error().Err(err).Msg("failed to decode media payload")

		return res, failure.BadRequestFromString("invalid base64 payload") //nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName
	objectName := uuid.NewString()

	// Keep the original extension
	parts := strings.Split(req.FileName, ".")
	if len(parts) > 1 {
		objectName = fmt.Sprintf("%s.%s", objectName, parts[len(parts)-1])
	}

	url, err := s.s3.UploadFileBytes(ctx, bucketName, model.EntityName, objectName, contentType, fileData)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload media to S3")

		return res, fmt.Errorf("failed to upload media: %w", err)
	}

	media := req.ToModel(user, url)

	if err = s.repo.Insert(ctx, media); err != nil {
		_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)

		return res, err
	}

	res.FromModel(media)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MediaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetMedia, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for media")

		return res, nil
	}

	media, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get media")

		return res, err
	}

	if media.ID == constant.Empty {
		return res, failure.NotFound("media not found") //nolint:wrapcheck
	}

	res.FromModel(media)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save media to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	media, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get media")

		return err
	}

	if media.ID == constant.Empty {
		return failure.NotFound("media not found") //nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName

	objectName := s.s3.GetObjectNameFromURL(bucketName, media.URL)
	if objectName != constant.Empty {
		if err := s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Msg("failed to delete media from S3")

			return err
		}
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete media")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetMedia, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete media cache")
		}
	}()

	return nil
}

// ResolveURL satisfies the service manager's image lookup.
func (s *serviceImpl) ResolveURL(ctx context.Context, imageID string) (string, error) {
	media, err := s.Get(ctx, imageID)
	if err != nil {
		return constant.Empty, err
	}

	return media.URL, nil
}
