package service_test

import (
	"context"
	b64 "encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookable/config"
	"bookable/infras/otel/mocks"
	s3Mocks "bookable/infras/s3/mocks"
	mediaMocks "bookable/internal/domains/media/mocks"
	"bookable/internal/domains/media/model"
	"bookable/internal/domains/media/model/dto"
	"bookable/internal/domains/media/service"
	cacheMocks "bookable/shared/cache/mocks"
	"bookable/shared/failure"
)

func dataURI(payload []byte) string {
	return "data:image/png;base64," + b64.StdEncoding.EncodeToString(payload)
}

func newService(ctrl *gomock.Controller) (service.Media, *mediaMocks.MockMedia, *s3Mocks.MockS3, *cacheMocks.MockRedisCache) {
	mockRepo := mediaMocks.NewMockMedia(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "bookable-media"

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), mockS3), mockRepo, mockS3, mockCache
}

func TestMediaService_Upload(t *testing.T) {
	t.Run("uploads and stores the attachment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockS3, _ := newService(ctrl)

		payload := []byte("png bytes")

		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), "bookable-media", model.EntityName, gomock.Any(), "image/png", payload).
			Return("https://cdn.example.com/media/obj.png", nil)

		var inserted model.Media

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, media model.Media) error {
				inserted = media
				return nil
			})

		req := dto.UploadMediaRequest{FileName: "poster.png", Data: dataURI(payload)}

		res, err := svc.Upload(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "poster.png", inserted.FileName)
		assert.Equal(t, "image/png", inserted.MimeType)
		assert.Equal(t, "https://cdn.example.com/media/obj.png", res.URL)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("rejects payloads without a data URI header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, _ := newService(ctrl)

		req := dto.UploadMediaRequest{FileName: "poster.png", Data: "bm90IGEgZGF0YSB1cmk="}

		_, err := svc.Upload(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("cleans up the object when the insert fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockS3, _ := newService(ctrl)

		payload := []byte("png bytes")

		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/media/obj.png", nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		mockS3.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		req := dto.UploadMediaRequest{FileName: "poster.png", Data: dataURI(payload)}

		_, err := svc.Upload(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestMediaService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newService(ctrl)

	media := model.Media{
		ID:       "img-1",
		FileName: "poster.png",
		MimeType: "image/png",
		URL:      "https://cdn.example.com/media/obj.png",
	}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(media, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.Get(context.Background(), "img-1")

	require.NoError(t, err)
	assert.Equal(t, "img-1", res.ID)
	assert.Equal(t, "https://cdn.example.com/media/obj.png", res.URL)
}

func TestMediaService_Delete(t *testing.T) {
	t.Run("removes the object and the row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockS3, mockCache := newService(ctrl)

		media := model.Media{ID: "img-1", URL: "https://cdn.example.com/media/obj.png"}

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(media, nil)
		mockS3.EXPECT().GetObjectNameFromURL("bookable-media", media.URL).Return("obj.png")
		mockS3.EXPECT().DeleteFile(gomock.Any(), "bookable-media", model.EntityName, "obj.png").Return(nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(context.Background(), "img-1")

		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Media{}, nil)

		err := svc.Delete(context.Background(), "img-1")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestMediaService_ResolveURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newService(ctrl)

	media := model.Media{ID: "img-1", URL: "https://cdn.example.com/media/obj.png"}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(media, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	url, err := svc.ResolveURL(context.Background(), "img-1")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/obj.png", url)
}
