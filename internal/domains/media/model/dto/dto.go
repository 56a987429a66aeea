package dto

import (
	"github.com/google/uuid"

	"bookable/internal/domains/media/model"
	"bookable/shared/base64"
	gModel "bookable/shared/model"
	"bookable/shared/timezone"
)

// UploadMediaRequest carries an attachment as a base64 data URI, the way the
// host's media endpoint accepts uploads.
type UploadMediaRequest struct {
	FileName string `json:"fileName" validate:"required,max=200"`
	Data     string `json:"data"     validate:"required"`
}

// ContentType extracts the mime type from the data URI header.
func (req *UploadMediaRequest) ContentType() string {
	return base64.GetContentType(req.Data)
}

// Payload extracts the base64 body from the data URI.
func (req *UploadMediaRequest) Payload() string {
	return base64.GetData(req.Data)
}

// ToModel builds the stored row. The URL is filled in after the object is
// uploaded.
func (req *UploadMediaRequest) ToModel(user, url string) model.Media {
	now := timezone.Now()

	return model.Media{
		ID:       uuid.NewString(),
		FileName: req.FileName,
		MimeType: req.ContentType(),
		URL:      url,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type MediaResponse struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url"`
}

func (res *MediaResponse) FromModel(media model.Media) {
	res.ID = media.ID
	res.FileName = media.FileName
	res.MimeType = media.MimeType
	res.URL = media.URL
}
