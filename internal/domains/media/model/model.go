package model

import "bookable/shared/model"

const (
	TableName  = "media"
	EntityName = "media"

	FieldID       = "id"
	FieldFileName = "file_name"
	FieldMimeType = "mime_type"
	FieldURL      = "url"
)

// Media is one stored attachment, typically a service image.
type Media struct {
	ID       string `db:"id"`
	FileName string `db:"file_name"`
	MimeType string `db:"mime_type"`
	URL      string `db:"url"`
	model.Metadata
}
