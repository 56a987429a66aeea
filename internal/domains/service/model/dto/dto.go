package dto

import (
	"bookable/internal/domains/service/model"
	"bookable/shared/record"
)

// Entity field keys used on the wire and in records before storage mapping.
const (
	KeyID              = "id"
	KeyName            = "name"
	KeyDescription     = "description"
	KeyStatus          = "status"
	KeyAvailability    = "availability"
	KeyImageID         = "image_id"
	KeyImageURL        = "image_url"
	KeyScheduleID      = "schedule_id"
	KeyBookingsEnabled = model.MetaBookingsEnabled
	KeySessionTypes    = model.MetaSessionTypes
	KeyDisplayOptions  = model.MetaDisplayOptions
	KeyTimezone        = model.MetaTimezone
)

// Session type kinds.
const (
	SessionTypeFixedDuration = "fixed_duration"
)

// SessionRule is the wire shape of one availability rule. Start, End,
// RepeatUntilDate and ExcludeDates are datetime strings; the repeat lists
// are arrays.
type SessionRule struct {
	ID                string   `json:"id,omitempty"`
	Start             string   `json:"start"             validate:"required"`
	End               string   `json:"end"               validate:"required"`
	IsAllDay          bool     `json:"isAllDay"`
	Repeat            bool     `json:"repeat"`
	RepeatPeriod      int      `json:"repeatPeriod"`
	RepeatUnit        string   `json:"repeatUnit"`
	RepeatUntil       string   `json:"repeatUntil"`
	RepeatUntilPeriod int      `json:"repeatUntilPeriod"`
	RepeatUntilDate   string   `json:"repeatUntilDate"`
	RepeatWeeklyOn    []string `json:"repeatWeeklyOn"`
	RepeatMonthlyOn   []string `json:"repeatMonthlyOn"`
	ExcludeDates      []string `json:"excludeDates"`
}

// SessionTypeData carries the bookable duration in seconds and its price.
type SessionTypeData struct {
	Duration int     `json:"duration" validate:"gte=0"`
	Price    float64 `json:"price"    validate:"gte=0"`
}

// SessionType is one bookable session offering of a service.
type SessionType struct {
	ID    string          `json:"id,omitempty"`
	Label string          `json:"label"`
	Type  string          `json:"type"  validate:"omitempty,oneof=fixed_duration"`
	Data  SessionTypeData `json:"data"`
}

type CreateServiceRequest struct {
	Name            string         `json:"name"            validate:"required,max=200"`
	Description     string         `json:"description"     validate:"omitempty,max=2000"`
	Status          string         `json:"status"          validate:"omitempty,oneof=publish draft pending private future"`
	BookingsEnabled *bool          `json:"bookingsEnabled" validate:"omitempty"`
	Timezone        string         `json:"timezone"        validate:"omitempty"`
	ImageID         string         `json:"imageId"         validate:"omitempty"`
	SessionTypes    []SessionType  `json:"sessionTypes"    validate:"omitempty,dive"`
	DisplayOptions  map[string]any `json:"displayOptions"  validate:"omitempty"`
	Availability    []SessionRule  `json:"availability"    validate:"omitempty,dive"`
}

// ToRecord flattens the request into an entity record keyed by domain field
// names. Only supplied fields are set so downstream conversion sees the same
// sparseness the caller sent.
func (req *CreateServiceRequest) ToRecord() record.Record {
	rec := record.Record{
		KeyName: req.Name,
	}

	if req.Description != "" {
		rec.Set(KeyDescription, req.Description)
	}

	if req.Status != "" {
		rec.Set(KeyStatus, req.Status)
	}

	if req.BookingsEnabled != nil {
		rec.Set(KeyBookingsEnabled, *req.BookingsEnabled)
	}

	if req.Timezone != "" {
		rec.Set(KeyTimezone, req.Timezone)
	}

	if req.ImageID != "" {
		rec.Set(KeyImageID, req.ImageID)
	}

	if req.SessionTypes != nil {
		rec.Set(KeySessionTypes, req.SessionTypes)
	}

	if req.DisplayOptions != nil {
		rec.Set(KeyDisplayOptions, req.DisplayOptions)
	}

	if req.Availability != nil {
		rec.Set(KeyAvailability, req.Availability)
	}

	return rec
}

type UpdateServiceRequest struct {
	Name            *string        `json:"name"            validate:"omitempty,max=200"`
	Description     *string        `json:"description"     validate:"omitempty,max=2000"`
	Status          *string        `json:"status"          validate:"omitempty,oneof=publish draft pending private future trash"`
	BookingsEnabled *bool          `json:"bookingsEnabled" validate:"omitempty"`
	Timezone        *string        `json:"timezone"        validate:"omitempty"`
	ImageID         *string        `json:"imageId"         validate:"omitempty"`
	SessionTypes    []SessionType  `json:"sessionTypes"    validate:"omitempty,dive"`
	DisplayOptions  map[string]any `json:"displayOptions"  validate:"omitempty"`
	Availability    []SessionRule  `json:"availability"    validate:"omitempty"`
}

// ToRecord flattens the partial update into an entity record. An explicit
// empty imageId is kept to signal image removal.
func (req *UpdateServiceRequest) ToRecord() record.Record {
	rec := record.Record{}

	if req.Name != nil {
		rec.Set(KeyName, *req.Name)
	}

	if req.Description != nil {
		rec.Set(KeyDescription, *req.Description)
	}

	if req.Status != nil {
		rec.Set(KeyStatus, *req.Status)
	}

	if req.BookingsEnabled != nil {
		rec.Set(KeyBookingsEnabled, *req.BookingsEnabled)
	}

	if req.Timezone != nil {
		rec.Set(KeyTimezone, *req.Timezone)
	}

	if req.ImageID != nil {
		rec.Set(KeyImageID, *req.ImageID)
	}

	if req.SessionTypes != nil {
		rec.Set(KeySessionTypes, req.SessionTypes)
	}

	if req.DisplayOptions != nil {
		rec.Set(KeyDisplayOptions, req.DisplayOptions)
	}

	if req.Availability != nil {
		rec.Set(KeyAvailability, req.Availability)
	}

	return rec
}

type ServiceResponse struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Status          string         `json:"status"`
	ImageID         string         `json:"imageId,omitempty"`
	ImageURL        string         `json:"imageUrl,omitempty"`
	BookingsEnabled bool           `json:"bookingsEnabled"`
	Timezone        string         `json:"timezone"`
	SessionTypes    []SessionType  `json:"sessionTypes"`
	DisplayOptions  map[string]any `json:"displayOptions,omitempty"`
	Availability    []SessionRule  `json:"availability"`
}

// FromRecord populates the response from an entity record as produced by the
// manager's read path.
func (res *ServiceResponse) FromRecord(rec record.Record) error {
	res.ID = rec.GetString(KeyID)
	res.Name = rec.GetString(KeyName)
	res.Description = rec.GetString(KeyDescription)
	res.Status = rec.GetString(KeyStatus)
	res.ImageID = rec.GetString(KeyImageID)
	res.ImageURL = rec.GetString(KeyImageURL)
	res.Timezone = rec.GetString(KeyTimezone)

	if enabled, ok := rec.Get(KeyBookingsEnabled).(bool); ok {
		res.BookingsEnabled = enabled
	} else {
		res.BookingsEnabled = rec.GetString(KeyBookingsEnabled) == "1" || rec.GetString(KeyBookingsEnabled) == "true"
	}

	if err := rec.DecodeInto(KeySessionTypes, &res.SessionTypes); err != nil {
		return err
	}

	if err := rec.DecodeInto(KeyDisplayOptions, &res.DisplayOptions); err != nil {
		return err
	}

	if err := rec.DecodeInto(KeyAvailability, &res.Availability); err != nil {
		return err
	}

	if res.SessionTypes == nil {
		res.SessionTypes = []SessionType{}
	}

	if res.Availability == nil {
		res.Availability = []SessionRule{}
	}

	return nil
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	Total     int               `json:"total"`
	TotalPage int               `json:"total_page"`
}

// FromRecords converts manager records into the listing response.
func (res *GetServicesResponse) FromRecords(records []record.Record, total, totalPage int) error {
	res.Services = make([]ServiceResponse, 0, len(records))

	for _, rec := range records {
		var item ServiceResponse
		if err := item.FromRecord(rec); err != nil {
			return err
		}

		res.Services = append(res.Services, item)
	}

	res.Total = total
	res.TotalPage = totalPage

	return nil
}

type CountServicesResponse struct {
	Count int `json:"count"`
}
