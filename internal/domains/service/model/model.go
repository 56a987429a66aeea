package model

import "time"

const (
	EntityName         = "service"
	ScheduleEntityName = "schedule"
	RuleEntityName     = "session_rule"
)

const (
	TableRecords      = "records"
	TableRecordMeta   = "record_meta"
	TableSchedules    = "schedules"
	TableSessionRules = "session_rules"
)

// Record column names.
const (
	FieldID           = "id"
	FieldPostTitle    = "post_title"
	FieldPostExcerpt  = "post_excerpt"
	FieldPostStatus   = "post_status"
	FieldPostType     = "post_type"
	FieldPostDate     = "post_date"
	FieldPostModified = "post_modified"
	FieldPostContent  = "post_content"
	FieldPostAuthor   = "post_author"
	FieldPostParent   = "post_parent"
	FieldMenuOrder    = "menu_order"
)

// Meta column names.
const (
	FieldRecordID  = "record_id"
	FieldMetaKey   = "meta_key"
	FieldMetaValue = "meta_value"
)

// Session rule column names.
const (
	FieldRuleID     = "id"
	FieldResourceID = "resource_id"
)

// Schedule column names.
const (
	FieldScheduleID = "id"
	FieldServiceID  = "service_id"
)

// Meta keys, stored under the configured meta prefix.
const (
	MetaBookingsEnabled = "bookings_enabled"
	MetaSessionTypes    = "session_types"
	MetaDisplayOptions  = "display_options"
	MetaTimezone        = "timezone"
	MetaImageID         = "image_id"
	MetaScheduleID      = "schedule_id"

	// Pre-migration key carried inside session type elements.
	MetaLegacySessionLength = "sessionLength"
)

// Record statuses mirroring the host record lifecycle.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusPrivate = "private"
	StatusTrash   = "trash"
)

// AllStatuses is the default status filter applied when a query does not name one.
var AllStatuses = []string{StatusPublish, StatusPrivate, "protected", StatusDraft, StatusTrash, StatusPending, "future"}

// Record is a row of the generic records table the services are stored in.
type Record struct {
	ID           string    `db:"id"            json:"id"`
	PostTitle    string    `db:"post_title"    json:"post_title"`
	PostExcerpt  string    `db:"post_excerpt"  json:"post_excerpt"`
	PostStatus   string    `db:"post_status"   json:"post_status"`
	PostType     string    `db:"post_type"     json:"post_type"`
	PostContent  string    `db:"post_content"  json:"post_content"`
	PostAuthor   string    `db:"post_author"   json:"post_author"`
	PostParent   string    `db:"post_parent"   json:"post_parent"`
	MenuOrder    int       `db:"menu_order"    json:"menu_order"`
	PostDate     time.Time `db:"post_date"     json:"post_date"`
	PostModified time.Time `db:"post_modified" json:"post_modified"`
}

// Meta is a single key-value attachment of a record. Values are stored
// JSON-encoded so structured metadata survives the roundtrip.
type Meta struct {
	RecordID  string `db:"record_id"  json:"record_id"`
	MetaKey   string `db:"meta_key"   json:"meta_key"`
	MetaValue string `db:"meta_value" json:"meta_value"`
}

// Schedule links a service to its availability rules and carries the
// timezone the rule timestamps were encoded in.
type Schedule struct {
	ID        string `db:"id"         json:"id"`
	ServiceID string `db:"service_id" json:"service_id"`
	Timezone  string `db:"timezone"   json:"timezone"`
}

// SessionRule is the storage shape of one availability rule. Start, End and
// RepeatUntilDate are epoch seconds; the *On and ExcludeDates columns are
// comma-joined lists.
type SessionRule struct {
	ID                string `db:"id"                  json:"id"`
	ResourceID        string `db:"resource_id"         json:"resource_id"`
	Start             int64  `db:"start"               json:"start"`
	End               int64  `db:"end"                 json:"end"`
	AllDay            bool   `db:"all_day"             json:"all_day"`
	Repeat            bool   `db:"repeat"              json:"repeat"`
	RepeatPeriod      int    `db:"repeat_period"       json:"repeat_period"`
	RepeatUnit        string `db:"repeat_unit"         json:"repeat_unit"`
	RepeatUntil       string `db:"repeat_until"        json:"repeat_until"`
	RepeatUntilPeriod int    `db:"repeat_until_period" json:"repeat_until_period"`
	RepeatUntilDate   int64  `db:"repeat_until_date"   json:"repeat_until_date"`
	RepeatWeeklyOn    string `db:"repeat_weekly_on"    json:"repeat_weekly_on"`
	RepeatMonthlyOn   string `db:"repeat_monthly_on"   json:"repeat_monthly_on"`
	ExcludeDates      string `db:"exclude_dates"       json:"exclude_dates"`
}
