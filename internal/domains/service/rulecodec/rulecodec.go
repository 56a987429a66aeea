package rulecodec

import (
	"strings"
	"time"

	"bookable/internal/domains/service/model"
	"bookable/internal/domains/service/model/dto"
	"bookable/shared/constant"
	"bookable/shared/failure"
	"bookable/shared/timezone"
)

// datetimeLayouts are tried in order when parsing incoming rule datetimes.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	constant.RuleDateTimeFormat,
	constant.RuleDateFormat,
}

const listSeparator = ","

// Encode converts a wire rule into its storage row. Datetime strings are
// interpreted in the named timezone and stored as epoch seconds; list fields
// are comma-joined. The rule's own ID is carried through untouched.
func Encode(resourceID string, rule dto.SessionRule, tzName string) (model.SessionRule, error) {
	loc, err := ParseTimezone(tzName)
	if err != nil {
		return model.SessionRule{}, err
	}

	start, err := parseDatetime(rule.Start, loc)
	if err != nil {
		return model.SessionRule{}, err
	}

	end, err := parseDatetime(rule.End, loc)
	if err != nil {
		return model.SessionRule{}, err
	}

	row := model.SessionRule{
		ID:                rule.ID,
		ResourceID:        resourceID,
		Start:             start.Unix(),
		End:               end.Unix(),
		AllDay:            rule.IsAllDay,
		Repeat:            rule.Repeat,
		RepeatPeriod:      rule.RepeatPeriod,
		RepeatUnit:        rule.RepeatUnit,
		RepeatUntil:       rule.RepeatUntil,
		RepeatUntilPeriod: rule.RepeatUntilPeriod,
		RepeatWeeklyOn:    strings.Join(rule.RepeatWeeklyOn, listSeparator),
		RepeatMonthlyOn:   strings.Join(rule.RepeatMonthlyOn, listSeparator),
	}

	if rule.RepeatUntilDate != "" {
		untilDate, err := parseDatetime(rule.RepeatUntilDate, loc)
		if err != nil {
			return model.SessionRule{}, err
		}

		row.RepeatUntilDate = untilDate.Unix()
	}

	excludeStamps := make([]string, 0, len(rule.ExcludeDates))

	for _, excludeDate := range rule.ExcludeDates {
		stamp, err := parseDatetime(excludeDate, loc)
		if err != nil {
			return model.SessionRule{}, err
		}

		excludeStamps = append(excludeStamps, formatEpoch(stamp.Unix()))
	}

	row.ExcludeDates = strings.Join(excludeStamps, listSeparator)

	return row, nil
}

// Decode converts a storage row back to its wire shape. Start, end and each
// exclude date render as full datetimes while repeatUntilDate renders as a
// bare date; both in UTC. Empty list columns decode to empty slices.
func Decode(row model.SessionRule) dto.SessionRule {
	rule := dto.SessionRule{
		ID:                row.ID,
		Start:             time.Unix(row.Start, 0).UTC().Format(constant.RuleDateTimeFormat),
		End:               time.Unix(row.End, 0).UTC().Format(constant.RuleDateTimeFormat),
		IsAllDay:          row.AllDay,
		Repeat:            row.Repeat,
		RepeatPeriod:      row.RepeatPeriod,
		RepeatUnit:        row.RepeatUnit,
		RepeatUntil:       row.RepeatUntil,
		RepeatUntilPeriod: row.RepeatUntilPeriod,
		RepeatWeeklyOn:    splitList(row.RepeatWeeklyOn),
		RepeatMonthlyOn:   splitList(row.RepeatMonthlyOn),
		ExcludeDates:      []string{},
	}

	if row.RepeatUntilDate != 0 {
		rule.RepeatUntilDate = time.Unix(row.RepeatUntilDate, 0).UTC().Format(constant.RuleDateFormat)
	}

	for _, raw := range splitList(row.ExcludeDates) {
		epoch, err := parseEpoch(raw)
		if err != nil {
			continue
		}

		rule.ExcludeDates = append(rule.ExcludeDates, time.Unix(epoch, 0).UTC().Format(constant.RuleDateTimeFormat))
	}

	return rule
}

// ParseTimezone resolves a timezone name, accepting IANA names and UTC offset
// shorthands. Invalid names yield an out-of-range failure.
func ParseTimezone(name string) (*time.Location, error) {
	return timezone.ParseLocation(name)
}

func parseDatetime(value string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(value)

	for _, layout := range datetimeLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, failure.BadRequestFromString("invalid datetime: " + value)
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}

	return strings.Split(value, listSeparator)
}
