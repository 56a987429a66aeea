package timezone

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"bookable/config"
	"bookable/shared/constant"
	"bookable/shared/failure"
)

var (
	appLocation *time.Location
)

// utcOffsetPattern matches shorthand zones such as UTC+2, UTC-09:30 or UTC+10:00.
var utcOffsetPattern = regexp.MustCompile(`^UTC([+-])(\d{1,2})(?::(\d{1,2}))?$`)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = constant.DefaultTimezone
	}

	loc, err := ParseLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York' or offsets like 'UTC+7'")
		appLocation = time.UTC
		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, using UTC")
		return time.Now().UTC()
	}
	return time.Now().In(appLocation)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, using UTC")
		return t.UTC()
	}
	return t.In(appLocation)
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, returning UTC")
		return time.UTC
	}
	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, parsing in UTC")
		return time.Parse(layout, value)
	}
	return time.ParseInLocation(layout, value, appLocation)
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// ParseLocation resolves a timezone name into a location. Besides IANA names
// it accepts UTC offset shorthands of the form UTC±HH or UTC±HH:MM, which
// are mapped onto fixed ±HHMM zones. Unresolvable names yield an
// out-of-range failure carrying the offending value.
func ParseLocation(name string) (*time.Location, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return time.UTC, nil
	}

	if match := utcOffsetPattern.FindStringSubmatch(trimmed); match != nil {
		return fixedZoneFromOffset(trimmed, match)
	}

	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		return nil, failure.OutOfRange("invalid timezone name: %s", name)
	}

	return loc, nil
}

func fixedZoneFromOffset(name string, match []string) (*time.Location, error) {
	hours, _ := strconv.Atoi(match[2])

	minutes := 0
	if match[3] != "" {
		minutes, _ = strconv.Atoi(match[3])
	}

	if hours > 14 || minutes > 59 {
		return nil, failure.OutOfRange("invalid timezone offset: %s", name)
	}

	offset := hours*3600 + minutes*60
	if match[1] == "-" {
		offset = -offset
	}

	zoneName := fmt.Sprintf("%s%02d%02d", match[1], hours, minutes)

	return time.FixedZone(zoneName, offset), nil
}
