package rulecodec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookable/internal/domains/service/model"
	"bookable/internal/domains/service/model/dto"
	"bookable/internal/domains/service/rulecodec"
	"bookable/shared/failure"
)

func TestEncode(t *testing.T) {
	t.Run("interprets datetimes in the named timezone", func(t *testing.T) {
		rule := dto.SessionRule{
			Start:        "2018-10-10 10:00:00",
			End:          "2018-10-10 18:00:00",
			ExcludeDates: []string{"2018-10-12 00:00:00"},
		}

		row, err := rulecodec.Encode("sched-1", rule, "Europe/Paris")
		require.NoError(t, err)

		assert.Equal(t, "sched-1", row.ResourceID)
		assert.Equal(t, int64(1539158400), row.Start)
		assert.Equal(t, int64(1539187200), row.End)
		assert.Equal(t, "1539295200", row.ExcludeDates)
	})

	t.Run("accepts UTC offset shorthand timezones", func(t *testing.T) {
		rule := dto.SessionRule{
			Start: "2018-10-10 10:00:00",
			End:   "2018-10-10 18:00:00",
		}

		row, err := rulecodec.Encode("sched-1", rule, "UTC+2")
		require.NoError(t, err)

		assert.Equal(t, int64(1539158400), row.Start)
	})

	t.Run("joins list fields with commas", func(t *testing.T) {
		rule := dto.SessionRule{
			ID:              "rule-7",
			Start:           "2018-10-10 10:00:00",
			End:             "2018-10-10 18:00:00",
			Repeat:          true,
			RepeatPeriod:    1,
			RepeatUnit:      "weeks",
			RepeatWeeklyOn:  []string{"monday", "wednesday"},
			RepeatMonthlyOn: []string{"date_of_month"},
			RepeatUntilDate: "2018-12-31",
		}

		row, err := rulecodec.Encode("sched-1", rule, "UTC")
		require.NoError(t, err)

		assert.Equal(t, "rule-7", row.ID)
		assert.True(t, row.Repeat)
		assert.Equal(t, "monday,wednesday", row.RepeatWeeklyOn)
		assert.Equal(t, "date_of_month", row.RepeatMonthlyOn)
		assert.Equal(t, int64(1546214400), row.RepeatUntilDate)
	})

	t.Run("empty lists encode to empty strings", func(t *testing.T) {
		rule := dto.SessionRule{
			Start: "2018-10-10 10:00:00",
			End:   "2018-10-10 18:00:00",
		}

		row, err := rulecodec.Encode("sched-1", rule, "UTC")
		require.NoError(t, err)

		assert.Equal(t, "", row.RepeatWeeklyOn)
		assert.Equal(t, "", row.ExcludeDates)
		assert.Equal(t, int64(0), row.RepeatUntilDate)
	})

	t.Run("invalid timezone yields out of range", func(t *testing.T) {
		rule := dto.SessionRule{Start: "2018-10-10 10:00:00", End: "2018-10-10 18:00:00"}

		_, err := rulecodec.Encode("sched-1", rule, "Mars/Olympus")
		require.Error(t, err)
		assert.Equal(t, 422, failure.GetCode(err))
	})

	t.Run("invalid datetime yields bad request", func(t *testing.T) {
		rule := dto.SessionRule{Start: "not-a-date", End: "2018-10-10 18:00:00"}

		_, err := rulecodec.Encode("sched-1", rule, "UTC")
		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestDecode(t *testing.T) {
	t.Run("renders datetimes and dates asymmetrically", func(t *testing.T) {
		row := model.SessionRule{
			ID:              "rule-7",
			ResourceID:      "sched-1",
			Start:           1539158400,
			End:             1539187200,
			RepeatUntilDate: 1546214400,
			ExcludeDates:    "1539295200",
		}

		rule := rulecodec.Decode(row)

		assert.Equal(t, "rule-7", rule.ID)
		assert.Equal(t, "2018-10-10 08:00:00", rule.Start)
		assert.Equal(t, "2018-10-10 16:00:00", rule.End)
		assert.Equal(t, "2018-12-31", rule.RepeatUntilDate)
		assert.Equal(t, []string{"2018-10-11 22:00:00"}, rule.ExcludeDates)
	})

	t.Run("empty columns decode to empty slices", func(t *testing.T) {
		rule := rulecodec.Decode(model.SessionRule{Start: 0, End: 0})

		assert.Equal(t, []string{}, rule.RepeatWeeklyOn)
		assert.Equal(t, []string{}, rule.RepeatMonthlyOn)
		assert.Equal(t, []string{}, rule.ExcludeDates)
		assert.Equal(t, "", rule.RepeatUntilDate)
	})

	t.Run("splits comma lists", func(t *testing.T) {
		rule := rulecodec.Decode(model.SessionRule{
			RepeatWeeklyOn:  "monday,wednesday",
			RepeatMonthlyOn: "date_of_month",
		})

		assert.Equal(t, []string{"monday", "wednesday"}, rule.RepeatWeeklyOn)
		assert.Equal(t, []string{"date_of_month"}, rule.RepeatMonthlyOn)
	})
}

func TestRoundTrip(t *testing.T) {
	original := dto.SessionRule{
		ID:              "rule-1",
		Start:           "2018-10-10 08:00:00",
		End:             "2018-10-10 16:00:00",
		IsAllDay:        false,
		Repeat:          true,
		RepeatPeriod:    2,
		RepeatUnit:      "weeks",
		RepeatWeeklyOn:  []string{"monday"},
		RepeatMonthlyOn: []string{},
		ExcludeDates:    []string{},
	}

	row, err := rulecodec.Encode("sched-1", original, "UTC")
	require.NoError(t, err)

	decoded := rulecodec.Decode(row)

	assert.Equal(t, original.Start, decoded.Start)
	assert.Equal(t, original.End, decoded.End)
	assert.Equal(t, original.Repeat, decoded.Repeat)
	assert.Equal(t, original.RepeatPeriod, decoded.RepeatPeriod)
	assert.Equal(t, original.RepeatUnit, decoded.RepeatUnit)
	assert.Equal(t, original.RepeatWeeklyOn, decoded.RepeatWeeklyOn)
}
