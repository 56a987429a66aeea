package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookable/shared/failure"
	"bookable/shared/timezone"
)

func TestParseLocation(t *testing.T) {
	t.Run("resolves IANA names", func(t *testing.T) {
		loc, err := timezone.ParseLocation("Europe/Paris")
		require.NoError(t, err)
		assert.Equal(t, "Europe/Paris", loc.String())
	})

	t.Run("empty name falls back to UTC", func(t *testing.T) {
		loc, err := timezone.ParseLocation("  ")
		require.NoError(t, err)
		assert.Equal(t, time.UTC, loc)
	})

	t.Run("converts UTC offset shorthand to a fixed zone", func(t *testing.T) {
		testCases := []struct {
			name       string
			input      string
			wantZone   string
			wantOffset int
		}{
			{
				name:       "positive whole hours",
				input:      "UTC+2",
				wantZone:   "+0200",
				wantOffset: 2 * 3600,
			},
			{
				name:       "negative whole hours",
				input:      "UTC-9",
				wantZone:   "-0900",
				wantOffset: -9 * 3600,
			},
			{
				name:       "hours with minutes",
				input:      "UTC+5:30",
				wantZone:   "+0530",
				wantOffset: 5*3600 + 30*60,
			},
			{
				name:       "two digit hours with minutes",
				input:      "UTC-09:30",
				wantZone:   "-0930",
				wantOffset: -(9*3600 + 30*60),
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				loc, err := timezone.ParseLocation(tc.input)
				require.NoError(t, err)

				zone, offset := time.Date(2018, 10, 10, 0, 0, 0, 0, loc).Zone()
				assert.Equal(t, tc.wantZone, zone)
				assert.Equal(t, tc.wantOffset, offset)
			})
		}
	})

	t.Run("invalid names yield out of range failures", func(t *testing.T) {
		for _, input := range []string{"Mars/Olympus", "UTC+99", "UTC+1:99"} {
			_, err := timezone.ParseLocation(input)
			require.Error(t, err, input)
			assert.Equal(t, 422, failure.GetCode(err))
		}
	})
}
