package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		clock   string
		want    time.Duration
		wantErr bool
	}{
		{name: "hours and minutes", clock: "09:30", want: 9*time.Hour + 30*time.Minute},
		{name: "with seconds", clock: "17:00:30", want: 17*time.Hour + 30*time.Second},
		{name: "midnight", clock: "00:00", want: 0},
		{name: "garbage", clock: "9am", wantErr: true},
		{name: "out of range", clock: "25:00", wantErr: true},
		{name: "empty", clock: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.clock)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWallClockToUTC(t *testing.T) {
	kolkata, err := LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	got, err := WallClockToUTC("2025-06-09", "09:00", kolkata)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 9, 3, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestWallClockToUTC_UTCIsIdentity(t *testing.T) {
	got, err := WallClockToUTC("2025-06-09", "09:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), got)
}

func TestWallClockToUTC_InvalidInputs(t *testing.T) {
	_, err := WallClockToUTC("09-06-2025", "09:00", time.UTC)
	assert.Error(t, err)

	_, err = WallClockToUTC("2025-06-09", "late", time.UTC)
	assert.Error(t, err)
}

func TestDayBoundsUTC(t *testing.T) {
	kolkata, err := LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	start, end, err := DayBoundsUTC("2025-06-09", kolkata)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 8, 18, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 9, 18, 30, 0, 0, time.UTC), end)
}

func TestDayBoundsUTC_DSTTransition(t *testing.T) {
	newYork, err := LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2025-03-09 is the US spring-forward date; the local day is 23 hours.
	start, end, err := DayBoundsUTC("2025-03-09", newYork)
	require.NoError(t, err)

	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestWeekdayInLocation(t *testing.T) {
	kolkata, err := LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	weekday, err := WeekdayInLocation("2025-06-09", kolkata)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, weekday)
}

func TestLoadLocation_Unknown(t *testing.T) {
	_, err := LoadLocation("Mars/Olympus_Mons")
	assert.Error(t, err)
}
