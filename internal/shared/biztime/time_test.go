package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_DefaultsToBusinessTimezone(t *testing.T) {
	loc := Location()
	require.NotNil(t, loc)
	assert.Equal(t, DefaultTimezone, loc.String())
}

func TestStartOfDayUTC(t *testing.T) {
	// 2024-03-10 20:30 UTC is already 2024-03-11 01:30 in UTC+5.
	ts := time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC)

	got := StartOfDayUTC(ts)

	assert.Equal(t, time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC), got)
}

func TestFormatInBizTimezone(t *testing.T) {
	ts := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-10 12:00", FormatInBizTimezone(ts, "2006-01-02 15:04"))
}
