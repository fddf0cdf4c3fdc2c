package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", ts.String())

	for _, raw := range []string{"", "9:00:00", "25:00", "09:60", "abc"} {
		_, err := NewTimeStringFromString(raw)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", raw)
	}
}

func TestNewTimeString_DropsSeconds(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 10, 14, 45, 59, 0, time.UTC))
	assert.Equal(t, TimeString("14:45"), ts)
}

func TestTimeString_HourMinute(t *testing.T) {
	ts := TimeString("10:15")

	hour, err := ts.Hour()
	require.NoError(t, err)
	assert.Equal(t, 10, hour)

	minute, err := ts.Minute()
	require.NoError(t, err)
	assert.Equal(t, 15, minute)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("16:45")

	next, err := ts.AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:00"), next)

	// Переход через полночь не поддерживается
	_, err = TimeString("23:50").AddMinutes(15)
	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:15"))
	assert.False(t, TimeString("09:15").IsBefore("09:15"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
}
