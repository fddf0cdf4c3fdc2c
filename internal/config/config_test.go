package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camp-taezhny/BookingService/pkg/types"
)

func TestBookingConfig_TimeSlots(t *testing.T) {
	cfg := BookingConfig{OpenTime: "09:00", CloseTime: "10:00"}

	slots, err := cfg.TimeSlots()
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:15", "09:30", "09:45"}, slots)
}

func TestBookingConfig_TimeSlots_FullDay(t *testing.T) {
	cfg := BookingConfig{OpenTime: "09:00", CloseTime: "17:00"}

	slots, err := cfg.TimeSlots()
	require.NoError(t, err)

	// 8 часов по 4 слота, время закрытия не включается
	assert.Len(t, slots, 32)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("16:45"), slots[len(slots)-1])
}

func TestBookingConfig_TimeSlots_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  BookingConfig
	}{
		{name: "некорректное время открытия", cfg: BookingConfig{OpenTime: "9am", CloseTime: "17:00"}},
		{name: "некорректное время закрытия", cfg: BookingConfig{OpenTime: "09:00", CloseTime: ""}},
		{name: "открытие после закрытия", cfg: BookingConfig{OpenTime: "17:00", CloseTime: "09:00"}},
		{name: "открытие равно закрытию", cfg: BookingConfig{OpenTime: "09:00", CloseTime: "09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.TimeSlots()
			assert.Error(t, err)
		})
	}
}

func TestBookingConfig_DisplayOrderFor(t *testing.T) {
	cfg := BookingConfig{ServicePriorities: map[string]int{"Медицинская справка": 1}}

	assert.Equal(t, 1, cfg.DisplayOrderFor("Медицинская справка"))
	assert.Equal(t, 999, cfg.DisplayOrderFor("Прокат лыж"))
}

func TestSessionTTL_Default(t *testing.T) {
	assert.Equal(t, "2h0m0s", AdminConfig{}.SessionTTL().String())
	assert.Equal(t, "8h0m0s", AdminConfig{SessionTTLHours: 8}.SessionTTL().String())
}

func TestSchedulerInterval_Default(t *testing.T) {
	assert.Equal(t, "1h0m0s", SchedulerConfig{}.Interval().String())
	assert.Equal(t, "30m0s", SchedulerConfig{IntervalMinutes: 30}.Interval().String())
}
