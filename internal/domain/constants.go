package domain

// Default booking configuration values
const (
	DefaultMaxBookingsPerSlot = 2
	DefaultCalendarDaysAhead  = 30
	DefaultDisplayOrder       = 999
)

// Business validation constants
const (
	SlotStepMinutes = 15

	MinNameLength = 2
	MaxNameLength = 50

	ReferenceSuffixLength = 4
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllowedSlotMinutes допустимые минуты начала слота в пределах часа
var AllowedSlotMinutes = []int{0, 15, 30, 45}

// IsAllowedSlotMinute проверяет, что минуты лежат на 15-минутной сетке
func IsAllowedSlotMinute(minute int) bool {
	for _, m := range AllowedSlotMinutes {
		if minute == m {
			return true
		}
	}
	return false
}
