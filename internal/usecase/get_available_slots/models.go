package get_available_slots

import (
	"time"

	"github.com/camp-taezhny/BookingService/pkg/types"
)

// Settings бизнес-настройки бронирования, передаются из конфигурации
type Settings struct {
	MaxPerSlot int                // максимум подтвержденных бронирований на слот
	DaysAhead  int                // окно бронирования вперед, дней
	TimeSlots  []types.TimeString // сетка слотов рабочего окна
}

// Request модель запроса доступных слотов
type Request struct {
	Date time.Time // Дата, на которую запрашиваются слоты
}

// Slot доступность одного слота
type Slot struct {
	Time           types.TimeString // Время слота
	Available      bool             // Остались ли свободные места
	ConfirmedCount int              // Количество подтвержденных бронирований
	MaxPerSlot     int              // Вместимость слота
	FreeSpots      int              // Количество свободных мест
}

// Response модель ответа со слотами на дату
type Response struct {
	Date  time.Time
	Slots []Slot
}
