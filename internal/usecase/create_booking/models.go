package create_booking

import (
	"time"

	"github.com/camp-taezhny/BookingService/pkg/types"
)

// Settings бизнес-настройки бронирования, передаются из конфигурации
type Settings struct {
	MaxPerSlot int              // максимум подтвержденных бронирований на слот
	DaysAhead  int              // окно бронирования вперед, дней
	OpenTime   types.TimeString // начало рабочего окна
	CloseTime  types.TimeString // конец рабочего окна (не включается)
	Camps      []string         // допустимые лагеря
}

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	TimeSlot  types.TimeString // Время слота (например, "10:15")
	LastName  string           // Фамилия
	FirstName string           // Имя
	Phone     string           // Телефон в произвольном формате
	Camp      string           // Лагерь
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	ReferenceNumber string           // Номер брони "YYYYMMDD-XXXX"
	ServiceID       int64            // ID услуги
	ServiceName     string           // Название услуги
	Date            time.Time        // Дата записи
	TimeSlot        types.TimeString // Время слота
	LastName        string           // Фамилия
	FirstName       string           // Имя
	Phone           string           // Телефон в нормализованном формате
	Camp            string           // Лагерь
	Status          string           // Статус бронирования

	// RequiredDocuments документы, которые нужно взять с собой
	RequiredDocuments []string

	CreatedAt time.Time // Время создания
}
