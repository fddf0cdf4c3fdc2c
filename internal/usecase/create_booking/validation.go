package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

// namePattern русские буквы, пробелы и дефисы (двойные фамилии)
var namePattern = regexp.MustCompile(`^[А-Яа-яЁё\s\-]+$`)

// validateRequest валидирует входные данные запроса.
// Возвращает ошибки по всем полям сразу, а не по первому встреченному.
func validateRequest(req *Request, now time.Time, settings Settings) ValidationErrors {
	verrs := ValidationErrors{}

	validateName(verrs, "last_name", "Фамилия",
		fmt.Sprintf("Фамилия должна содержать от %d до %d символов", domain.MinNameLength, domain.MaxNameLength),
		req.LastName)
	validateName(verrs, "first_name", "Имя",
		fmt.Sprintf("Имя должно содержать от %d до %d символов", domain.MinNameLength, domain.MaxNameLength),
		req.FirstName)

	if _, err := domain.NormalizePhone(req.Phone); err != nil {
		verrs["phone"] = "Некорректный номер телефона"
	}

	validateDate(verrs, req.Date, now, settings.DaysAhead)
	validateTimeSlot(verrs, req, settings)
	validateCamp(verrs, req.Camp, settings.Camps)

	if len(verrs) == 0 {
		return nil
	}
	return verrs
}

// validateName проверяет длину и алфавит имени или фамилии
func validateName(verrs ValidationErrors, field, label, lengthMessage, value string) {
	trimmed := strings.TrimSpace(value)
	length := utf8.RuneCountInString(trimmed)

	if length < domain.MinNameLength || length > domain.MaxNameLength {
		verrs[field] = lengthMessage
		return
	}

	if !namePattern.MatchString(trimmed) {
		verrs[field] = fmt.Sprintf("%s может содержать только русские буквы, пробелы и дефисы", label)
	}
}

// validateDate проверяет, что дата попадает в окно [сегодня, сегодня + daysAhead]
func validateDate(verrs ValidationErrors, date time.Time, now time.Time, daysAhead int) {
	if date.IsZero() {
		verrs["date"] = "Укажите дату записи"
		return
	}

	dateOnly := truncateToDay(date)
	today := truncateToDay(now)

	if dateOnly.Before(today) {
		verrs["date"] = "Нельзя записаться на прошедшую дату"
		return
	}

	maxDate := today.AddDate(0, 0, daysAhead)
	if dateOnly.After(maxDate) {
		verrs["date"] = fmt.Sprintf("Запись открыта не более чем на %d дней вперед", daysAhead)
	}
}

// validateTimeSlot проверяет формат слота, 15-минутную сетку и рабочее окно
func validateTimeSlot(verrs ValidationErrors, req *Request, settings Settings) {
	if req.TimeSlot.IsZero() {
		verrs["time_slot"] = "Укажите время записи"
		return
	}

	if err := req.TimeSlot.Validate(); err != nil {
		verrs["time_slot"] = "Некорректное время записи"
		return
	}

	minute, _ := req.TimeSlot.Minute()
	if !domain.IsAllowedSlotMinute(minute) {
		verrs["time_slot"] = "Время записи должно быть кратно 15 минутам"
		return
	}

	// Рабочее окно [open, close): последний слот начинается за 15 минут до закрытия
	if req.TimeSlot.IsBefore(settings.OpenTime) || !req.TimeSlot.IsBefore(settings.CloseTime) {
		verrs["time_slot"] = fmt.Sprintf("Время записи должно быть с %s до %s",
			settings.OpenTime, settings.CloseTime)
	}
}

// validateCamp проверяет, что лагерь входит в список допустимых
func validateCamp(verrs ValidationErrors, camp string, camps []string) {
	if strings.TrimSpace(camp) == "" {
		verrs["camp"] = "Укажите лагерь"
		return
	}

	for _, known := range camps {
		if camp == known {
			return
		}
	}
	verrs["camp"] = "Некорректный лагерь"
}

// normalizeSpaces убирает краевые и повторные пробелы
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateToDay обнуляет время, чтобы сравнивать только даты
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
