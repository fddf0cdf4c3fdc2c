package create_booking

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationErrors ошибки валидации по полям запроса.
// Ключ — имя поля в snake_case, значение — сообщение для пользователя.
type ValidationErrors map[string]string

// Error реализует интерфейс error
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "create_booking: validation failed: " + strings.Join(parts, "; ")
}

// AsValidationErrors извлекает ValidationErrors из цепочки ошибок
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
