package domain

import "fmt"

// NormalizePhone приводит телефон к формату "+7 (XXX) XXX-XX-XX".
// Принимает любой ввод, содержащий 10 значащих цифр, с необязательным
// ведущим кодом страны 7 или 8.
func NormalizePhone(raw string) (string, error) {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}

	if len(digits) == 11 && (digits[0] == '7' || digits[0] == '8') {
		digits = digits[1:]
	}

	if len(digits) != 10 {
		return "", fmt.Errorf("phone must contain 10 digits, got %d", len(digits))
	}

	return fmt.Sprintf("+7 (%s) %s-%s-%s",
		digits[0:3], digits[3:6], digits[6:8], digits[8:10]), nil
}
