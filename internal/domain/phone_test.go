package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "десять цифр", input: "9123456789", expected: "+7 (912) 345-67-89"},
		{name: "с восьмеркой", input: "89123456789", expected: "+7 (912) 345-67-89"},
		{name: "с плюс семь", input: "+79123456789", expected: "+7 (912) 345-67-89"},
		{name: "со скобками и дефисами", input: "8 (912) 345-67-89", expected: "+7 (912) 345-67-89"},
		{name: "с пробелами", input: " 7 912 345 67 89 ", expected: "+7 (912) 345-67-89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizePhone_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "пустая строка", input: ""},
		{name: "слишком короткий", input: "12345"},
		{name: "слишком длинный", input: "791234567890"},
		{name: "без цифр", input: "abc-def"},
		{name: "одиннадцать цифр без кода страны", input: "19123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizePhone(tt.input)
			assert.Error(t, err)
		})
	}
}
