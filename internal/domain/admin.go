package domain

import "time"

// AdminUser administrator account
type AdminUser struct {
	ID           int64
	Username     string // unique
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}

// AdminSession явный сессионный токен, передаваемый в каждом запросе
// (заголовок X-Admin-Token)
type AdminSession struct {
	Token       string // uuid
	AdminUserID int64
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// IsExpired returns true if the session is past its expiry time
func (s *AdminSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
