package domain

import "time"

// Service represents a bookable camp service
type Service struct {
	ID                int64
	Name              string // unique
	Description       string
	RequiredDocuments []string
	Active            bool
	DisplayOrder      int // lower comes first in public listings
	CreatedAt         time.Time
}

// IsBookable returns true if the service accepts new bookings
func (s *Service) IsBookable() bool {
	return s.Active
}
