package create_booking

import (
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
	createBooking "github.com/camp-taezhny/BookingService/internal/usecase/create_booking"
	"github.com/camp-taezhny/BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date"`      // "2025-10-15"
	TimeSlot  string `json:"time_slot"` // "10:15"
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
	Camp      string `json:"camp"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64    `json:"id"`
	ReferenceNumber   string   `json:"reference_number"`
	ServiceID         int64    `json:"service_id"`
	ServiceName       string   `json:"service_name"`
	Date              string   `json:"date"`
	TimeSlot          string   `json:"time_slot"`
	LastName          string   `json:"last_name"`
	FirstName         string   `json:"first_name"`
	Phone             string   `json:"phone"`
	Camp              string   `json:"camp"`
	Status            string   `json:"status"`
	RequiredDocuments []string `json:"required_documents"`
	CreatedAt         string   `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Ошибки разбора даты и времени возвращаются как ошибки полей,
// в том же формате, что и ошибки бизнес-валидации.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, createBooking.ValidationErrors) {
	verrs := createBooking.ValidationErrors{}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		verrs["date"] = "некорректный формат даты, ожидается YYYY-MM-DD"
	}

	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		verrs["time_slot"] = "некорректный формат времени, ожидается HH:MM"
	}

	if len(verrs) > 0 {
		return nil, verrs
	}

	return &createBooking.Request{
		ServiceID: r.ServiceID,
		Date:      date,
		TimeSlot:  timeSlot,
		LastName:  r.LastName,
		FirstName: r.FirstName,
		Phone:     r.Phone,
		Camp:      r.Camp,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	documents := resp.RequiredDocuments
	if documents == nil {
		documents = []string{}
	}
	return &BookingResponse{
		ID:                resp.ID,
		ReferenceNumber:   resp.ReferenceNumber,
		ServiceID:         resp.ServiceID,
		ServiceName:       resp.ServiceName,
		Date:              resp.Date.Format(domain.DateFormat),
		TimeSlot:          resp.TimeSlot.String(),
		LastName:          resp.LastName,
		FirstName:         resp.FirstName,
		Phone:             resp.Phone,
		Camp:              resp.Camp,
		Status:            resp.Status,
		RequiredDocuments: documents,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
