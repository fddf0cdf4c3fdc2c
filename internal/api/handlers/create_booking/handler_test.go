package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
	createBooking "github.com/camp-taezhny/BookingService/internal/usecase/create_booking"
	"github.com/camp-taezhny/BookingService/pkg/types"
)

type fakeLogger struct{}

func (l *fakeLogger) Info(format string, v ...interface{})  {}
func (l *fakeLogger) Warn(format string, v ...interface{})  {}
func (l *fakeLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	response *createBooking.Response
	err      error
	received *createBooking.Request
}

func (uc *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	uc.received = req
	return uc.response, uc.err
}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, &fakeLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func validBody() string {
	return `{
		"service_id": 1,
		"date": "2026-03-11",
		"time_slot": "10:15",
		"last_name": "Иванов",
		"first_name": "Мария",
		"phone": "89123456789",
		"camp": "Таежный"
	}`
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{response: &createBooking.Response{
		ID:                1,
		ReferenceNumber:   "20260311-A7K2",
		ServiceID:         1,
		ServiceName:       "Медицинская справка",
		Date:              time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		TimeSlot:          types.TimeString("10:15"),
		LastName:          "Иванов",
		FirstName:         "Мария",
		Phone:             "+7 (912) 345-67-89",
		Camp:              "Таежный",
		Status:            "confirmed",
		RequiredDocuments: []string{"Паспорт"},
		CreatedAt:         time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}}

	rec := doRequest(t, uc, validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "20260311-A7K2", resp.ReferenceNumber)
	assert.Equal(t, "2026-03-11", resp.Date)
	assert.Equal(t, "10:15", resp.TimeSlot)
	assert.Equal(t, []string{"Паспорт"}, resp.RequiredDocuments)

	require.NotNil(t, uc.received)
	assert.Equal(t, types.TimeString("10:15"), uc.received.TimeSlot)
}

func TestHandle_MalformedJSON(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UnparsableDate(t *testing.T) {
	body := strings.Replace(validBody(), "2026-03-11", "11.03.2026", 1)
	rec := doRequest(t, &fakeUseCase{}, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.FieldErrors, "date")
}

func TestHandle_ValidationErrorsAsFieldErrors(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ValidationErrors{
		"time_slot": "Это время уже занято, выберите другое",
	}}

	rec := doRequest(t, uc, validBody())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ошибка валидации", resp.Error)
	assert.Equal(t, "Это время уже занято, выберите другое", resp.FieldErrors["time_slot"])
}

func TestHandle_ServiceNotFound(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrServiceNotFound}

	rec := doRequest(t, uc, validBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrInternal}

	rec := doRequest(t, uc, validBody())
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "внутренняя ошибка сервера", resp.Error)
}
