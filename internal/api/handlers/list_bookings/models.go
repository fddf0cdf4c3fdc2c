package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
	"github.com/camp-taezhny/BookingService/internal/service/bookings/models"
	"github.com/camp-taezhny/BookingService/pkg/ptr"
)

// ParseQuery собирает фильтр выборки из query-параметров:
// service_id, date, camp, status — все опциональны
func ParseQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if raw := query.Get("service_id"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid service_id %q", raw)
		}
		req.ServiceID = ptr.Ptr(serviceID)
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", raw)
		}
		req.Date = ptr.Ptr(date)
	}

	if camp := query.Get("camp"); camp != "" {
		req.Camp = ptr.Ptr(camp)
	}

	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	return req, nil
}
