package subscribe_push

import "github.com/camp-taezhny/BookingService/internal/service/notifications/models"

// SubscribeRequest HTTP request model: тело браузерного PushSubscription.
// ID бронирования приходит в пути запроса.
type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SubscribeRequest) ToServiceRequest(bookingID int64) *models.SubscribeRequest {
	return &models.SubscribeRequest{
		BookingID: bookingID,
		Endpoint:  r.Endpoint,
		Keys: models.SubscriptionKeys{
			P256dh: r.Keys.P256dh,
			Auth:   r.Keys.Auth,
		},
	}
}
