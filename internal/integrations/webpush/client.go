// Package webpush клиент доставки web-push уведомлений (VAPID).
// Транспорт делегирован библиотеке SherClockHolmes/webpush-go —
// аналогично остальным интеграционным клиентам сервис знает только
// о своих доменных моделях и сентинельных ошибках.
package webpush

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpushgo "github.com/SherClockHolmes/webpush-go"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

// Client клиент отправки push-уведомлений
type Client struct {
	vapidPublicKey  string
	vapidPrivateKey string
	subscriber      string // mailto:..., уходит в VAPID claims
	ttlSeconds      int
	log             Logger
}

// NewClient создает новый экземпляр push-клиента
func NewClient(vapidPublicKey, vapidPrivateKey, subscriber string, ttlSeconds int, log Logger) *Client {
	return &Client{
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
		subscriber:      subscriber,
		ttlSeconds:      ttlSeconds,
		log:             log,
	}
}

// Send отправляет push-уведомление на подписку.
// Ответ 404/410 означает, что подписка удалена на стороне браузера —
// возвращается ErrSubscriptionGone, чтобы вызывающий удалил её из БД.
func (c *Client) Send(ctx context.Context, sub *domain.PushSubscription, payload Payload) error {
	if c.vapidPublicKey == "" || c.vapidPrivateKey == "" {
		return ErrNotConfigured
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrDeliveryFailed, err)
	}

	subscription := &webpushgo.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpushgo.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}

	resp, err := webpushgo.SendNotificationWithContext(ctx, data, subscription, &webpushgo.Options{
		Subscriber:      c.subscriber,
		VAPIDPublicKey:  c.vapidPublicKey,
		VAPIDPrivateKey: c.vapidPrivateKey,
		TTL:             c.ttlSeconds,
	})
	if err != nil {
		return fmt.Errorf("%w: send notification: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusNotFound, http.StatusGone:
		c.log.Info("Push endpoint gone for booking_id=%d", sub.BookingID)
		return ErrSubscriptionGone
	default:
		return fmt.Errorf("%w: unexpected status code %d", ErrDeliveryFailed, resp.StatusCode)
	}
}
