package webpush

import "errors"

var (
	// ErrSubscriptionGone возвращается, когда push-сервис сообщил,
	// что endpoint подписки больше не существует (404/410)
	ErrSubscriptionGone = errors.New("webpush: subscription is gone")

	// ErrNotConfigured возвращается, когда VAPID-ключи не заданы
	ErrNotConfigured = errors.New("webpush: VAPID keys are not configured")

	// ErrDeliveryFailed возвращается при прочих ошибках доставки
	ErrDeliveryFailed = errors.New("webpush: delivery failed")
)
