package models

import "time"

// Типы событий webhook-уведомлений.
const (
	EventLike     = "like"
	EventView     = "view"
	EventFavorite = "favorite"
	EventWhatsapp = "whatsapp"

	// EventSubscriptionExpiring отправляется конвейером уведомлений
	// об истечении подписки или пробного периода.
	EventSubscriptionExpiring = "subscription_expiring"
)

// AnonymousUserName подставляется в payload, когда имя инициатора неизвестно.
const AnonymousUserName = "Anônimo"

// WebhookPayload — тело исходящего POST-запроса на webhook-endpoint.
type WebhookPayload struct {
	ModelName  string `json:"modelName"`
	ModelPhone string `json:"modelPhone"`
	Type       string `json:"type"`
	UserName   string `json:"userName"`
	Timestamp  string `json:"timestamp"`
}

// DummyNotification используется для приёма события уведомления из JSON-запроса.
type DummyNotification struct {
	Type       string `json:"type" validate:"required,oneof=like view favorite whatsapp"` // Тип события
	ModelName  string `json:"model_name" validate:"required"`                             // Имя модели
	ModelPhone string `json:"model_phone" validate:"required"`                            // Телефон модели
	UserName   string `json:"user_name" validate:"omitempty,max=128"`                     // Имя инициатора
}

// ExpiryInfo — сообщение конвейера уведомлений об истечении
// подписки или пробного периода, публикуемое в очередь.
type ExpiryInfo struct {
	UserUID   string    `json:"user_uid"`
	Name      string    `json:"name"`
	Whatsapp  string    `json:"whatsapp"`
	Kind      string    `json:"kind"` // trial или subscription
	ExpiresAt time.Time `json:"expires_at"`
}
