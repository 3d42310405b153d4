// Package services содержит бизнес-логику отправки уведомлений моделям:
// нормализацию телефона, построение payload и доставку на webhook
// с ограниченным числом повторов.
//
// События view — лучшая попытка: некорректный телефон и ошибки доставки
// не считаются ошибками операции. Остальные события с некорректным
// телефоном отклоняются без попытки доставки.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/profile-platform/internal/lib/phone"
	"github.com/magabrotheeeer/profile-platform/internal/lib/retry"
	"github.com/magabrotheeeer/profile-platform/internal/lib/sl"
	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// Число попыток доставки: первая плюс три повтора с линейной задержкой.
const deliveryAttempts = 4

// Deliverer доставляет payload на внешний webhook.
type Deliverer interface {
	Deliver(ctx context.Context, payload models.WebhookPayload) error
}

// Result содержит итог отправки уведомления.
type Result struct {
	WhatsappLink string `json:"whatsapp_link,omitempty"`
}

// NotificationService реализует бизнес-логику отправки уведомлений.
type NotificationService struct {
	deliverer          Deliverer
	defaultCountryCode string
	backoffStep        time.Duration
	log                *slog.Logger
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(deliverer Deliverer, defaultCountryCode string, log *slog.Logger) *NotificationService {
	return &NotificationService{
		deliverer:          deliverer,
		defaultCountryCode: defaultCountryCode,
		backoffStep:        time.Second,
		log:                log,
	}
}

// Send нормализует телефон модели, строит payload и доставляет уведомление.
//
// Для событий view некорректный телефон и провал доставки приводят только
// к записи в лог. Для whatsapp в результат попадает ссылка wa.me.
func (s *NotificationService) Send(ctx context.Context, req models.DummyNotification) (*Result, error) {
	const op = "services.Send"

	normalized, err := phone.Normalize(req.ModelPhone, s.defaultCountryCode)
	if err != nil {
		if req.Type == models.EventView {
			s.log.Info("dropping view notification with invalid phone",
				slog.String("model", req.ModelName))
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userName := req.UserName
	if userName == "" {
		userName = models.AnonymousUserName
	}

	payload := models.WebhookPayload{
		ModelName:  req.ModelName,
		ModelPhone: normalized,
		Type:       req.Type,
		UserName:   userName,
		Timestamp:  time.Now().Format(time.RFC3339),
	}

	if err := s.deliver(ctx, payload); err != nil {
		if req.Type == models.EventView {
			s.log.Warn("view notification delivery failed", sl.Err(err))
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &Result{}
	if req.Type == models.EventWhatsapp {
		result.WhatsappLink = "https://wa.me/" + phone.Digits(normalized)
	}
	return result, nil
}

// SendExpiryInfo обрабатывает сообщение из очереди о скором истечении
// пробного периода или подписки и доставляет уведомление модели.
// Некорректный телефон — причина отбросить сообщение, а не вернуть его в очередь.
func (s *NotificationService) SendExpiryInfo(body []byte) error {
	const op = "services.SendExpiryInfo"

	var info models.ExpiryInfo
	if err := json.Unmarshal(body, &info); err != nil {
		s.log.Error("failed to unmarshal expiry message", sl.Err(err))
		return nil
	}

	normalized, err := phone.Normalize(info.Whatsapp, s.defaultCountryCode)
	if err != nil {
		if errors.Is(err, phone.ErrInvalidPhone) {
			s.log.Warn("dropping expiry notification with invalid phone",
				slog.String("user_uid", info.UserUID))
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	payload := models.WebhookPayload{
		ModelName:  info.Name,
		ModelPhone: normalized,
		Type:       models.EventSubscriptionExpiring,
		UserName:   models.AnonymousUserName,
		Timestamp:  time.Now().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.deliver(ctx, payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("expiry notification delivered",
		slog.String("user_uid", info.UserUID), slog.String("kind", info.Kind))
	return nil
}

func (s *NotificationService) deliver(ctx context.Context, payload models.WebhookPayload) error {
	return retry.Do(ctx, deliveryAttempts, retry.Linear(s.backoffStep), func() error {
		return s.deliverer.Deliver(ctx, payload)
	})
}
