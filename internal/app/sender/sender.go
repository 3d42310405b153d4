// Package sender собирает приложение-потребитель очереди уведомлений:
// читает сообщения об истечении и доставляет их на webhook.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/profile-platform/internal/config"
	"github.com/magabrotheeeer/profile-platform/internal/lib/rabbitmq"
	notificationservice "github.com/magabrotheeeer/profile-platform/internal/services/notification"
	"github.com/magabrotheeeer/profile-platform/internal/webhook"
)

// App представляет приложение-потребитель уведомлений.
type App struct {
	conn                *amqp.Connection
	ch                  *amqp.Channel
	notificationService *notificationservice.NotificationService
	logger              *slog.Logger
}

// New создает новый экземпляр приложения-потребителя.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.DefaultQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	webhookClient := webhook.NewClient(cfg.WebhookURL, cfg.WebhookAuthToken)
	notificationService := notificationservice.NewNotificationService(
		webhookClient, cfg.DefaultCountryCode, logger)

	return &App{
		conn:                conn,
		ch:                  ch,
		notificationService: notificationService,
		logger:              logger,
	}, nil
}

// Run запускает потребителей очередей и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	for _, queue := range rabbitmq.DefaultQueues() {
		if err := rabbitmq.ConsumeMessages(ctx, a.ch, queue.QueueName, a.notificationService.SendExpiryInfo); err != nil {
			a.logger.Error("failed to start consumer",
				slog.String("queue", queue.QueueName), slog.Any("err", err))
			return err
		}
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
