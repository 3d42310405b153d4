// Package services содержит планировщик уведомлений об истечении:
// периодически находит модели с заканчивающимся пробным периодом
// и подписки, истекающие завтра, и публикует сообщения в очередь.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/profile-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/profile-platform/internal/lib/sl"
	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// SchedulerRepository определяет выборки планировщика из хранилища.
type SchedulerRepository interface {
	// FindTrialExpiringToday находит модели, у которых сегодня истекает пробный период.
	FindTrialExpiringToday(ctx context.Context) ([]*models.User, error)
	// FindSubscriptionsExpiringTomorrow находит подписки, истекающие завтра.
	FindSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiryInfo, error)
}

// SchedulerService публикует сообщения об истечении в очередь уведомлений.
type SchedulerService struct {
	repo SchedulerRepository
	ch   *amqp.Channel
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SchedulerRepository, ch *amqp.Channel, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		ch:   ch,
		log:  log,
	}
}

// StartTrialChecker запускает цикл проверки истекающих пробных периодов.
func (s *SchedulerService) StartTrialChecker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.checkTrials(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("trial checker stopped")
			return
		case <-ticker.C:
			s.checkTrials(ctx)
		}
	}
}

// StartSubscriptionChecker запускает цикл проверки истекающих подписок.
func (s *SchedulerService) StartSubscriptionChecker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.checkSubscriptions(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("subscription checker stopped")
			return
		case <-ticker.C:
			s.checkSubscriptions(ctx)
		}
	}
}

func (s *SchedulerService) checkTrials(ctx context.Context) {
	users, err := s.repo.FindTrialExpiringToday(ctx)
	if err != nil {
		s.log.Error("failed to find expiring trials", sl.Err(err))
		return
	}

	for _, user := range users {
		info := models.ExpiryInfo{
			UserUID:  user.UID,
			Name:     user.Name,
			Whatsapp: user.Whatsapp,
			Kind:     "trial",
		}
		if user.CreatedAt != nil {
			info.ExpiresAt = user.CreatedAt.AddDate(0, 0, models.TrialPeriodDays)
		}
		if err := rabbitmq.PublishMessage(s.ch, rabbitmq.Exchange, "trial.expiring", info); err != nil {
			s.log.Error("failed to publish trial expiry",
				slog.String("user_uid", user.UID), sl.Err(err))
			continue
		}
	}
	s.log.Info("trial check completed", slog.Int("found", len(users)))
}

func (s *SchedulerService) checkSubscriptions(ctx context.Context) {
	infos, err := s.repo.FindSubscriptionsExpiringTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find expiring subscriptions", sl.Err(err))
		return
	}

	for _, info := range infos {
		if err := rabbitmq.PublishMessage(s.ch, rabbitmq.Exchange, "subscription.expiring", info); err != nil {
			s.log.Error("failed to publish subscription expiry",
				slog.String("user_uid", info.UserUID), sl.Err(err))
			continue
		}
	}
	s.log.Info("subscription check completed", slog.Int("found", len(infos)))
}
