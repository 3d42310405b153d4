// Package services содержит бизнес-логику подписок: вычисление статуса
// из дат и операции создания и продления с ведением журнала аудита.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// UpdateActiveSubscriptionEnd продлевает активную подписку пользователя.
	UpdateActiveSubscriptionEnd(ctx context.Context, userUID string, endDate time.Time) (int, error)
	// AddSubscriptionHistory добавляет запись аудита.
	AddSubscriptionHistory(ctx context.Context, h models.SubscriptionHistory) error
	// ListSubscriptionHistory возвращает записи аудита пользователя.
	ListSubscriptionHistory(ctx context.Context, userUID string) ([]*models.SubscriptionHistory, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// SetSubscriptionEnd зеркалирует дату окончания подписки на пользователе.
	SetSubscriptionEnd(ctx context.Context, userUID string, end *time.Time) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
type SubscriptionService struct {
	repo       SubscriptionRepository
	paymentURL string
	log        *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, paymentURL string, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:       repo,
		paymentURL: paymentURL,
		log:        log,
	}
}

// ResolveStatus вычисляет статус подписки из двух дат и текущего момента.
//
// Если дата окончания подписки не задана, статус определяется пробным
// периодом: прошло меньше TrialPeriodDays полных дней с регистрации — trial
// с остатком дней, иначе expired. Отсутствующая дата регистрации трактуется
// как истекший пробный период с нулевым остатком.
//
// Если дата окончания задана, статус active тогда и только тогда, когда
// она строго в будущем.
func ResolveStatus(createdAt, subscriptionEnd *time.Time, now time.Time) models.SubscriptionStatus {
	if subscriptionEnd != nil {
		if subscriptionEnd.After(now) {
			return models.SubscriptionStatus{Status: models.SubscriptionActive}
		}
		return models.SubscriptionStatus{Status: models.SubscriptionExpired}
	}

	if createdAt == nil {
		return models.SubscriptionStatus{Status: models.SubscriptionExpired}
	}

	elapsedDays := int(now.Sub(*createdAt).Hours() / 24)
	if elapsedDays < models.TrialPeriodDays {
		remaining := models.TrialPeriodDays - elapsedDays
		if remaining < 0 {
			remaining = 0
		}
		return models.SubscriptionStatus{Status: models.SubscriptionTrial, DaysRemaining: remaining}
	}
	return models.SubscriptionStatus{Status: models.SubscriptionExpired}
}

// Status возвращает вычисленный статус подписки пользователя.
func (s *SubscriptionService) Status(ctx context.Context, userUID string) (*models.SubscriptionStatus, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	status := ResolveStatus(user.CreatedAt, user.SubscriptionEnd, time.Now())
	return &status, nil
}

// Create создает подписку на один месяц, зеркалирует дату окончания
// на пользователе и добавляет запись аудита. Возвращает созданную подписку.
func (s *SubscriptionService) Create(ctx context.Context, userUID string, req models.DummySubscriptionCreate) (*models.Subscription, error) {
	now := time.Now()
	endDate := now.AddDate(0, 1, 0)

	sub := models.Subscription{
		UserUID:       userUID,
		Amount:        req.Amount,
		StartDate:     now,
		EndDate:       endDate,
		Status:        models.SubscriptionActive,
		PaymentStatus: "pending",
		PaymentURL:    s.paymentURL,
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = id
	s.log.Info("created new subscription", slog.Int("id", id), slog.String("user_uid", userUID))

	// Инвариант: users.subscription_end повторяет end_date активной подписки.
	if err := s.repo.SetSubscriptionEnd(ctx, userUID, &endDate); err != nil {
		return nil, err
	}

	history := models.SubscriptionHistory{
		SubscriptionID: &id,
		UserUID:        userUID,
		Action:         "create",
		Status:         models.SubscriptionActive,
		Amount:         &req.Amount,
	}
	if err := s.repo.AddSubscriptionHistory(ctx, history); err != nil {
		return nil, err
	}

	return &sub, nil
}

// Update продлевает активную подписку до новой даты окончания,
// зеркалирует её на пользователе и добавляет запись аудита.
func (s *SubscriptionService) Update(ctx context.Context, userUID string, req models.DummySubscriptionUpdate) error {
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	count, err := s.repo.UpdateActiveSubscriptionEnd(ctx, userUID, endDate)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no active subscription to update")
	}

	if err := s.repo.SetSubscriptionEnd(ctx, userUID, &endDate); err != nil {
		return err
	}

	history := models.SubscriptionHistory{
		UserUID: userUID,
		Action:  "update",
		Status:  models.SubscriptionActive,
	}
	if err := s.repo.AddSubscriptionHistory(ctx, history); err != nil {
		return err
	}

	s.log.Info("updated subscription", slog.String("user_uid", userUID))
	return nil
}

// History возвращает журнал аудита подписок пользователя, новые записи первыми.
func (s *SubscriptionService) History(ctx context.Context, userUID string) ([]*models.SubscriptionHistory, error) {
	return s.repo.ListSubscriptionHistory(ctx, userUID)
}
