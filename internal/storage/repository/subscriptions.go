package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, amount, start_date, end_date,
			      status, payment_status, payment_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserUID, sub.Amount, sub.StartDate, sub.EndDate,
		sub.Status, sub.PaymentStatus, sub.PaymentURL).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateActiveSubscriptionEnd продлевает активную подписку пользователя
// и возвращает количество изменённых строк.
func (s *Storage) UpdateActiveSubscriptionEnd(ctx context.Context, userUID string, endDate time.Time) (int, error) {
	const op = "storage.UpdateActiveSubscriptionEnd"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET end_date = $1, updated_at = now()
			  WHERE user_uid = $2 AND status = 'active'`
	result, err := s.DB.ExecContext(ctx, query, endDate, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// AddSubscriptionHistory добавляет запись аудита действия над подпиской.
func (s *Storage) AddSubscriptionHistory(ctx context.Context, h models.SubscriptionHistory) error {
	const op = "storage.AddSubscriptionHistory"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscription_history (subscription_id, user_uid, action, status, amount)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query,
		h.SubscriptionID, h.UserUID, h.Action, h.Status, h.Amount)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSubscriptionHistory возвращает записи аудита пользователя, новые первыми.
func (s *Storage) ListSubscriptionHistory(ctx context.Context, userUID string) ([]*models.SubscriptionHistory, error) {
	const op = "storage.ListSubscriptionHistory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subscription_id, user_uid, action, status, amount, created_at
			  FROM subscription_history
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionHistory
	for rows.Next() {
		var h models.SubscriptionHistory
		var subscriptionID sql.NullInt64
		var amount sql.NullFloat64
		if err := rows.Scan(&h.ID, &subscriptionID, &h.UserUID, &h.Action,
			&h.Status, &amount, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if subscriptionID.Valid {
			v := int(subscriptionID.Int64)
			h.SubscriptionID = &v
		}
		if amount.Valid {
			h.Amount = &amount.Float64
		}
		result = append(result, &h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindSubscriptionsExpiringTomorrow находит активные подписки, истекающие завтра,
// вместе с данными модели для уведомления.
func (s *Storage) FindSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiryInfo, error) {
	const op = "storage.FindSubscriptionsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      u.uid,
			      u.name,
			      u.whatsapp,
			      s.end_date
			  FROM subscriptions s
			  JOIN users u ON s.user_uid = u.uid
			  WHERE s.status = 'active'
			    AND s.end_date::DATE = CURRENT_DATE + INTERVAL '1 day';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiryInfo
	for rows.Next() {
		var info models.ExpiryInfo
		if err = rows.Scan(&info.UserUID, &info.Name, &info.Whatsapp, &info.ExpiresAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		info.Kind = "subscription"
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
