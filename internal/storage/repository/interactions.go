package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// AddLike добавляет отметку "нравится" одним условным запросом.
// Возвращает true, если строка была добавлена, и false, если пара
// уже существовала (повторная отметка — no-op).
func (s *Storage) AddLike(ctx context.Context, likerUID, profileUID string) (bool, error) {
	const op = "storage.AddLike"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO likes (liker_uid, profile_uid, status)
			  VALUES ($1, $2, 'active')
			  ON CONFLICT (liker_uid, profile_uid) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, likerUID, profileUID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// RemoveLike удаляет отметку "нравится" и возвращает количество удалённых строк.
func (s *Storage) RemoveLike(ctx context.Context, likerUID, profileUID string) (int, error) {
	const op = "storage.RemoveLike"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM likes WHERE liker_uid = $1 AND profile_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, likerUID, profileUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// AddFavorite добавляет анкету в избранное тем же условным запросом, что и AddLike.
func (s *Storage) AddFavorite(ctx context.Context, userUID, profileUID string) (bool, error) {
	const op = "storage.AddFavorite"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO favorites (user_uid, profile_uid)
			  VALUES ($1, $2)
			  ON CONFLICT (user_uid, profile_uid) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, userUID, profileUID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// RemoveFavorite удаляет анкету из избранного и возвращает количество удалённых строк.
func (s *Storage) RemoveFavorite(ctx context.Context, userUID, profileUID string) (int, error) {
	const op = "storage.RemoveFavorite"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM favorites WHERE user_uid = $1 AND profile_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, profileUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// AddView записывает просмотр анкеты. viewerUID пуст для анонимного просмотра.
func (s *Storage) AddView(ctx context.Context, profileUID, viewerUID string) error {
	const op = "storage.AddView"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var viewer any
	if viewerUID != "" {
		viewer = viewerUID
	}
	query := `INSERT INTO profile_views (profile_uid, viewer_uid)
			  VALUES ($1, $2)`
	_, err := s.DB.ExecContext(ctx, query, profileUID, viewer)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// HasLike проверяет, отмечал ли пользователь анкету.
func (s *Storage) HasLike(ctx context.Context, likerUID, profileUID string) (bool, error) {
	const op = "storage.HasLike"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM likes WHERE liker_uid = $1 AND profile_uid = $2
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, likerUID, profileUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// HasFavorite проверяет, добавлял ли пользователь анкету в избранное.
func (s *Storage) HasFavorite(ctx context.Context, userUID, profileUID string) (bool, error) {
	const op = "storage.HasFavorite"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM favorites WHERE user_uid = $1 AND profile_uid = $2
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userUID, profileUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// CountInteractions возвращает счётчики лайков, избранного и просмотров анкеты.
func (s *Storage) CountInteractions(ctx context.Context, profileUID string) (*models.InteractionStats, error) {
	const op = "storage.CountInteractions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM likes WHERE profile_uid = $1),
			      (SELECT COUNT(*) FROM favorites WHERE profile_uid = $1),
			      (SELECT COUNT(*) FROM profile_views WHERE profile_uid = $1)`
	var stats models.InteractionStats
	if err := s.DB.QueryRowContext(ctx, query, profileUID).Scan(
		&stats.Likes, &stats.Favorites, &stats.Views); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}
