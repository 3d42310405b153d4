// Package services содержит бизнес-логику взаимодействий с анкетами:
// отметки "нравится", избранное, просмотры и счётчики.
//
// Повторная отметка уже отмеченной анкеты — идемпотентный no-op:
// уникальность пары обеспечивается условной вставкой на уровне хранилища,
// без предварительной проверки на стороне клиента.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// InteractionRepository определяет методы для работы с взаимодействиями в хранилище.
type InteractionRepository interface {
	// AddLike добавляет отметку; false — пара уже существовала.
	AddLike(ctx context.Context, likerUID, profileUID string) (bool, error)
	// RemoveLike удаляет отметку и возвращает количество удалённых строк.
	RemoveLike(ctx context.Context, likerUID, profileUID string) (int, error)
	// AddFavorite добавляет в избранное; false — пара уже существовала.
	AddFavorite(ctx context.Context, userUID, profileUID string) (bool, error)
	// RemoveFavorite удаляет из избранного.
	RemoveFavorite(ctx context.Context, userUID, profileUID string) (int, error)
	// AddView записывает просмотр анкеты.
	AddView(ctx context.Context, profileUID, viewerUID string) error
	// HasLike проверяет наличие отметки.
	HasLike(ctx context.Context, likerUID, profileUID string) (bool, error)
	// HasFavorite проверяет наличие в избранном.
	HasFavorite(ctx context.Context, userUID, profileUID string) (bool, error)
	// CountInteractions возвращает счётчики по анкете.
	CountInteractions(ctx context.Context, profileUID string) (*models.InteractionStats, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// InteractionService реализует бизнес-логику взаимодействий с анкетами.
type InteractionService struct {
	repo  InteractionRepository
	cache Cache
	log   *slog.Logger
}

// NewInteractionService создает новый экземпляр InteractionService.
func NewInteractionService(repo InteractionRepository, cache Cache, log *slog.Logger) *InteractionService {
	return &InteractionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func statsCacheKey(profileUID string) string {
	return fmt.Sprintf("interactions:%s", profileUID)
}

// Like ставит отметку "нравится". Возвращает false, если пользователь
// уже отмечал анкету — в этом случае ничего не записывается.
func (s *InteractionService) Like(ctx context.Context, likerUID, profileUID string) (bool, error) {
	added, err := s.repo.AddLike(ctx, likerUID, profileUID)
	if err != nil {
		return false, err
	}
	if added {
		s.invalidateStats(profileUID)
		s.log.Info("profile liked", slog.String("profile_uid", profileUID))
	}
	return added, nil
}

// Unlike снимает отметку "нравится". Возвращает false, если отметки не было.
func (s *InteractionService) Unlike(ctx context.Context, likerUID, profileUID string) (bool, error) {
	count, err := s.repo.RemoveLike(ctx, likerUID, profileUID)
	if err != nil {
		return false, err
	}
	if count > 0 {
		s.invalidateStats(profileUID)
	}
	return count > 0, nil
}

// Favorite добавляет анкету в избранное. Возвращает false при повторе.
func (s *InteractionService) Favorite(ctx context.Context, userUID, profileUID string) (bool, error) {
	added, err := s.repo.AddFavorite(ctx, userUID, profileUID)
	if err != nil {
		return false, err
	}
	if added {
		s.invalidateStats(profileUID)
	}
	return added, nil
}

// Unfavorite удаляет анкету из избранного.
func (s *InteractionService) Unfavorite(ctx context.Context, userUID, profileUID string) (bool, error) {
	count, err := s.repo.RemoveFavorite(ctx, userUID, profileUID)
	if err != nil {
		return false, err
	}
	if count > 0 {
		s.invalidateStats(profileUID)
	}
	return count > 0, nil
}

// View записывает просмотр анкеты. viewerUID пуст для анонимного просмотра.
func (s *InteractionService) View(ctx context.Context, profileUID, viewerUID string) error {
	if err := s.repo.AddView(ctx, profileUID, viewerUID); err != nil {
		return err
	}
	s.invalidateStats(profileUID)
	return nil
}

// Checked возвращает, отмечал ли пользователь анкету и добавлял ли в избранное.
func (s *InteractionService) Checked(ctx context.Context, userUID, profileUID string) (liked, favorited bool, err error) {
	liked, err = s.repo.HasLike(ctx, userUID, profileUID)
	if err != nil {
		return false, false, err
	}
	favorited, err = s.repo.HasFavorite(ctx, userUID, profileUID)
	if err != nil {
		return false, false, err
	}
	return liked, favorited, nil
}

// Stats возвращает счётчики анкеты, используя кеш или хранилище.
func (s *InteractionService) Stats(ctx context.Context, profileUID string) (*models.InteractionStats, error) {
	var result *models.InteractionStats
	cacheKey := statsCacheKey(profileUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.CountInteractions(ctx, profileUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Minute); err != nil {
		s.log.Warn("failed to cache interaction stats", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

func (s *InteractionService) invalidateStats(profileUID string) {
	cacheKey := statsCacheKey(profileUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate stats cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
