// Package services содержит бизнес-логику работы с анкетами моделей:
// ленту одобренных анкет, чтение и редактирование анкеты,
// а также операции модерации для панели администратора.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// ProfileRepository определяет методы для работы с анкетами в хранилище.
type ProfileRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateProfile обновляет поля анкеты.
	UpdateProfile(ctx context.Context, userUID string, u models.User) (int, error)
	// UpdateStatus переводит анкету в новый статус модерации.
	UpdateStatus(ctx context.Context, userUID, status string) (int, error)
	// ListApprovedModels возвращает одобренные анкеты с пагинацией.
	ListApprovedModels(ctx context.Context, limit, offset int) ([]*models.User, error)
	// ListModels возвращает анкеты для панели администратора с фильтром по статусу.
	ListModels(ctx context.Context, status string, limit, offset int) ([]*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// ProfileService реализует бизнес-логику работы с анкетами, включая кеширование.
type ProfileService struct {
	repo  ProfileRepository
	cache Cache
	log   *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, cache Cache, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func profileCacheKey(userUID string) string {
	return fmt.Sprintf("profile:%s", userUID)
}

// Feed возвращает одобренные анкеты моделей с пагинацией, новые первыми.
// Хэши паролей в выдачу не попадают.
func (s *ProfileService) Feed(ctx context.Context, limit, offset int) ([]*models.User, error) {
	profiles, err := s.repo.ListApprovedModels(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		p.PasswordHash = ""
	}
	return profiles, nil
}

// Read возвращает анкету по UID, используя кеш или хранилище.
func (s *ProfileService) Read(ctx context.Context, userUID string) (*models.User, error) {
	var result *models.User
	cacheKey := profileCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	result.PasswordHash = ""

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache profile", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update применяет изменения анкеты, присланные её владельцем.
// Не переданные поля сохраняют текущее значение (явные правила дефолтов).
func (s *ProfileService) Update(ctx context.Context, userUID string, req models.DummyProfileUpdate) error {
	current, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Age != nil {
		current.Age = req.Age
	}
	if req.Bio != nil {
		current.Bio = *req.Bio
	}
	if req.Location != nil {
		current.Location = *req.Location
	}
	if req.Whatsapp != nil {
		current.Whatsapp = *req.Whatsapp
	}
	if req.Height != nil {
		current.Height = *req.Height
	}
	if req.Measurements != nil {
		current.Measurements = *req.Measurements
	}
	if req.Languages != nil {
		current.Languages = req.Languages
	}
	if req.ServiceHours != nil {
		current.ServiceHours = *req.ServiceHours
	}

	count, err := s.repo.UpdateProfile(ctx, userUID, *current)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("profile not found")
	}

	s.invalidate(userUID)
	s.log.Info("profile updated", slog.String("user_uid", userUID))
	return nil
}

// ListModels возвращает анкеты для панели администратора.
// Пустой status означает "во всех статусах".
func (s *ProfileService) ListModels(ctx context.Context, status string, limit, offset int) ([]*models.User, error) {
	profiles, err := s.repo.ListModels(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		p.PasswordHash = ""
	}
	return profiles, nil
}

// Approve одобряет анкету модели, ожидающую модерации.
func (s *ProfileService) Approve(ctx context.Context, userUID string) error {
	return s.moderate(ctx, userUID, models.StatusApproved)
}

// Reject отклоняет анкету модели.
func (s *ProfileService) Reject(ctx context.Context, userUID string) error {
	return s.moderate(ctx, userUID, models.StatusRejected)
}

func (s *ProfileService) moderate(ctx context.Context, userUID, status string) error {
	count, err := s.repo.UpdateStatus(ctx, userUID, status)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("model profile not found")
	}
	s.invalidate(userUID)
	s.log.Info("model status changed",
		slog.String("user_uid", userUID), slog.String("status", status))
	return nil
}

func (s *ProfileService) invalidate(userUID string) {
	cacheKey := profileCacheKey(userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
