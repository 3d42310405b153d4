// Package services содержит бизнес-логику аутентификации:
// регистрацию, вход, проверку токенов, сессии и удаление аккаунта.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	jwtlib "github.com/magabrotheeeer/profile-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/profile-platform/internal/lib/password"
	"github.com/magabrotheeeer/profile-platform/internal/lib/sl"
	"github.com/magabrotheeeer/profile-platform/internal/models"
	"github.com/magabrotheeeer/profile-platform/internal/storage/s3"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken возвращается при попытке регистрации на занятый email.
var ErrEmailTaken = errors.New("email already registered")

// AuthRepository определяет методы для работы с пользователями в хранилище.
type AuthRepository interface {
	// CreateUser добавляет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// DeleteUser удаляет пользователя и возвращает количество удалённых строк.
	DeleteUser(ctx context.Context, userUID string) (int, error)
}

// SessionStore хранит данные сессий авторизованных пользователей.
type SessionStore interface {
	Save(userUID string, record models.SessionRecord) error
	Load(userUID string) (*models.SessionRecord, bool, error)
	Drop(userUID string) error
}

// AuthService реализует бизнес-логику аутентификации и управления аккаунтом.
type AuthService struct {
	repo     AuthRepository
	sessions SessionStore
	media    s3.Storage
	maker    jwtlib.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo AuthRepository, sessions SessionStore, media s3.Storage,
	maker jwtlib.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		sessions: sessions,
		media:    media,
		maker:    maker,
		log:      log,
	}
}

// Register создает аккаунт модели. Email приводится к нижнему регистру,
// пароль хранится только в виде bcrypt-хэша, анкета попадает в статус
// pending до решения модератора.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	const op = "services.Register"

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.repo.GetUserByEmail(ctx, email); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, err)
	} else if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         models.RoleModel,
		Status:       models.StatusPending,
		Gender:       req.Gender,
		Whatsapp:     req.Whatsapp,
		Location:     req.Location,
	}

	uid, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new model", slog.String("user_uid", uid))
	return uid, nil
}

// Login проверяет учетные данные, выдает JWT-токен и открывает сессию.
func (s *AuthService) Login(ctx context.Context, req models.DummyLogin) (string, *models.User, error) {
	const op = "services.Login"

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.maker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	record := models.SessionRecord{
		User:        user,
		AgeVerified: true,
		Gender:      user.Gender,
	}
	if err := s.sessions.Save(user.UID, record); err != nil {
		s.log.Warn("failed to save session", sl.Err(err))
	}

	user.PasswordHash = ""
	s.log.Info("user logged in", slog.String("user_uid", user.UID))
	return token, user, nil
}

// ValidateToken разбирает и проверяет JWT-токен.
func (s *AuthService) ValidateToken(tokenStr string) (*jwtlib.CustomClaims, error) {
	return s.maker.ParseToken(tokenStr)
}

// Session возвращает сохранённую сессию пользователя.
// Если сессии в кеше нет, она восстанавливается из хранилища.
func (s *AuthService) Session(ctx context.Context, userUID string) (*models.SessionRecord, error) {
	const op = "services.Session"

	record, found, err := s.sessions.Load(userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if found {
		return record, nil
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = ""

	record = &models.SessionRecord{
		User:        user,
		AgeVerified: true,
		Gender:      user.Gender,
	}
	if err := s.sessions.Save(userUID, *record); err != nil {
		s.log.Warn("failed to restore session", sl.Err(err))
	}
	return record, nil
}

// Logout закрывает сессию пользователя.
func (s *AuthService) Logout(userUID string) error {
	return s.sessions.Drop(userUID)
}

// DeleteAccount удаляет аккаунт вместе с медиафайлами и сессией.
// Ошибки удаления отдельных файлов логируются, но не прерывают операцию.
func (s *AuthService) DeleteAccount(ctx context.Context, userUID string) error {
	const op = "services.DeleteAccount"

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var keys []string
	if user.ProfilePhoto != "" {
		keys = append(keys, user.ProfilePhoto)
	}
	keys = append(keys, user.Photos...)
	keys = append(keys, user.Videos...)
	if user.Document != "" {
		keys = append(keys, user.Document)
	}
	for _, key := range keys {
		if err := s.media.Delete(ctx, key); err != nil {
			s.log.Warn("failed to delete media object",
				slog.String("key", key), sl.Err(err))
		}
	}

	count, err := s.repo.DeleteUser(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: user not found", op)
	}

	if err := s.sessions.Drop(userUID); err != nil {
		s.log.Warn("failed to drop session", sl.Err(err))
	}

	s.log.Info("account deleted", slog.String("user_uid", userUID))
	return nil
}
