package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	jwtlib "github.com/magabrotheeeer/profile-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/profile-platform/internal/lib/password"
	"github.com/magabrotheeeer/profile-platform/internal/models"
)

type AuthRepositoryMock struct {
	mock.Mock
}

func (m *AuthRepositoryMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *AuthRepositoryMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *AuthRepositoryMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *AuthRepositoryMock) DeleteUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

type SessionStoreMock struct {
	mock.Mock
}

func (m *SessionStoreMock) Save(userUID string, record models.SessionRecord) error {
	args := m.Called(userUID, record)
	return args.Error(0)
}

func (m *SessionStoreMock) Load(userUID string) (*models.SessionRecord, bool, error) {
	args := m.Called(userUID)
	record, _ := args.Get(0).(*models.SessionRecord)
	return record, args.Bool(1), args.Error(2)
}

func (m *SessionStoreMock) Drop(userUID string) error {
	args := m.Called(userUID)
	return args.Error(0)
}

type MediaStorageMock struct {
	mock.Mock
}

func (m *MediaStorageMock) Save(ctx context.Context, key string, file io.Reader) error {
	args := m.Called(ctx, key, file)
	return args.Error(0)
}

func (m *MediaStorageMock) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MediaStorageMock) PublicURL(key string) string {
	return "https://media.example.com/" + key
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(repo *AuthRepositoryMock, sessions *SessionStoreMock, media *MediaStorageMock) *AuthService {
	maker := jwtlib.NewJWTMaker("test-secret", time.Hour)
	return NewAuthService(repo, sessions, media, maker, newNoopLogger())
}

func TestRegister(t *testing.T) {
	repo := new(AuthRepositoryMock)
	sessions := new(SessionStoreMock)
	media := new(MediaStorageMock)
	svc := newTestService(repo, sessions, media)

	repo.On("GetUserByEmail", mock.Anything, "ana@example.com").
		Return(nil, sql.ErrNoRows).Once()
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "ana@example.com" &&
			u.Role == models.RoleModel &&
			u.Status == models.StatusPending &&
			u.PasswordHash != "" && u.PasswordHash != "secret123"
	})).Return("uid-1", nil).Once()

	uid, err := svc.Register(context.Background(), models.DummyRegister{
		Email:    "ANA@Example.com",
		Password: "secret123",
		Name:     "Ana",
		Gender:   "female",
		Whatsapp: "11999887766",
		Location: "São Paulo",
	})

	assert.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	repo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(AuthRepositoryMock)
	svc := newTestService(repo, new(SessionStoreMock), new(MediaStorageMock))

	repo.On("GetUserByEmail", mock.Anything, "ana@example.com").
		Return(&models.User{UID: "uid-1"}, nil).Once()

	_, err := svc.Register(context.Background(), models.DummyRegister{
		Email:    "ana@example.com",
		Password: "secret123",
		Name:     "Ana",
		Gender:   "female",
		Whatsapp: "11999887766",
		Location: "São Paulo",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	repo := new(AuthRepositoryMock)
	sessions := new(SessionStoreMock)
	svc := newTestService(repo, sessions, new(MediaStorageMock))

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(&models.User{
		UID:          "uid-1",
		Email:        "ana@example.com",
		PasswordHash: hash,
		Role:         models.RoleModel,
		Gender:       "female",
	}, nil).Once()
	sessions.On("Save", "uid-1", mock.Anything).Return(nil).Once()

	token, user, err := svc.Login(context.Background(), models.DummyLogin{
		Email:    "ana@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "uid-1", user.UID)
	// Хэш пароля не уходит наружу.
	assert.Empty(t, user.PasswordHash)
	sessions.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(AuthRepositoryMock)
	svc := newTestService(repo, new(SessionStoreMock), new(MediaStorageMock))

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(&models.User{
		UID:          "uid-1",
		PasswordHash: hash,
	}, nil).Once()

	_, _, err = svc.Login(context.Background(), models.DummyLogin{
		Email:    "ana@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(AuthRepositoryMock)
	svc := newTestService(repo, new(SessionStoreMock), new(MediaStorageMock))

	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, sql.ErrNoRows).Once()

	_, _, err := svc.Login(context.Background(), models.DummyLogin{
		Email:    "ghost@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := newTestService(new(AuthRepositoryMock), new(SessionStoreMock), new(MediaStorageMock))

	maker := jwtlib.NewJWTMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("ana@example.com", models.RoleModel, "uid-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)

	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, models.RoleModel, claims.Role)
	assert.Equal(t, "uid-1", claims.UserUID)
}

func TestDeleteAccount_RemovesMediaAndSession(t *testing.T) {
	repo := new(AuthRepositoryMock)
	sessions := new(SessionStoreMock)
	media := new(MediaStorageMock)
	svc := newTestService(repo, sessions, media)

	repo.On("GetUser", mock.Anything, "uid-1").Return(&models.User{
		UID:          "uid-1",
		ProfilePhoto: "photos/uid-1/a.jpg",
		Photos:       []string{"photos/uid-1/a.jpg", "photos/uid-1/b.jpg"},
		Videos:       []string{"videos/uid-1/c.mp4"},
		Document:     "documents/uid-1/doc.pdf",
	}, nil).Once()
	media.On("Delete", mock.Anything, mock.Anything).Return(nil).Times(5)
	repo.On("DeleteUser", mock.Anything, "uid-1").Return(1, nil).Once()
	sessions.On("Drop", "uid-1").Return(nil).Once()

	err := svc.DeleteAccount(context.Background(), "uid-1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	media.AssertExpectations(t)
	sessions.AssertExpectations(t)
}
