package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

type ProfileRepositoryMock struct {
	mock.Mock
}

func (m *ProfileRepositoryMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *ProfileRepositoryMock) UpdateProfile(ctx context.Context, userUID string, u models.User) (int, error) {
	args := m.Called(ctx, userUID, u)
	return args.Int(0), args.Error(1)
}

func (m *ProfileRepositoryMock) UpdateStatus(ctx context.Context, userUID, status string) (int, error) {
	args := m.Called(ctx, userUID, status)
	return args.Int(0), args.Error(1)
}

func (m *ProfileRepositoryMock) ListApprovedModels(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	profiles, _ := args.Get(0).([]*models.User)
	return profiles, args.Error(1)
}

func (m *ProfileRepositoryMock) ListModels(ctx context.Context, status string, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, status, limit, offset)
	profiles, _ := args.Get(0).([]*models.User)
	return profiles, args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestFeed_HidesPasswordHash(t *testing.T) {
	repo := new(ProfileRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewProfileService(repo, cacheMock, newNoopLogger())

	repo.On("ListApprovedModels", mock.Anything, 20, 0).Return([]*models.User{
		{UID: "m1", Name: "Ana", PasswordHash: "bcrypt-hash"},
		{UID: "m2", Name: "Bia", PasswordHash: "bcrypt-hash"},
	}, nil).Once()

	profiles, err := svc.Feed(context.Background(), 20, 0)

	assert.NoError(t, err)
	assert.Len(t, profiles, 2)
	for _, p := range profiles {
		assert.Empty(t, p.PasswordHash)
	}
}

func TestRead_CacheMiss(t *testing.T) {
	repo := new(ProfileRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewProfileService(repo, cacheMock, newNoopLogger())

	cacheMock.On("Get", "profile:m1", mock.Anything).Return(false, nil).Once()
	repo.On("GetUser", mock.Anything, "m1").Return(&models.User{UID: "m1", Name: "Ana"}, nil).Once()
	cacheMock.On("Set", "profile:m1", mock.Anything, time.Hour).Return(nil).Once()

	profile, err := svc.Read(context.Background(), "m1")

	assert.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := new(ProfileRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewProfileService(repo, cacheMock, newNoopLogger())

	newBio := "Nova bio"
	repo.On("GetUser", mock.Anything, "m1").Return(&models.User{
		UID:      "m1",
		Name:     "Ana",
		Bio:      "Старое описание",
		Location: "São Paulo",
	}, nil).Once()
	repo.On("UpdateProfile", mock.Anything, "m1", mock.MatchedBy(func(u models.User) bool {
		// Переданное поле меняется, остальные сохраняют текущее значение.
		return u.Bio == newBio && u.Name == "Ana" && u.Location == "São Paulo"
	})).Return(1, nil).Once()
	cacheMock.On("Invalidate", "profile:m1").Return(nil).Once()

	err := svc.Update(context.Background(), "m1", models.DummyProfileUpdate{Bio: &newBio})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestApprove(t *testing.T) {
	repo := new(ProfileRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewProfileService(repo, cacheMock, newNoopLogger())

	repo.On("UpdateStatus", mock.Anything, "m1", models.StatusApproved).Return(1, nil).Once()
	cacheMock.On("Invalidate", "profile:m1").Return(nil).Once()

	err := svc.Approve(context.Background(), "m1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReject_NotFound(t *testing.T) {
	repo := new(ProfileRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewProfileService(repo, cacheMock, newNoopLogger())

	repo.On("UpdateStatus", mock.Anything, "ghost", models.StatusRejected).Return(0, nil).Once()

	err := svc.Reject(context.Background(), "ghost")

	assert.Error(t, err)
	cacheMock.AssertNotCalled(t, "Invalidate", mock.Anything)
}
