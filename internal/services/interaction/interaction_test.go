package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

type InteractionRepositoryMock struct {
	mock.Mock
}

func (m *InteractionRepositoryMock) AddLike(ctx context.Context, likerUID, profileUID string) (bool, error) {
	args := m.Called(ctx, likerUID, profileUID)
	return args.Bool(0), args.Error(1)
}

func (m *InteractionRepositoryMock) RemoveLike(ctx context.Context, likerUID, profileUID string) (int, error) {
	args := m.Called(ctx, likerUID, profileUID)
	return args.Int(0), args.Error(1)
}

func (m *InteractionRepositoryMock) AddFavorite(ctx context.Context, userUID, profileUID string) (bool, error) {
	args := m.Called(ctx, userUID, profileUID)
	return args.Bool(0), args.Error(1)
}

func (m *InteractionRepositoryMock) RemoveFavorite(ctx context.Context, userUID, profileUID string) (int, error) {
	args := m.Called(ctx, userUID, profileUID)
	return args.Int(0), args.Error(1)
}

func (m *InteractionRepositoryMock) AddView(ctx context.Context, profileUID, viewerUID string) error {
	args := m.Called(ctx, profileUID, viewerUID)
	return args.Error(0)
}

func (m *InteractionRepositoryMock) HasLike(ctx context.Context, likerUID, profileUID string) (bool, error) {
	args := m.Called(ctx, likerUID, profileUID)
	return args.Bool(0), args.Error(1)
}

func (m *InteractionRepositoryMock) HasFavorite(ctx context.Context, userUID, profileUID string) (bool, error) {
	args := m.Called(ctx, userUID, profileUID)
	return args.Bool(0), args.Error(1)
}

func (m *InteractionRepositoryMock) CountInteractions(ctx context.Context, profileUID string) (*models.InteractionStats, error) {
	args := m.Called(ctx, profileUID)
	stats, _ := args.Get(0).(*models.InteractionStats)
	return stats, args.Error(1)
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

func TestLike_FirstTime(t *testing.T) {
	repo := new(InteractionRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewInteractionService(repo, cacheMock, newNoopLogger())

	repo.On("AddLike", mock.Anything, "user-1", "model-1").Return(true, nil).Once()
	cacheMock.On("Invalidate", "interactions:model-1").Return(nil).Once()

	added, err := svc.Like(context.Background(), "user-1", "model-1")

	assert.NoError(t, err)
	assert.True(t, added)
	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestLike_RepeatedIsNoop(t *testing.T) {
	repo := new(InteractionRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewInteractionService(repo, cacheMock, newNoopLogger())

	repo.On("AddLike", mock.Anything, "user-1", "model-1").Return(false, nil).Once()

	added, err := svc.Like(context.Background(), "user-1", "model-1")

	// Повторная отметка не ошибка и не сбрасывает кеш.
	assert.NoError(t, err)
	assert.False(t, added)
	cacheMock.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestUnlike_NotLiked(t *testing.T) {
	repo := new(InteractionRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewInteractionService(repo, cacheMock, newNoopLogger())

	repo.On("RemoveLike", mock.Anything, "user-1", "model-1").Return(0, nil).Once()

	removed, err := svc.Unlike(context.Background(), "user-1", "model-1")

	assert.NoError(t, err)
	assert.False(t, removed)
}

func TestView_Anonymous(t *testing.T) {
	repo := new(InteractionRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewInteractionService(repo, cacheMock, newNoopLogger())

	repo.On("AddView", mock.Anything, "model-1", "").Return(nil).Once()
	cacheMock.On("Invalidate", "interactions:model-1").Return(nil).Once()

	err := svc.View(context.Background(), "model-1", "")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestStats_CacheMiss(t *testing.T) {
	repo := new(InteractionRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewInteractionService(repo, cacheMock, newNoopLogger())

	expected := &models.InteractionStats{Likes: 3, Favorites: 1, Views: 10}
	cacheMock.On("Get", "interactions:model-1", mock.Anything).Return(false, nil).Once()
	repo.On("CountInteractions", mock.Anything, "model-1").Return(expected, nil).Once()
	cacheMock.On("Set", "interactions:model-1", expected, time.Minute).Return(nil).Once()

	stats, err := svc.Stats(context.Background(), "model-1")

	assert.NoError(t, err)
	assert.Equal(t, expected, stats)
	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestStats_RepositoryError(t *testing.T) {
	repo := new(InteractionRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewInteractionService(repo, cacheMock, newNoopLogger())

	cacheMock.On("Get", "interactions:model-1", mock.Anything).Return(false, nil).Once()
	repo.On("CountInteractions", mock.Anything, "model-1").
		Return(nil, errors.New("db down")).Once()

	stats, err := svc.Stats(context.Background(), "model-1")

	assert.Error(t, err)
	assert.Nil(t, stats)
	cacheMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestChecked(t *testing.T) {
	repo := new(InteractionRepositoryMock)
	cacheMock := new(CacheMock)
	svc := NewInteractionService(repo, cacheMock, newNoopLogger())

	repo.On("HasLike", mock.Anything, "user-1", "model-1").Return(true, nil).Once()
	repo.On("HasFavorite", mock.Anything, "user-1", "model-1").Return(false, nil).Once()

	liked, favorited, err := svc.Checked(context.Background(), "user-1", "model-1")

	assert.NoError(t, err)
	assert.True(t, liked)
	assert.False(t, favorited)
}
