package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

type MediaRepositoryMock struct {
	mock.Mock
}

func (m *MediaRepositoryMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MediaRepositoryMock) UpdateMedia(ctx context.Context, userUID, profilePhoto string, photos, videos []string, document string) error {
	args := m.Called(ctx, userUID, profilePhoto, photos, videos, document)
	return args.Error(0)
}

type StorageMock struct {
	mock.Mock
}

func (m *StorageMock) Save(ctx context.Context, key string, file io.Reader) error {
	args := m.Called(ctx, key, file)
	return args.Error(0)
}

func (m *StorageMock) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *StorageMock) PublicURL(key string) string {
	return "https://media.example.com/" + key
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func photoFile(name string) File {
	return File{Filename: name, Reader: strings.NewReader("fake image bytes")}
}

func TestUpload_NoPhotosRejectedBeforeStorage(t *testing.T) {
	repo := new(MediaRepositoryMock)
	storage := new(StorageMock)
	svc := NewMediaService(repo, storage, newNoopLogger())

	_, err := svc.Upload(context.Background(), "user-1", UploadBatch{
		Videos: []File{photoFile("clip.mp4")},
	})

	// Проверка состава идёт до первого обращения к хранилищу.
	assert.ErrorIs(t, err, ErrNoPhotos)
	storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateMedia", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_TooManyPhotos(t *testing.T) {
	repo := new(MediaRepositoryMock)
	storage := new(StorageMock)
	svc := NewMediaService(repo, storage, newNoopLogger())

	var batch UploadBatch
	for range MaxPhotos + 1 {
		batch.Photos = append(batch.Photos, photoFile("a.jpg"))
	}

	_, err := svc.Upload(context.Background(), "user-1", batch)

	assert.ErrorIs(t, err, ErrTooManyPhotos)
	storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_Success(t *testing.T) {
	repo := new(MediaRepositoryMock)
	storage := new(StorageMock)
	svc := NewMediaService(repo, storage, newNoopLogger())

	storage.On("Save", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "photos/user-1/") && strings.HasSuffix(key, ".jpg")
	}), mock.Anything).Return(nil).Times(2)
	storage.On("Save", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "videos/user-1/") && strings.HasSuffix(key, ".mp4")
	}), mock.Anything).Return(nil).Once()
	repo.On("UpdateMedia", mock.Anything, "user-1", mock.Anything, mock.Anything, mock.Anything, "").
		Return(nil).Once()

	result, err := svc.Upload(context.Background(), "user-1", UploadBatch{
		Photos: []File{photoFile("a.jpg"), photoFile("b.jpg")},
		Videos: []File{photoFile("clip.mp4")},
	})

	assert.NoError(t, err)
	assert.Len(t, result.Photos, 2)
	assert.Len(t, result.Videos, 1)
	// Первая фотография пакета становится фотографией профиля.
	assert.Equal(t, result.Photos[0], result.ProfilePhoto)
	storage.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestUpload_StorageFailureAborts(t *testing.T) {
	repo := new(MediaRepositoryMock)
	storage := new(StorageMock)
	svc := NewMediaService(repo, storage, newNoopLogger())

	storage.On("Save", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("bucket unavailable"))

	_, err := svc.Upload(context.Background(), "user-1", UploadBatch{
		Photos: []File{photoFile("a.jpg")},
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateMedia", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
