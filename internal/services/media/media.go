// Package services содержит бизнес-логику загрузки медиафайлов анкеты:
// проверку состава пакета, параллельную выгрузку в объектное хранилище
// и привязку ключей к анкете модели.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/profile-platform/internal/storage/s3"
)

// MaxPhotos ограничивает количество фотографий в одном пакете загрузки.
const MaxPhotos = 6

// ErrNoPhotos возвращается, если в пакете нет ни одной фотографии.
var ErrNoPhotos = errors.New("at least one photo is required")

// ErrTooManyPhotos возвращается при превышении лимита фотографий.
var ErrTooManyPhotos = errors.New("too many photos")

// MediaRepository определяет методы привязки медиафайлов к анкете.
type MediaRepository interface {
	// UpdateMedia сохраняет ключи медиафайлов анкеты.
	UpdateMedia(ctx context.Context, userUID, profilePhoto string, photos, videos []string, document string) error
}

// File представляет один файл из multipart-запроса.
type File struct {
	Filename string
	Reader   io.Reader
}

// UploadBatch описывает пакет файлов для загрузки.
type UploadBatch struct {
	Photos   []File
	Videos   []File
	Document *File
}

// UploadResult содержит ключи и публичные URL загруженных файлов.
type UploadResult struct {
	ProfilePhoto string   `json:"profile_photo"`
	Photos       []string `json:"photos"`
	Videos       []string `json:"videos"`
	Document     string   `json:"document,omitempty"`
}

// MediaService реализует бизнес-логику загрузки медиафайлов.
type MediaService struct {
	repo    MediaRepository
	storage s3.Storage
	log     *slog.Logger
}

// NewMediaService создает новый экземпляр MediaService.
func NewMediaService(repo MediaRepository, storage s3.Storage, log *slog.Logger) *MediaService {
	return &MediaService{
		repo:    repo,
		storage: storage,
		log:     log,
	}
}

// objectKey строит ключ вида {type}s/{userUID}/{timestamp}-{rand}.{ext}.
func objectKey(kind, userUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	rand := uuid.NewString()[:8]
	return fmt.Sprintf("%ss/%s/%d-%s%s", kind, userUID, time.Now().UnixMilli(), rand, ext)
}

// Upload проверяет состав пакета и параллельно выгружает файлы в хранилище.
// Состав проверяется до первого обращения к хранилищу; при ошибке любой
// выгрузки операция прерывается, уже загруженные файлы не откатываются.
// Первая фотография пакета становится фотографией профиля.
func (s *MediaService) Upload(ctx context.Context, userUID string, batch UploadBatch) (*UploadResult, error) {
	const op = "services.Upload"

	if len(batch.Photos) == 0 {
		return nil, ErrNoPhotos
	}
	if len(batch.Photos) > MaxPhotos {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrTooManyPhotos, len(batch.Photos), MaxPhotos)
	}

	photoKeys := make([]string, len(batch.Photos))
	videoKeys := make([]string, len(batch.Videos))
	var documentKey string

	g, gctx := errgroup.WithContext(ctx)
	for i, photo := range batch.Photos {
		key := objectKey("photo", userUID, photo.Filename)
		photoKeys[i] = key
		reader := photo.Reader
		g.Go(func() error {
			return s.storage.Save(gctx, key, reader)
		})
	}
	for i, video := range batch.Videos {
		key := objectKey("video", userUID, video.Filename)
		videoKeys[i] = key
		reader := video.Reader
		g.Go(func() error {
			return s.storage.Save(gctx, key, reader)
		})
	}
	if batch.Document != nil {
		documentKey = objectKey("document", userUID, batch.Document.Filename)
		reader := batch.Document.Reader
		g.Go(func() error {
			return s.storage.Save(gctx, documentKey, reader)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profilePhoto := photoKeys[0]
	if err := s.repo.UpdateMedia(ctx, userUID, profilePhoto, photoKeys, videoKeys, documentKey); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &UploadResult{
		ProfilePhoto: s.storage.PublicURL(profilePhoto),
		Photos:       make([]string, len(photoKeys)),
		Videos:       make([]string, len(videoKeys)),
	}
	for i, key := range photoKeys {
		result.Photos[i] = s.storage.PublicURL(key)
	}
	for i, key := range videoKeys {
		result.Videos[i] = s.storage.PublicURL(key)
	}
	if documentKey != "" {
		result.Document = s.storage.PublicURL(documentKey)
	}

	s.log.Info("media batch uploaded",
		slog.String("user_uid", userUID),
		slog.Int("photos", len(photoKeys)),
		slog.Int("videos", len(videoKeys)))
	return result, nil
}
