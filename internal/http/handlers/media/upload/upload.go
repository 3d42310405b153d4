// Package upload реализует HTTP-обработчик загрузки медиафайлов анкеты.
//
// Принимает multipart-запрос с полями photos, videos и document,
// проверяет состав пакета и передаёт файлы сервису загрузки.
package upload

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-platform/internal/http/response"
	"github.com/magabrotheeeer/profile-platform/internal/lib/sl"
	services "github.com/magabrotheeeer/profile-platform/internal/services/media"
)

// Лимит памяти на разбор multipart-формы, остальное уходит во временные файлы.
const maxFormMemory = 32 << 20

// Handler обрабатывает HTTP-запросы загрузки медиафайлов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики загрузки медиафайлов.
type Service interface {
	Upload(ctx context.Context, userUID string, batch services.UploadBatch) (*services.UploadResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Загрузить медиафайлы анкеты
// @Description Принимает фотографии, видео и документ одним пакетом. Требуется хотя бы одна фотография, не более шести.
// @Tags Media
// @Accept  multipart/form-data
// @Produce  json
// @Param photos formData file true "Фотографии анкеты (1-6)"
// @Param videos formData file false "Видео анкеты"
// @Param document formData file false "Документ для верификации"
// @Success 200 {object} services.UploadResult "Ключи и URL загруженных файлов"
// @Failure 400 {object} response.ErrorResponse "Некорректная multipart-форма"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Недопустимый состав пакета"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при загрузке"
// @Security BearerAuth
// @Router /media/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.upload"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	var batch services.UploadBatch
	for _, header := range r.MultipartForm.File["photos"] {
		f, err := header.Open()
		if err != nil {
			log.Error("failed to open photo", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid multipart form"))
			return
		}
		opened = append(opened, f)
		batch.Photos = append(batch.Photos, services.File{Filename: header.Filename, Reader: f})
	}
	for _, header := range r.MultipartForm.File["videos"] {
		f, err := header.Open()
		if err != nil {
			log.Error("failed to open video", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid multipart form"))
			return
		}
		opened = append(opened, f)
		batch.Videos = append(batch.Videos, services.File{Filename: header.Filename, Reader: f})
	}
	if headers := r.MultipartForm.File["document"]; len(headers) > 0 {
		f, err := headers[0].Open()
		if err != nil {
			log.Error("failed to open document", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid multipart form"))
			return
		}
		opened = append(opened, f)
		batch.Document = &services.File{Filename: headers[0].Filename, Reader: f}
	}

	result, err := h.service.Upload(r.Context(), userUID, batch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoPhotos):
			log.Error("batch without photos rejected")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("at least one photo is required"))
		case errors.Is(err, services.ErrTooManyPhotos):
			log.Error("too many photos in batch", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("too many photos"))
		default:
			log.Error("failed to upload media", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not upload media"))
		}
		return
	}

	log.Info("media uploaded", slog.String("user_uid", userUID),
		slog.Int("photos", len(result.Photos)), slog.Int("videos", len(result.Videos)))
	render.JSON(w, r, response.OKWithData(result))
}
