// Package stats реализует HTTP-обработчик счётчиков анкеты.
//
// Возвращает количество отметок, избранного и просмотров. Для авторизованного
// пользователя дополнительно сообщает, отмечал ли он анкету сам.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-platform/internal/http/response"
	"github.com/magabrotheeeer/profile-platform/internal/lib/sl"
	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// Handler обрабатывает HTTP-запросы счётчиков анкеты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики счётчиков.
type Service interface {
	Stats(ctx context.Context, profileUID string) (*models.InteractionStats, error)
	Checked(ctx context.Context, userUID, profileUID string) (liked, favorited bool, err error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Счётчики анкеты
// @Description Возвращает количество отметок, избранного и просмотров анкеты.
// @Tags Interactions
// @Produce  json
// @Param uid path string true "UID анкеты"
// @Success 200 {object} map[string]any "Счётчики анкеты"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /profiles/{uid}/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.interaction.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profileUID := chi.URLParam(r, "uid")
	if profileUID == "" {
		log.Error("missing profile uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing profile uid"))
		return
	}

	counters, err := h.service.Stats(r.Context(), profileUID)
	if err != nil {
		log.Error("failed to count interactions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count interactions"))
		return
	}

	data := map[string]any{
		"stats": counters,
	}

	if userUID, ok := r.Context().Value(middlewarectx.UserUID).(string); ok && userUID != "" {
		liked, favorited, err := h.service.Checked(r.Context(), userUID, profileUID)
		if err != nil {
			log.Error("failed to check user interactions", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not count interactions"))
			return
		}
		data["liked"] = liked
		data["favorited"] = favorited
	}

	render.JSON(w, r, response.OKWithData(data))
}
