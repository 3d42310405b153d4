// Package reject реализует HTTP-обработчик отклонения анкеты модели.
package reject

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-platform/internal/http/response"
	"github.com/magabrotheeeer/profile-platform/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на отклонение анкеты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики модерации.
type Service interface {
	Reject(ctx context.Context, userUID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отклонить анкету
// @Description Переводит анкету модели в статус rejected.
// @Tags Admin
// @Produce  json
// @Param uid path string true "UID анкеты"
// @Success 200 {object} response.Response "Анкета отклонена"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Анкета не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/models/{uid}/reject [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.reject"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if uid == "" {
		log.Error("missing model uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing model uid"))
		return
	}

	if err := h.service.Reject(r.Context(), uid); err != nil {
		log.Error("failed to reject model", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reject model"))
		return
	}

	log.Info("model rejected", slog.String("user_uid", uid))
	render.JSON(w, r, response.OK())
}
