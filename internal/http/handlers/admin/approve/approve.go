// Package approve реализует HTTP-обработчик одобрения анкеты модели.
package approve

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

// Handler обрабатывает HTTP-запросы на одобрение анкеты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики модерации.
type Service interface {
	Approve(ctx context.Context, userUID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Одобрить анкету
// @Description Переводит анкету модели в статус approved, делая её видимой в ленте.
// @Tags Admin
// @Produce  json
// @Param uid path string true "UID анкеты"
// @Success 200 {object} response.Response "Анкета одобрена"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Анкета не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/models/{uid}/approve [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.approve"
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

	if err := h.service.Approve(r.Context(), uid); err != nil {
		log.Error("failed to approve model", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not approve model"))
		return
	}

	log.Info("model approved", slog.String("user_uid", uid))
	render.JSON(w, r, response.OK())
}
