// Package unlike реализует HTTP-обработчик снятия отметки "нравится".
package unlike

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
)

// Handler обрабатывает HTTP-запросы на снятие отметки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отметок.
type Service interface {
	Unlike(ctx context.Context, likerUID, profileUID string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Снять отметку с анкеты
// @Description Удаляет отметку "нравится" текущего пользователя с анкеты.
// @Tags Interactions
// @Produce  json
// @Param uid path string true "UID анкеты"
// @Success 200 {object} map[string]any "Результат снятия отметки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /profiles/{uid}/like [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.interaction.unlike"
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

	profileUID := chi.URLParam(r, "uid")
	if profileUID == "" {
		log.Error("missing profile uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing profile uid"))
		return
	}

	removed, err := h.service.Unlike(r.Context(), userUID, profileUID)
	if err != nil {
		log.Error("failed to unlike profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not unlike profile"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"removed": removed,
	}))
}
