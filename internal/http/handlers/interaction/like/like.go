// Package like реализует HTTP-обработчик отметки "нравится".
//
// Повторная отметка той же анкеты — идемпотентный no-op: обработчик
// возвращает успех с флагом added=false.
package like

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

// Handler обрабатывает HTTP-запросы на отметку "нравится".
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отметок.
type Service interface {
	Like(ctx context.Context, likerUID, profileUID string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отметить анкету
// @Description Ставит отметку "нравится". Повторная отметка не создаёт дубликата.
// @Tags Interactions
// @Produce  json
// @Param uid path string true "UID анкеты"
// @Success 200 {object} map[string]any "Результат отметки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /profiles/{uid}/like [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.interaction.like"
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

	added, err := h.service.Like(r.Context(), userUID, profileUID)
	if err != nil {
		log.Error("failed to like profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not like profile"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"added": added,
	}))
}
