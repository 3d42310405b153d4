// Package favorite реализует HTTP-обработчик добавления анкеты в избранное.
package favorite

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

// Handler обрабатывает HTTP-запросы на добавление в избранное.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики избранного.
type Service interface {
	Favorite(ctx context.Context, userUID, profileUID string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Добавить анкету в избранное
// @Description Добавляет анкету в избранное. Повтор не создаёт дубликата.
// @Tags Interactions
// @Produce  json
// @Param uid path string true "UID анкеты"
// @Success 200 {object} map[string]any "Результат добавления"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /profiles/{uid}/favorite [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.interaction.favorite"
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

	added, err := h.service.Favorite(r.Context(), userUID, profileUID)
	if err != nil {
		log.Error("failed to favorite profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not favorite profile"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"added": added,
	}))
}
