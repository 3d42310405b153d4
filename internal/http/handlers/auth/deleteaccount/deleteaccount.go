// Package deleteaccount реализует HTTP-обработчик удаления аккаунта.
//
// Удалить аккаунт может его владелец или администратор. Вместе с аккаунтом
// удаляются медиафайлы анкеты и сессия.
package deleteaccount

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

// Handler обрабатывает HTTP-запросы на удаление аккаунта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления аккаунта.
type Service interface {
	DeleteAccount(ctx context.Context, userUID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить аккаунт
// @Description Удаляет аккаунт вместе с медиафайлами и сессией. Доступно владельцу и администратору.
// @Tags Auth
// @Produce  json
// @Param uid path string true "UID пользователя"
// @Success 200 {object} response.Response "Аккаунт удален"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав на удаление"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /users/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.deleteaccount"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	callerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || callerUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	targetUID := chi.URLParam(r, "uid")
	if targetUID == "" {
		targetUID = callerUID
	}
	if targetUID != callerUID && role != models.RoleAdmin {
		log.Error("attempt to delete foreign account",
			slog.String("caller", callerUID), slog.String("target", targetUID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}

	if err := h.service.DeleteAccount(r.Context(), targetUID); err != nil {
		log.Error("failed to delete account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete account"))
		return
	}

	log.Info("account deleted", slog.String("user_uid", targetUID))
	render.JSON(w, r, response.OK())
}
