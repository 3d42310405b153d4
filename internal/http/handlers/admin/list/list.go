// Package list реализует HTTP-обработчик списка анкет для панели администратора.
//
// Поддерживает фильтр по статусу модерации через query-параметр status.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-platform/internal/http/response"
	"github.com/magabrotheeeer/profile-platform/internal/lib/sl"
	"github.com/magabrotheeeer/profile-platform/internal/models"
)

const defaultLimit = 50

// Handler обрабатывает HTTP-запросы списка анкет для модерации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики панели администратора.
type Service interface {
	ListModels(ctx context.Context, status string, limit, offset int) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список анкет для модерации
// @Description Возвращает анкеты моделей во всех статусах с фильтром по статусу.
// @Tags Admin
// @Produce  json
// @Param status query string false "Фильтр по статусу (pending, approved, rejected)"
// @Param limit query int false "Максимум анкет в ответе"
// @Param offset query int false "Смещение выборки"
// @Success 200 {object} map[string]any "Список анкет"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/models [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := r.URL.Query().Get("status")
	switch status {
	case "", models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		log.Error("unknown status filter", slog.String("status", status))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown status filter"))
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	profiles, err := h.service.ListModels(r.Context(), status, limit, offset)
	if err != nil {
		log.Error("failed to list models", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list models"))
		return
	}

	log.Info("models listed", slog.Int("count", len(profiles)), slog.String("status", status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"models": profiles,
		"count":  len(profiles),
	}))
}
