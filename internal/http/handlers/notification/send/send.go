// Package send реализует HTTP-обработчик отправки уведомления модели.
//
// Handler принимает JSON-запрос с типом события и данными модели,
// валидирует их и делегирует доставку сервису уведомлений.
// Для события whatsapp в ответ попадает ссылка wa.me.
package send

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profile-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-platform/internal/http/response"
	"github.com/magabrotheeeer/profile-platform/internal/lib/phone"
	"github.com/magabrotheeeer/profile-platform/internal/lib/sl"
	"github.com/magabrotheeeer/profile-platform/internal/models"
	services "github.com/magabrotheeeer/profile-platform/internal/services/notification"
)

// Handler обрабатывает HTTP-запросы отправки уведомлений.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики уведомлений.
type Service interface {
	Send(ctx context.Context, req models.DummyNotification) (*services.Result, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправить уведомление модели
// @Description Доставляет событие (like, view, favorite, whatsapp) на webhook модели. Для whatsapp возвращает ссылку wa.me.
// @Tags Notifications
// @Accept  json
// @Produce  json
// @Param request body models.DummyNotification true "Данные уведомления"
// @Success 200 {object} map[string]any "Уведомление доставлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или некорректный телефон"
// @Failure 500 {object} response.ErrorResponse "Ошибка доставки уведомления"
// @Router /notifications [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.send"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyNotification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("type", req.Type))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if req.UserName == "" {
		if email, ok := r.Context().Value(middlewarectx.User).(string); ok {
			req.UserName = email
		}
	}

	result, err := h.service.Send(r.Context(), req)
	if err != nil {
		if errors.Is(err, phone.ErrInvalidPhone) {
			log.Error("invalid model phone", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid model phone"))
			return
		}
		log.Error("failed to deliver notification", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not deliver notification"))
		return
	}

	data := map[string]any{"delivered": result != nil}
	if result != nil && result.WhatsappLink != "" {
		data["whatsapp_link"] = result.WhatsappLink
	}
	render.JSON(w, r, response.OKWithData(data))
}
