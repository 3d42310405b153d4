// Package profileservice предоставляет маршруты для основного приложения.
package profileservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/admin/approve"
	adminlist "github.com/magabrotheeeer/profile-platform/internal/http/handlers/admin/list"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/admin/reject"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/auth/deleteaccount"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/auth/session"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/interaction/favorite"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/interaction/like"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/interaction/stats"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/interaction/unfavorite"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/interaction/unlike"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/interaction/view"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/media/upload"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/notification/send"
	"github.com/magabrotheeeer/profile-platform/internal/http/handlers/profile/feed"
	profileread "github.com/magabrotheeeer/profile-platform/internal/http/handlers/profile/read"
	profileupdate "github.com/magabrotheeeer/profile-platform/internal/http/handlers/profile/update"
	subcreate "github.com/magabrotheeeer/profile-platform/internal/http/handlers/subscription/create"
	subhistory "github.com/magabrotheeeer/profile-platform/internal/http/handlers/subscription/history"
	substatus "github.com/magabrotheeeer/profile-platform/internal/http/handlers/subscription/status"
	subupdate "github.com/magabrotheeeer/profile-platform/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/profile-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-platform/internal/models"
	authservice "github.com/magabrotheeeer/profile-platform/internal/services/auth"
	interactionservice "github.com/magabrotheeeer/profile-platform/internal/services/interaction"
	mediaservice "github.com/magabrotheeeer/profile-platform/internal/services/media"
	notificationservice "github.com/magabrotheeeer/profile-platform/internal/services/notification"
	profilesvc "github.com/magabrotheeeer/profile-platform/internal/services/profile"
	subscriptionservice "github.com/magabrotheeeer/profile-platform/internal/services/subscription"
)

// Services объединяет бизнес-сервисы, необходимые маршрутам.
type Services struct {
	Auth         *authservice.AuthService
	Profile      *profilesvc.ProfileService
	Interaction  *interactionservice.InteractionService
	Subscription *subscriptionservice.SubscriptionService
	Media        *mediaservice.MediaService
	Notification *notificationservice.NotificationService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Get("/profiles/feed", feed.New(logger, svc.Profile).ServeHTTP)
		r.Get("/profiles/{uid}", profileread.New(logger, svc.Profile).ServeHTTP)
		r.Post("/profiles/{uid}/view", view.New(logger, svc.Interaction).ServeHTTP)
		r.Get("/profiles/{uid}/stats", stats.New(logger, svc.Interaction).ServeHTTP)
		r.Post("/notifications", send.New(logger, svc.Notification).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/session", session.New(logger, svc.Auth).ServeHTTP)
			r.Post("/logout", logout.New(logger, svc.Auth).ServeHTTP)
			r.Delete("/users/{uid}", deleteaccount.New(logger, svc.Auth).ServeHTTP)

			r.Post("/profiles/{uid}/like", like.New(logger, svc.Interaction).ServeHTTP)
			r.Delete("/profiles/{uid}/like", unlike.New(logger, svc.Interaction).ServeHTTP)
			r.Post("/profiles/{uid}/favorite", favorite.New(logger, svc.Interaction).ServeHTTP)
			r.Delete("/profiles/{uid}/favorite", unfavorite.New(logger, svc.Interaction).ServeHTTP)

			r.Post("/subscriptions", subcreate.New(logger, svc.Subscription).ServeHTTP)
			r.Put("/subscriptions", subupdate.New(logger, svc.Subscription).ServeHTTP)
			r.Get("/subscriptions/status", substatus.New(logger, svc.Subscription).ServeHTTP)
			r.Get("/subscriptions/history", subhistory.New(logger, svc.Subscription).ServeHTTP)

			// Действия моделей доступны только при не истекшей подписке
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.SubscriptionStatusMiddleware(logger, svc.Subscription))
				r.Put("/profiles", profileupdate.New(logger, svc.Profile).ServeHTTP)
				r.Post("/media/upload", upload.New(logger, svc.Media).ServeHTTP)
			})

			// Панель администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoleMiddleware(logger, models.RoleAdmin))
				r.Get("/admin/models", adminlist.New(logger, svc.Profile).ServeHTTP)
				r.Post("/admin/models/{uid}/approve", approve.New(logger, svc.Profile).ServeHTTP)
				r.Post("/admin/models/{uid}/reject", reject.New(logger, svc.Profile).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
