// Package profileservice собирает основной HTTP-сервис платформы:
// хранилище, кеш, объектное хранилище медиафайлов, webhook-клиент
// и все бизнес-сервисы с маршрутами.
package profileservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/profile-platform/internal/cache"
	"github.com/magabrotheeeer/profile-platform/internal/config"
	jwtlib "github.com/magabrotheeeer/profile-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/profile-platform/internal/migrations"
	authservice "github.com/magabrotheeeer/profile-platform/internal/services/auth"
	interactionservice "github.com/magabrotheeeer/profile-platform/internal/services/interaction"
	mediaservice "github.com/magabrotheeeer/profile-platform/internal/services/media"
	notificationservice "github.com/magabrotheeeer/profile-platform/internal/services/notification"
	profilesvc "github.com/magabrotheeeer/profile-platform/internal/services/profile"
	subscriptionservice "github.com/magabrotheeeer/profile-platform/internal/services/subscription"
	"github.com/magabrotheeeer/profile-platform/internal/storage/repository"
	"github.com/magabrotheeeer/profile-platform/internal/storage/s3"
	"github.com/magabrotheeeer/profile-platform/internal/webhook"
)

// App представляет основной HTTP-сервис платформы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение, инициализируя все зависимости.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	sessions := cache.NewSessionStore(cacheRedis, cfg.TokenTTL)

	mediaStorage, err := s3.New(ctx, cfg.S3Storage)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	webhookClient := webhook.NewClient(cfg.WebhookURL, cfg.WebhookAuthToken)

	authService := authservice.NewAuthService(db, sessions, mediaStorage, jwtMaker, logger)
	profileService := profilesvc.NewProfileService(db, cacheRedis, logger)
	interactionService := interactionservice.NewInteractionService(db, cacheRedis, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, cfg.PaymentURL, logger)
	mediaService := mediaservice.NewMediaService(db, mediaStorage, logger)
	notificationService := notificationservice.NewNotificationService(
		webhookClient, cfg.DefaultCountryCode, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		Profile:      profileService,
		Interaction:  interactionService,
		Subscription: subscriptionService,
		Media:        mediaService,
		Notification: notificationService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
