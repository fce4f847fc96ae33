// Package ambuhub собирает приложение: хранилище, кеш, сессии, сервисы и HTTP-сервер.
package ambuhub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/ambuhub/internal/cache"
	"github.com/magabrotheeeer/ambuhub/internal/config"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/health"
	"github.com/magabrotheeeer/ambuhub/internal/images"
	"github.com/magabrotheeeer/ambuhub/internal/lib/password"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
	"github.com/magabrotheeeer/ambuhub/internal/migrations"
	authservice "github.com/magabrotheeeer/ambuhub/internal/services/auth"
	productservice "github.com/magabrotheeeer/ambuhub/internal/services/product"
	"github.com/magabrotheeeer/ambuhub/internal/session"
	"github.com/magabrotheeeer/ambuhub/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер вместе с ресурсами, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New подключается к PostgreSQL и Redis, применяет миграции и собирает маршруты.
// Любая ошибка инициализации возвращается вызывающему, работа в урезанном режиме не предусмотрена.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.ambuhub.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	imageStore, uploadsDir, err := newImageStore(ctx, cfg.Images)
	if err != nil {
		_ = db.Close()
		_ = cacheRedis.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hasher := password.NewHasher(cfg.Hashing.Cost)
	authService, err := authservice.NewAuthService(db, hasher)
	if err != nil {
		_ = db.Close()
		_ = cacheRedis.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	productService := productservice.NewProductService(db, cacheRedis, imageStore, logger)
	sessions := session.NewManager(cacheRedis, cfg.Session)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Routes{
		Config:   cfg,
		Auth:     authService,
		Products: productService,
		Sessions: sessions,
		Checks: map[string]health.Pinger{
			"postgres": db,
			"redis":    cacheRedis,
		},
		UploadsDir: uploadsDir,
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

// newImageStore выбирает хранилище изображений по конфигу.
// Для локального хранилища также возвращается каталог для раздачи файлов.
func newImageStore(ctx context.Context, cfg config.Images) (productservice.ImageStore, string, error) {
	switch cfg.Backend {
	case config.ImagesS3:
		store, err := images.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		store, err := images.NewLocalStore(cfg.Dir, cfg.URLPrefix)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}

// Run запускает HTTP-сервер и блокируется до отмены ctx или ошибки сервера.
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
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
}
