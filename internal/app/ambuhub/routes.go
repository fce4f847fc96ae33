package ambuhub

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/ambuhub/internal/config"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/health"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/pages"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/product/create"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/product/edit"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/product/list"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/product/remove"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/product/vendorlist"
	"github.com/magabrotheeeer/ambuhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ambuhub/internal/models"
	authservice "github.com/magabrotheeeer/ambuhub/internal/services/auth"
	productservice "github.com/magabrotheeeer/ambuhub/internal/services/product"
	"github.com/magabrotheeeer/ambuhub/internal/session"
)

// Routes зависимости, из которых собираются маршруты.
type Routes struct {
	Config   *config.Config
	Auth     *authservice.AuthService
	Products *productservice.ProductService
	Sessions *session.Manager
	Checks   map[string]health.Pinger
	// UploadsDir каталог локально сохранённых изображений, пустой для S3
	UploadsDir string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Routes) {
	cfg := deps.Config

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics,
	)

	// Статические страницы
	r.Get("/", pages.New(logger, cfg.StaticDir, "index.html").ServeHTTP)
	r.Get("/login", pages.New(logger, cfg.StaticDir, "login.html").ServeHTTP)
	r.Get("/signup", pages.New(logger, cfg.StaticDir, "signup.html").ServeHTTP)

	// Вход и регистрация с общим ограничением частоты
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimit(limiter, logger))
		r.Post("/signup", signup.New(logger, deps.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, deps.Auth, deps.Sessions).ServeHTTP)
	})
	r.Get("/logout", logout.New(logger, deps.Sessions).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAuthenticated(deps.Sessions, logger))

		r.With(middlewarectx.RequireRole(models.RoleStandard, logger)).
			Get("/usuario_padrao", list.New(logger, deps.Products).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRole(models.RoleVendor, logger))
			r.Get("/usuario_ambulante", vendorlist.New(logger, deps.Products).ServeHTTP)
			r.Post("/create-product", create.New(logger, deps.Products, cfg.Images.MaxUploadBytes).ServeHTTP)
			r.Post("/edit-product/{id}", edit.New(logger, deps.Products, cfg.Images.MaxUploadBytes).ServeHTTP)
			r.Post("/delete-product/{id}", remove.New(logger, deps.Products).ServeHTTP)
		})
	})

	if deps.UploadsDir != "" {
		prefix := "/" + strings.Trim(cfg.Images.URLPrefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(fileOnlyFS{http.Dir(deps.UploadsDir)})))
	}

	r.Get("/health", health.New(logger, deps.Checks).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}
