// Package middlewarectx содержит HTTP middleware приложения.
//
// RequireAuthenticated проверяет сессионную cookie и кладёт сессию в контекст,
// RequireRole пропускает только пользователей нужной роли.
// Middleware независимы и подключаются цепочкой через chi.
package middlewarectx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

// LoginPath страница, на которую отправляется неаутентифицированный пользователь.
const LoginPath = "/login"

// SessionReader описывает чтение сессии из запроса.
type SessionReader interface {
	FromRequest(r *http.Request) (*models.Session, error)
}

// RequireAuthenticated пропускает запрос дальше только при наличии действующей сессии.
// Иначе отвечает 303 на страницу входа.
func RequireAuthenticated(sessions SessionReader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuthenticated"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			s, err := sessions.FromRequest(r)
			if err != nil {
				if !errors.Is(err, common.ErrSessionAbsent) {
					log.Error("failed to read session", sl.Err(err))
				} else {
					log.Debug("no active session")
				}
				response.Redirect(w, r, LoginPath)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// RequireRole пропускает только сессии с ролью expected, остальным отвечает 403.
func RequireRole(expected models.Role, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			s, ok := SessionFromContext(r.Context())
			if !ok {
				log.Debug("no session in context")
				response.Redirect(w, r, LoginPath)
				return
			}
			if s.Role != expected {
				log.Info("role mismatch", slog.String("role", string(s.Role)), slog.String("expected", string(expected)))
				response.Error(w, r, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
