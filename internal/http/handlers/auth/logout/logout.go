// Package logout реализует выход: сессия удаляется, cookie сбрасывается.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
)

// Sessions уничтожает сессию по токену из cookie.
type Sessions interface {
	CookieName() string
	Destroy(ctx context.Context, w http.ResponseWriter, token string) error
}

// Handler обрабатывает GET /logout.
type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

// New создаёт Handler выхода.
func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{log: log, sessions: sessions}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var token string
	if c, err := r.Cookie(h.sessions.CookieName()); err == nil {
		token = c.Value
	}

	// ошибка хранилища не мешает выходу: cookie уже сброшена, ключ истечёт по TTL
	if err := h.sessions.Destroy(r.Context(), w, token); err != nil {
		log.Error("failed to destroy session", sl.Err(err))
	}

	response.Redirect(w, r, "/login")
}
