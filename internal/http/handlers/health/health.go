// Package health отдаёт состояние зависимостей приложения.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
)

// Pinger зависимость, доступность которой проверяется.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает GET /health.
type Handler struct {
	log    *slog.Logger
	checks map[string]Pinger
}

// New создаёт Handler. checks сопоставляет имя зависимости и её проверку.
func New(log *slog.Logger, checks map[string]Pinger) *Handler {
	return &Handler{log: log, checks: checks}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{}
	healthy := true
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			h.log.Error("dependency unavailable", slog.String("op", op), slog.String("name", name), sl.Err(err))
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Response{Status: response.StatusError, Data: status})
		return
	}
	render.JSON(w, r, response.StatusOKWithData(status))
}
