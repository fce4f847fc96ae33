// Package pages раздаёт статические HTML-страницы из каталога web/public.
package pages

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/ambuhub/internal/http/response"
)

// Handler отдаёт один файл страницы.
type Handler struct {
	log  *slog.Logger
	path string
}

// New создаёт Handler для файла name в каталоге dir.
func New(log *slog.Logger, dir, name string) *Handler {
	return &Handler{log: log, path: filepath.Join(dir, name)}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.path); err != nil {
		h.log.Error("page not found",
			slog.String("op", "handlers.pages"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("path", h.path),
		)
		response.Error(w, r, http.StatusNotFound, "page not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, h.path)
}
