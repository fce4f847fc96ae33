// Package edit реализует HTTP-обработчик редактирования товара его владельцем.
// Изображение заменяется только если в форме передан новый файл.
package edit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/http/handlers/product/form"
	"github.com/magabrotheeeer/ambuhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
	"github.com/magabrotheeeer/ambuhub/internal/models"
	services "github.com/magabrotheeeer/ambuhub/internal/services/product"
)

// Service изменяет товар.
type Service interface {
	Update(ctx context.Context, productID int, ownerID string, fields models.ProductFields, img *services.Image) error
}

// Handler обрабатывает POST /edit-product/{id}.
type Handler struct {
	log            *slog.Logger
	service        Service
	validate       *validator.Validate
	maxUploadBytes int64
}

// New создаёт Handler.
func New(log *slog.Logger, service Service, maxUploadBytes int64) *Handler {
	return &Handler{
		log:            log,
		service:        service,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.edit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("session missing in context")
		response.Redirect(w, r, middlewarectx.LoginPath)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Info("invalid product id", slog.String("id", chi.URLParam(r, "id")))
		response.Error(w, r, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := form.Parse(w, r, h.validate, h.maxUploadBytes)
	if err != nil {
		log.Info("invalid product form", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, form.Message(err))
		return
	}
	defer p.Close()

	err = h.service.Update(r.Context(), id, s.UserID, p.Fields, p.Image)
	switch {
	case errors.Is(err, common.ErrNotFoundOrForbidden):
		log.Info("product not found or not owned", slog.Int("id", id))
		response.Error(w, r, http.StatusNotFound, "product not found")
		return
	case errors.Is(err, common.ErrUpload):
		log.Info("image rejected", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, "invalid image")
		return
	case err != nil:
		log.Error("failed to update product", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("product updated", slog.Int("id", id))
	response.Redirect(w, r, "/usuario_ambulante")
}
