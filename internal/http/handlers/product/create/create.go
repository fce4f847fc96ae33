// Package create реализует HTTP-обработчик создания товара продавцом.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

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

// VendorHome страница продавца, куда ведёт редирект после изменения товаров.
const VendorHome = "/usuario_ambulante"

// Service создаёт товар.
type Service interface {
	Create(ctx context.Context, ownerID string, fields models.ProductFields, img *services.Image) (*models.Product, error)
}

// Handler обрабатывает POST /create-product.
type Handler struct {
	log            *slog.Logger
	service        Service
	validate       *validator.Validate
	maxUploadBytes int64
}

// New создаёт Handler. maxUploadBytes ограничивает размер формы вместе с файлом.
func New(log *slog.Logger, service Service, maxUploadBytes int64) *Handler {
	return &Handler{
		log:            log,
		service:        service,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.create"

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

	p, err := form.Parse(w, r, h.validate, h.maxUploadBytes)
	if err != nil {
		log.Info("invalid product form", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, form.Message(err))
		return
	}
	defer p.Close()

	created, err := h.service.Create(r.Context(), s.UserID, p.Fields, p.Image)
	if errors.Is(err, common.ErrUpload) {
		log.Info("image rejected", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, "invalid image")
		return
	}
	if err != nil {
		log.Error("failed to create product", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("product created", slog.Int("id", created.ID))
	response.Redirect(w, r, VendorHome)
}
