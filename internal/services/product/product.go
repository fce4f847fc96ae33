// Package services содержит бизнес-логику товаров продавцов: создание,
// списки, изменение и удаление с проверкой владельца, а также кеширование общего списка.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

const (
	allProductsKey = "products:all"
	allProductsTTL = time.Minute
)

// ProductRepository определяет методы для работы с товарами в хранилище.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByOwner(ctx context.Context, ownerID string) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) (int, error)
	DeleteProduct(ctx context.Context, id int, ownerID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// ImageStore сохраняет и удаляет изображения товаров.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Image загруженный файл изображения. nil означает, что изображение не передавалось.
type Image struct {
	Filename string
	Body     io.Reader
}

// ProductService реализует бизнес-логику работы с товарами.
type ProductService struct {
	repo   ProductRepository
	cache  Cache
	images ImageStore
	log    *slog.Logger
}

// NewProductService создает новый экземпляр ProductService.
func NewProductService(repo ProductRepository, cache Cache, images ImageStore, log *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		cache:  cache,
		images: images,
		log:    log,
	}
}

// Create сохраняет изображение (если есть) и создаёт товар, принадлежащий ownerID.
func (s *ProductService) Create(ctx context.Context, ownerID string, fields models.ProductFields, img *Image) (*models.Product, error) {
	const op = "services.product.Create"

	imageURL, err := s.saveImage(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateAll(ctx)
	created, err := s.repo.CreateProduct(ctx, models.Product{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Stock:       fields.Stock,
		ImageURL:    imageURL,
		OwnerID:     ownerID,
	})
	if err != nil {
		s.discardImage(ctx, imageURL)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new product", slog.Int("id", created.ID), slog.String("owner_id", ownerID))
	s.invalidateAll(ctx)
	return created, nil
}

// ListAll возвращает все товары, сначала пытаясь взять список из кеша.
func (s *ProductService) ListAll(ctx context.Context) ([]*models.Product, error) {
	const op = "services.product.ListAll"

	var cached []*models.Product
	found, err := s.cache.Get(ctx, allProductsKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", allProductsKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, allProductsKey, products, allProductsTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", allProductsKey), sl.Err(err))
	}
	return products, nil
}

// ListByOwner возвращает товары продавца.
func (s *ProductService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Product, error) {
	const op = "services.product.ListByOwner"
	products, err := s.repo.ListProductsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

// Update полностью заменяет поля товара владельца.
// Изображение меняется только если передано новое.
func (s *ProductService) Update(ctx context.Context, productID int, ownerID string, fields models.ProductFields, img *Image) error {
	const op = "services.product.Update"

	if _, err := s.authorizeOwner(ctx, productID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	imageURL, err := s.saveImage(ctx, img)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateAll(ctx)
	n, err := s.repo.UpdateProduct(ctx, models.Product{
		ID:          productID,
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Stock:       fields.Stock,
		ImageURL:    imageURL,
		OwnerID:     ownerID,
	})
	if err != nil {
		s.discardImage(ctx, imageURL)
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		// товар удалили между проверкой и обновлением
		s.discardImage(ctx, imageURL)
		return fmt.Errorf("%s: %w", op, common.ErrNotFoundOrForbidden)
	}

	s.log.Info("updated product", slog.Int("id", productID))
	s.invalidateAll(ctx)
	return nil
}

// Delete удаляет товар владельца.
func (s *ProductService) Delete(ctx context.Context, productID int, ownerID string) error {
	const op = "services.product.Delete"

	if _, err := s.authorizeOwner(ctx, productID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateAll(ctx)
	n, err := s.repo.DeleteProduct(ctx, productID, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, common.ErrNotFoundOrForbidden)
	}

	s.log.Info("deleted product", slog.Int("id", productID))
	s.invalidateAll(ctx)
	return nil
}

// authorizeOwner единая проверка владельца для изменения и удаления.
// Отсутствующий и чужой товар неразличимы для вызывающего.
func (s *ProductService) authorizeOwner(ctx context.Context, productID int, ownerID string) (*models.Product, error) {
	p, err := s.repo.GetProduct(ctx, productID)
	if errors.Is(err, common.ErrProductNotFound) {
		return nil, common.ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}
	if ownerID == "" || p.OwnerID != ownerID {
		return nil, common.ErrNotFoundOrForbidden
	}
	return p, nil
}

func (s *ProductService) saveImage(ctx context.Context, img *Image) (string, error) {
	if img == nil {
		return "", nil
	}
	url, err := s.images.Save(ctx, img.Filename, img.Body)
	if err != nil {
		return "", err
	}
	return url, nil
}

// discardImage убирает изображение, которое так и не попало в товар.
func (s *ProductService) discardImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		s.log.Warn("failed to remove orphaned image", slog.String("image_url", url), sl.Err(err))
	}
}

// invalidateAll вызывается до и после записи: сброс до записи убирает старый список,
// сброс после записи убирает список, который параллельный ListAll мог положить
// в кеш, пока запись ещё выполнялась.
func (s *ProductService) invalidateAll(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, allProductsKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", allProductsKey), sl.Err(err))
	}
}
