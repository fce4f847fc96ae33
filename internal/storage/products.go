package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

const productColumns = `id, name, description, price, stock, image_url, owner_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.ImageURL, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct вставляет товар и возвращает сохранённую запись с ID и временными метками.
func (s *Storage) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	const op = "storage.CreateProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO products (name, description, price, stock, image_url, owner_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + productColumns
	created, err := scanProduct(s.DB.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.OwnerID))
	if err != nil {
		return nil, persistenceErr(op, err)
	}
	return created, nil
}

// GetProduct возвращает товар по ID или common.ErrProductNotFound.
func (s *Storage) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	const op = "storage.GetProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, common.ErrProductNotFound)
	}
	if err != nil {
		return nil, persistenceErr(op, err)
	}
	return p, nil
}

// ListProducts возвращает все товары, новые первыми.
func (s *Storage) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "storage.ListProducts"
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id DESC`
	return s.listProducts(ctx, op, query)
}

// ListProductsByOwner возвращает товары одного продавца.
func (s *Storage) ListProductsByOwner(ctx context.Context, ownerID string) ([]*models.Product, error) {
	const op = "storage.ListProductsByOwner"
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY id DESC`
	return s.listProducts(ctx, op, query, ownerID)
}

func (s *Storage) listProducts(ctx context.Context, op, query string, args ...any) ([]*models.Product, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, persistenceErr(op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, persistenceErr(op, err)
	}
	return result, nil
}

// UpdateProduct заменяет поля товара владельца и возвращает количество изменённых строк.
// Пустой ImageURL сохраняет прежнее изображение.
func (s *Storage) UpdateProduct(ctx context.Context, p models.Product) (int, error) {
	const op = "storage.UpdateProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE products
			  SET name = $1, description = $2, price = $3, stock = $4,
			      image_url = COALESCE(NULLIF($5, ''), image_url),
			      updated_at = NOW()
			  WHERE id = $6 AND owner_id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.ID, p.OwnerID)
	if err != nil {
		return 0, persistenceErr(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, persistenceErr(op, err)
	}
	return int(rowsAffected), nil
}

// DeleteProduct удаляет товар владельца и возвращает количество удалённых строк.
func (s *Storage) DeleteProduct(ctx context.Context, id int, ownerID string) (int, error) {
	const op = "storage.DeleteProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return 0, persistenceErr(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, persistenceErr(op, err)
	}
	return int(rowsAffected), nil
}
