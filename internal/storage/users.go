package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Повторный email приводит к common.ErrDuplicateEmail.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, password, role)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var id string
	err := s.DB.QueryRowContext(ctx, query, user.Email, user.PasswordHash, string(user.Role)).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, common.ErrDuplicateEmail)
		}
		return "", persistenceErr(op, err)
	}
	return id, nil
}

// GetUserByEmail возвращает пользователя по email или common.ErrUserNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password, role
			  FROM users
			  WHERE email = $1`
	var (
		u    models.User
		role string
	)
	err := s.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, common.ErrUserNotFound)
	}
	if err != nil {
		return nil, persistenceErr(op, err)
	}

	u.Role, err = models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
