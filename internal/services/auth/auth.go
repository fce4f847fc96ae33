// Package services содержит бизнес-логику регистрации и входа пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или common.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordHasher хеширует и проверяет пароли.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// AuthService отвечает за регистрацию и проверку учётных данных.
type AuthService struct {
	users  UserRepository
	hasher PasswordHasher
	// dummyHash сверяется при неизвестном email, чтобы время ответа не выдавало наличие пользователя
	dummyHash string
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, hasher PasswordHasher) (*AuthService, error) {
	const op = "services.auth.NewAuthService"

	dummy, err := hasher.Hash("ambuhub-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		dummyHash: dummy,
	}, nil
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup хэширует пароль и создаёт пользователя с указанной ролью.
// Занятый email возвращает common.ErrDuplicateEmail.
func (s *AuthService) Signup(ctx context.Context, email, rawPassword string, role models.Role) (*models.User, error) {
	const op = "services.auth.Signup"

	if _, err := models.ParseRole(string(role)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        NormalizeEmail(email),
		PasswordHash: hashed,
		Role:         role,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = id
	return &user, nil
}

// FindByEmail возвращает пользователя или common.ErrUserNotFound.
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "services.auth.FindByEmail"
	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Login проверяет email и пароль. Неизвестный email и неверный пароль
// одинаково возвращают common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "services.auth.Login"

	user, err := s.FindByEmail(ctx, email)
	if errors.Is(err, common.ErrUserNotFound) {
		s.hasher.Verify(rawPassword, s.dummyHash)
		return nil, fmt.Errorf("%s: %w", op, common.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.hasher.Verify(rawPassword, user.PasswordHash) {
		return nil, fmt.Errorf("%s: %w", op, common.ErrInvalidCredentials)
	}
	return user, nil
}
