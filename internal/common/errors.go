// Package common содержит общие для всех слоёв ошибки приложения.
// Хранилище и сервисы оборачивают их через fmt.Errorf("%s: %w", op, err),
// а HTTP-обработчики сопоставляют через errors.Is и превращают в статус ответа.
package common

import "errors"

var (
	// ошибки учётных записей
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")

	// ошибки сессий и доступа
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrSessionAbsent   = errors.New("session absent")

	// ошибки товаров
	ErrProductNotFound     = errors.New("product not found")
	ErrNotFoundOrForbidden = errors.New("product not found or not owned by user")

	// инфраструктурные ошибки
	ErrPersistence = errors.New("persistence error")
	ErrUpload      = errors.New("upload error")
)
