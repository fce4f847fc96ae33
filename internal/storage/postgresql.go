// Package storage реализует хранилище на PostgreSQL для пользователей и товаров.
// Все методы принимают context и оборачивают ошибки префиксом операции.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/ambuhub/internal/common"
)

const (
	connectAttempts = 5
	connectBackoff  = 500 * time.Millisecond
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New открывает подключение и дожидается готовности базы,
// повторяя ping с растущей паузой.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	delay := connectBackoff
	for attempt := 1; ; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			_ = db.Close()
			return nil, fmt.Errorf("%s: ping after %d attempts: %w", op, attempt, err)
		}
		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return &Storage{DB: db}, nil
}

// Ping проверяет соединение с базой.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// persistenceErr помечает ошибку базы как common.ErrPersistence, сохраняя исходную причину.
func persistenceErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrPersistence, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
