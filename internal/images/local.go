package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/magabrotheeeer/ambuhub/internal/common"
)

// LocalStore пишет файлы в каталог, который раздаётся по urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore создаёт каталог при необходимости.
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	const op = "images.NewLocalStore"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

// Dir каталог с файлами.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save проверяет и записывает файл, возвращая относительный URL.
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	const op = "images.LocalStore.Save"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	upload, err := Prepare(filename, r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = os.WriteFile(filepath.Join(s.dir, upload.Name), upload.Data, 0o644); err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, common.ErrUpload, err)
	}
	return path.Join(s.urlPrefix, upload.Name), nil
}

// Delete удаляет файл, ранее сохранённый через Save. Отсутствующий файл ошибкой не считается.
func (s *LocalStore) Delete(_ context.Context, url string) error {
	const op = "images.LocalStore.Delete"

	prefix := strings.TrimSuffix(s.urlPrefix, "/") + "/"
	name := strings.TrimPrefix(url, prefix)
	if name == url || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%s: url %q is not served by this store", op, url)
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
