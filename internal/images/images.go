// Package images сохраняет загруженные изображения товаров
// на локальный диск (раздаётся как статика) или в S3-совместимое хранилище.
package images

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/ambuhub/internal/common"
)

var allowedExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Upload проверенное изображение, готовое к записи.
type Upload struct {
	Name        string // новое имя файла: uuid + расширение
	ContentType string
	Data        []byte
}

// Prepare проверяет расширение и сигнатуру файла и выдаёт ему случайное имя.
// Ошибки оборачивают common.ErrUpload.
func Prepare(filename string, r io.Reader) (*Upload, error) {
	const op = "images.Prepare"

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExt[ext]; !ok {
		return nil, fmt.Errorf("%s: extension %q not allowed: %w", op, ext, common.ErrUpload)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrUpload, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty file: %w", op, common.ErrUpload)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%s: content type %q is not an image: %w", op, contentType, common.ErrUpload)
	}

	return &Upload{
		Name:        uuid.NewString() + ext,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (u *Upload) reader() io.ReadSeeker {
	return bytes.NewReader(u.Data)
}
