package ambuhub

import (
	"net/http"
	"os"
)

// fileOnlyFS отдаёт только файлы: каталог на запрос выглядит как отсутствующий,
// поэтому список загруженных изображений не раскрывается.
type fileOnlyFS struct {
	fs http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
