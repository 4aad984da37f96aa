package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

// LocalSource opens spreadsheets from disk as uploads.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

// Open returns the upload and the closer of its underlying file.
func (s *LocalSource) Open(ctx context.Context, sourcePath string) (domain.Upload, io.Closer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Upload{}, nil, err
	}

	path := sourcePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.BaseDir, sourcePath)
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.Upload{}, nil, fmt.Errorf("open file %s: %w", path, err)
	}

	upload := domain.Upload{
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Body:        file,
	}
	return upload, file, nil
}
