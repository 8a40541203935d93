package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iho/extracto/internal/domain"
)

// MaxFileSize bounds how much of a statement file is read.
const MaxFileSize = 32 << 20 // 32MB

// FileSource implements usecase.StatementSource for a file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file's base name.
func (s *FileSource) Name() string {
	return filepath.Base(s.path)
}

// Read returns the file contents.
func (s *FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat statement: %w", err)
	}
	if info.Size() == 0 {
		return nil, domain.NewEmptySourceError()
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("statement %s is %d bytes, limit is %d", s.Name(), info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	return data, nil
}
