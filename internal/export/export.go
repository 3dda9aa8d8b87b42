package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives rendered invoice artifacts. The engine writes each artifact
// exactly once and never reads it back.
type Sink interface {
	Export(ctx context.Context, filename string, data []byte) error
}

// FileSink writes artifacts into a directory on the local filesystem.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) Export(ctx context.Context, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}
