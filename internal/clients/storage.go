package clients

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type StorageClient struct {
	BaseDir string // absolute or relative directory the dataset files land in
}

// NewLocalStorage creates a storage client; baseDir will be created if missing.
func NewLocalStorage(baseDir string) (*StorageClient, error) {
	if baseDir == "" {
		baseDir = "."
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure storage dir %q: %w", baseDir, err)
	}

	return &StorageClient{BaseDir: baseDir}, nil
}

// Save writes data to baseDir under fileName, replacing any previous file
// of that name, and returns the full path.
func (s *StorageClient) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// sanitize provided filename to avoid path traversal
	fileName = filepath.Base(fileName)
	if fileName == "." || fileName == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	path := filepath.Join(s.BaseDir, fileName)
	// write file atomically
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write file %q: %w", fileName, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize file %q: %w", fileName, err)
	}

	return path, nil
}
