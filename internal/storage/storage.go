package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/motoarena/backend-go/internal/config"
)

// Storage errors
var (
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Storage persists uploaded files and returns a URL path for them. The
// services only ever see the resulting URL, never file content.
type Storage interface {
	Save(ctx context.Context, originalName string, size int64, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

type localStorage struct {
	dir     string
	maxSize int64
	logger  *slog.Logger
}

// NewLocalStorage creates a disk-backed storage rooted at cfg.UploadDir
func NewLocalStorage(cfg *config.Config, logger *slog.Logger) (Storage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &localStorage{
		dir:     cfg.UploadDir,
		maxSize: cfg.MaxFileSize,
		logger:  logger,
	}, nil
}

func (s *localStorage) Save(ctx context.Context, originalName string, size int64, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if size > s.maxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedFileType
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// LimitReader guards against clients lying about the declared size.
	written, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if written > s.maxSize {
		os.Remove(path)
		return "", ErrFileTooLarge
	}

	s.logger.Debug("💾 [Storage] File stored", "name", name, "bytes", written)
	return "/uploads/" + name, nil
}

func (s *localStorage) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := filepath.Base(url)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}

	s.logger.Debug("🗑️ [Storage] File deleted", "name", name)
	return nil
}
