package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedImageTypes maps detected MIME types to the file extension used on disk.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Config holds the settings for the local blob store.
type Config struct {
	BaseDir       string
	BaseURL       string
	MaxUploadSize int64
}

// Store persists uploaded image blobs on local disk and hands out public URLs.
type Store struct {
	baseDir       string
	baseURL       string
	maxUploadSize int64
}

// New creates a blob store rooted at cfg.BaseDir, creating the directory if needed.
func New(cfg Config) (*Store, error) {
	if cfg.BaseDir == "" {
		return nil, fmt.Errorf("storage base_dir is required")
	}
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{
		baseDir:       cfg.BaseDir,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		maxUploadSize: cfg.MaxUploadSize,
	}, nil
}

// BaseDir returns the directory served statically for uploaded files.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// SaveImage validates the blob by its content signature, writes it under a
// generated name inside the given folder and returns the public URL.
func (s *Store) SaveImage(folder string, r io.Reader) (string, error) {
	limit := s.maxUploadSize
	if limit <= 0 {
		limit = 10 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("upload exceeds maximum size of %d bytes", limit)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("upload is empty")
	}

	// Identify the content by magic bytes, never by the client-declared type.
	probe := data
	if len(probe) > 512 {
		probe = probe[:512]
	}
	detected := strings.ToLower(strings.Split(http.DetectContentType(probe), ";")[0])
	ext, ok := allowedImageTypes[detected]
	if !ok {
		return "", fmt.Errorf("detected content type %q is not an allowed image type", detected)
	}

	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, folder, name), nil
}
