package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"github.com/skanderbz/batitrack/internal/config"
)

// ErrFileTooLarge is returned when an upload exceeds the configured cap.
var ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// FileStorage stores uploaded files on local disk under a single directory.
// Stored names are prefixed with a UUID so concurrent uploads of the same
// filename never collide.
type FileStorage struct {
	dir      string
	maxBytes int64
}

func NewFileStorage(cfg *config.UploadConfig) (*FileStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStorage{
		dir:      cfg.Dir,
		maxBytes: cfg.MaxUploadBytes(),
	}, nil
}

// MaxBytes returns the upload size cap in bytes.
func (fs *FileStorage) MaxBytes() int64 {
	return fs.maxBytes
}

// SanitizeFilename replaces anything outside [a-zA-Z0-9._-] with "_".
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	return unsafeFilenameChars.ReplaceAllString(base, "_")
}

// Save writes the stream to disk and returns the storage path and the
// sanitized original filename. Streams larger than the cap are rejected
// and the partial file removed.
func (fs *FileStorage) Save(src io.Reader, originalName string) (storagePath, safeName string, err error) {
	safeName = SanitizeFilename(originalName)
	storedName := uuid.NewString() + "_" + safeName
	fullPath := filepath.Join(fs.dir, storedName)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, fs.maxBytes+1))
	if err != nil {
		os.Remove(fullPath)
		return "", "", err
	}
	if written > fs.maxBytes {
		os.Remove(fullPath)
		return "", "", ErrFileTooLarge
	}

	return fullPath, safeName, nil
}
