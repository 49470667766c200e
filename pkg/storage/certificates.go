package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrExtensionNotAllowed marks an upload whose extension is outside
	// the allow-list.
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	// ErrFileTooLarge marks an upload exceeding the configured limit.
	ErrFileTooLarge = errors.New("file exceeds size limit")
)

// CertificateStore persists uploaded certificate files on disk. Stored
// names are generated (timestamp plus uuid) so uploads never overwrite
// each other; callers keep the returned relative path.
type CertificateStore struct {
	baseDir string
	maxSize int64
	allowed map[string]struct{}
}

// NewCertificateStore ensures the base directory exists and returns a handle.
func NewCertificateStore(baseDir string, maxSize int64, allowedExtensions []string) (*CertificateStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}

	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}

	return &CertificateStore{baseDir: baseDir, maxSize: maxSize, allowed: allowed}, nil
}

// Allowed reports whether the filename carries an allow-listed extension.
func (s *CertificateStore) Allowed(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	_, ok := s.allowed[ext]
	return ok
}

// Save validates and persists an uploaded certificate, returning the
// relative path to record alongside the achievement.
func (s *CertificateStore) Save(fh *multipart.FileHeader) (string, error) {
	if !s.Allowed(fh.Filename) {
		return "", fmt.Errorf("store certificate %q: %w", fh.Filename, ErrExtensionNotAllowed)
	}
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", fmt.Errorf("store certificate %q: %w", fh.Filename, ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded certificate: %w", err)
	}
	defer src.Close() //nolint:errcheck

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%s_%s%s", time.Now().UTC().Format("20060102150405"), uuid.NewString(), ext)

	dst, err := os.OpenFile(s.resolve(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create certificate file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(s.resolve(name))
		return "", fmt.Errorf("write certificate file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(s.resolve(name))
		return "", fmt.Errorf("close certificate file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(filepath.Base(s.baseDir), name)), nil
}

// Open returns a read-only handle for a stored certificate. Only the final
// path element is honoured, so recorded relative paths and bare names both
// resolve.
func (s *CertificateStore) Open(name string) (*os.File, error) {
	file, err := os.Open(s.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("open certificate file: %w", err)
	}
	return file, nil
}

// Delete removes a stored certificate if present.
func (s *CertificateStore) Delete(name string) error {
	if err := os.Remove(s.resolve(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete certificate file: %w", err)
	}
	return nil
}

// Path exposes the resolved on-disk path.
func (s *CertificateStore) Path(name string) string {
	return s.resolve(name)
}

func (s *CertificateStore) resolve(name string) string {
	return filepath.Join(s.baseDir, filepath.Base(name))
}
