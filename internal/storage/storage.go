// Package storage keeps uploaded files (avatars, project attachments).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("storage: file too large")
	ErrUnsupportedType = errors.New("storage: unsupported file type")
	ErrNotFound        = errors.New("storage: object not found")
)

// Folders used by the application.
const (
	FolderAvatars     = "avatars"
	FolderAttachments = "attachments"
)

// ImageTypes are the content types accepted for avatars.
var ImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// Files stores objects under a key and resolves their public URL.
type Files interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Upload describes limits for a single uploaded file.
type Upload struct {
	Folder       string
	MaxBytes     int64
	AllowedTypes []string // empty means any
}

// NewKey builds "<folder>/<uuid><ext>" keeping only a short alphanumeric extension.
func NewKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !validExt(ext) {
		ext = ""
	}
	return path.Join(folder, uuid.NewString()+ext)
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 8 {
		return false
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// Save validates fh against u, stores it and returns the key.
func Save(ctx context.Context, files Files, u Upload, fh *multipart.FileHeader) (string, error) {
	if u.MaxBytes > 0 && fh.Size > u.MaxBytes {
		return "", ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	if !allowed(contentType, u.AllowedTypes) {
		return "", ErrUnsupportedType
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	key := NewKey(u.Folder, fh.Filename)
	if err := files.Put(ctx, key, f, fh.Size, contentType); err != nil {
		return "", err
	}
	return key, nil
}

func allowed(contentType string, types []string) bool {
	if len(types) == 0 {
		return true
	}
	base := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	for _, t := range types {
		if base == t {
			return true
		}
	}
	return false
}
