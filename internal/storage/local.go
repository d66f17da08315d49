package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalImageStorage writes uploads to a directory under the service's
// static-asset root and hands back root-relative references.
type LocalImageStorage struct {
	uploadsDir string
}

func NewLocalImageStorage(uploadsDir string) (*LocalImageStorage, error) {
	if uploadsDir == "" {
		uploadsDir = filepath.Join("static", "uploads")
	}
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalImageStorage{uploadsDir: uploadsDir}, nil
}

// Save writes the payload under a fresh uuid plus the original
// extension and returns "/uploads/{uuid}{ext}". A partial file is
// removed on any failed exit path, including cancellation.
func (s *LocalImageStorage) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size == 0 {
		return "", ErrEmptyFile
	}

	name := uuid.New().String() + filepath.Ext(header.Filename)
	fullPath := filepath.Join(s.uploadsDir, name)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, &contextReader{ctx: ctx, r: file}); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return "/uploads/" + name, nil
}

// contextReader fails the copy as soon as ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
