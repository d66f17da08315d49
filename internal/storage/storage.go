package storage

import (
	"context"
	"errors"
	"mime/multipart"
)

// ErrEmptyFile is returned when Save is handed a zero-length payload.
var ErrEmptyFile = errors.New("empty file payload")

// ImageStorage persists an uploaded file and returns the reference
// callers store on a post to locate it later: a root-relative path for
// the local backend, an absolute URL for the cloud backend. The
// header's filename is used only to derive the extension. ctx aborts an
// in-flight transfer.
type ImageStorage interface {
	Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}
