// Package services holds the business logic between HTTP handlers and the
// repositories / object store.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/museumguide/backend/internal/models"
	"github.com/museumguide/backend/internal/storage"
	"github.com/museumguide/backend/internal/uploader"
)

// MaxFileSize is the uniform upload cap across all asset categories.
const MaxFileSize = 100 << 20 // 100 MiB

// Typed upload errors, surfaced per file. Neither invalidates sibling
// uploads in a batch.
var (
	ErrInvalidFileType = errors.New("INVALID_FILE_TYPE")
	ErrFileTooLarge    = errors.New("FILE_TOO_LARGE")
)

// allowedMimeTypes is the per-category MIME allow-list enforced at upload
// time. The profile slot accepts the image list.
var allowedMimeTypes = map[uploader.Kind][]string{
	uploader.KindProfile: {"image/jpeg", "image/png", "image/webp"},
	uploader.KindImage:   {"image/jpeg", "image/png", "image/webp"},
	uploader.KindVideo:   {"video/mp4", "video/webm"},
	uploader.KindPDF:     {"application/pdf"},
	uploader.KindAudio:   {"audio/mpeg", "audio/wav", "audio/ogg", "audio/mp3"},
}

// categoryFolders maps each category onto its bucket prefix.
var categoryFolders = map[uploader.Kind]string{
	uploader.KindProfile: "images",
	uploader.KindImage:   "images",
	uploader.KindVideo:   "videos",
	uploader.KindPDF:     "pdfs",
	uploader.KindAudio:   "audio",
}

// ObjectStore is the narrow contract the services need from the asset
// store.
type ObjectStore interface {
	// Put uploads body under key and returns the durable public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	// Delete removes the object behind a previously returned URL.
	Delete(ctx context.Context, fileURL string) error
}

// UploadService converts raw uploads into durable asset references. It is
// the only producer of asset references in the system: a reference exists
// only after its bytes are in the store.
type UploadService struct {
	store  ObjectStore
	logger *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(store ObjectStore, logger *zap.Logger) *UploadService {
	return &UploadService{
		store:  store,
		logger: logger,
	}
}

// UploadFile validates the category, MIME type and size, streams the body
// to the object store and returns the completed asset reference.
func (s *UploadService) UploadFile(ctx context.Context, kind uploader.Kind, originalName, contentType string, size int64, body io.Reader) (*models.AssetReference, error) {
	if err := validateUpload(kind, contentType, size); err != nil {
		return nil, err
	}

	key := storage.ObjectKey(categoryFolders[kind], originalName)
	fileURL, err := s.store.Put(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.Info("file uploaded",
		zap.String("kind", string(kind)),
		zap.String("key", key),
		zap.Int64("size", size),
	)

	return &models.AssetReference{
		OriginalName: originalName,
		FileName:     key,
		FileSize:     size,
		Extension:    extensionOf(originalName),
		MimeType:     contentType,
		FileURL:      fileURL,
		UploadDate:   time.Now().UTC(),
	}, nil
}

// Upload adapts the service to the uploader.Uploader contract used by
// staged batches, wiring the per-file progress callback into the stream.
func (s *UploadService) Upload(ctx context.Context, kind uploader.Kind, file uploader.File, progress func(int64)) (*models.AssetReference, error) {
	// Reject oversized or mistyped files before opening the content source.
	if err := validateUpload(kind, file.ContentType, file.Size); err != nil {
		return nil, err
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open staged file %s: %w", file.Name, err)
	}
	defer rc.Close()

	body := uploader.NewProgressReader(rc, progress)
	return s.UploadFile(ctx, kind, file.Name, file.ContentType, file.Size, body)
}

func validateUpload(kind uploader.Kind, contentType string, size int64) error {
	if _, ok := categoryFolders[kind]; !ok {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidFileType, kind)
	}
	if !mimeAllowed(kind, contentType) {
		return fmt.Errorf("%w: %s is not allowed for %s uploads", ErrInvalidFileType, contentType, kind)
	}
	if size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFileTooLarge, size, int64(MaxFileSize))
	}
	return nil
}

func mimeAllowed(kind uploader.Kind, contentType string) bool {
	for _, m := range allowedMimeTypes[kind] {
		if strings.EqualFold(m, contentType) {
			return true
		}
	}
	return false
}

// extensionOf returns the file extension without the leading dot.
func extensionOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return ""
}
