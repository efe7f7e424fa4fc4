package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/museumguide/backend/internal/uploader"
)

func TestUploadService_UploadFile(t *testing.T) {
	tests := []struct {
		name         string
		kind         uploader.Kind
		originalName string
		contentType  string
		size         int64
		expectedErr  error
		expectedDir  string
	}{
		{
			name:         "jpeg image",
			kind:         uploader.KindImage,
			originalName: "gallery.jpg",
			contentType:  "image/jpeg",
			size:         1024,
			expectedDir:  "images/",
		},
		{
			name:         "webp profile picture",
			kind:         uploader.KindProfile,
			originalName: "mask.webp",
			contentType:  "image/webp",
			size:         2048,
			expectedDir:  "images/",
		},
		{
			name:         "mp4 video",
			kind:         uploader.KindVideo,
			originalName: "tour.mp4",
			contentType:  "video/mp4",
			size:         4096,
			expectedDir:  "videos/",
		},
		{
			name:         "pdf document",
			kind:         uploader.KindPDF,
			originalName: "guide.pdf",
			contentType:  "application/pdf",
			size:         512,
			expectedDir:  "pdfs/",
		},
		{
			name:         "mp3 audio guide",
			kind:         uploader.KindAudio,
			originalName: "narration.mp3",
			contentType:  "audio/mpeg",
			size:         256,
			expectedDir:  "audio/",
		},
		{
			name:         "gif rejected for images",
			kind:         uploader.KindImage,
			originalName: "anim.gif",
			contentType:  "image/gif",
			size:         100,
			expectedErr:  ErrInvalidFileType,
		},
		{
			name:         "pdf rejected as profile picture",
			kind:         uploader.KindProfile,
			originalName: "doc.pdf",
			contentType:  "application/pdf",
			size:         100,
			expectedErr:  ErrInvalidFileType,
		},
		{
			name:         "unknown category",
			kind:         uploader.Kind("thumbnail"),
			originalName: "x.jpg",
			contentType:  "image/jpeg",
			size:         100,
			expectedErr:  ErrInvalidFileType,
		},
		{
			name:         "oversized file",
			kind:         uploader.KindVideo,
			originalName: "big.mp4",
			contentType:  "video/mp4",
			size:         MaxFileSize + 1,
			expectedErr:  ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockObjectStore{}
			svc := NewUploadService(store, zap.NewNop())

			ref, err := svc.UploadFile(context.Background(), tt.kind, tt.originalName, tt.contentType, tt.size, strings.NewReader("content"))

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, ref)
				// Invalid files must never reach the store.
				assert.False(t, store.putCalled)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, ref)
			assert.True(t, store.putCalled)
			assert.True(t, strings.HasPrefix(store.putKey, tt.expectedDir), "key %q should be under %q", store.putKey, tt.expectedDir)
			assert.Equal(t, tt.originalName, ref.OriginalName)
			assert.Equal(t, tt.size, ref.FileSize)
			assert.Equal(t, tt.contentType, ref.MimeType)
			assert.Equal(t, "https://assets.example.com/"+store.putKey, ref.FileURL)
			assert.False(t, ref.UploadDate.IsZero())
		})
	}
}

func TestUploadService_UploadFileAtSizeLimit(t *testing.T) {
	store := &mockObjectStore{}
	svc := NewUploadService(store, zap.NewNop())

	// Exactly the cap is allowed; size checks use the declared size, the
	// body need not be that large in this test.
	ref, err := svc.UploadFile(context.Background(), uploader.KindPDF, "guide.pdf", "application/pdf", MaxFileSize, strings.NewReader("content"))

	require.NoError(t, err)
	assert.Equal(t, int64(MaxFileSize), ref.FileSize)
}

func TestUploadService_UploadFileExtension(t *testing.T) {
	store := &mockObjectStore{}
	svc := NewUploadService(store, zap.NewNop())

	ref, err := svc.UploadFile(context.Background(), uploader.KindImage, "photo.final.JPG", "image/jpeg", 10, strings.NewReader("x"))

	require.NoError(t, err)
	assert.Equal(t, "JPG", ref.Extension)
}

func TestUploadService_UploadFileStoreError(t *testing.T) {
	store := &mockObjectStore{putErr: errors.New("storage unavailable")}
	svc := NewUploadService(store, zap.NewNop())

	ref, err := svc.UploadFile(context.Background(), uploader.KindImage, "g.jpg", "image/jpeg", 10, strings.NewReader("x"))

	assert.Error(t, err)
	assert.Nil(t, ref)
}

func TestUploadService_UploadAdapter(t *testing.T) {
	store := &mockObjectStore{}
	svc := NewUploadService(store, zap.NewNop())

	opened := false
	file := uploader.File{
		Name:        "g.jpg",
		ContentType: "image/jpeg",
		Size:        11,
		Open: func() (io.ReadCloser, error) {
			opened = true
			return io.NopCloser(strings.NewReader("hello world")), nil
		},
	}

	var lastProgress int64
	ref, err := svc.Upload(context.Background(), uploader.KindImage, file, func(n int64) {
		lastProgress = n
	})

	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.True(t, opened)
	assert.Equal(t, int64(11), lastProgress)
}

func TestUploadService_UploadAdapterValidatesBeforeOpen(t *testing.T) {
	store := &mockObjectStore{}
	svc := NewUploadService(store, zap.NewNop())

	file := uploader.File{
		Name:        "big.mp4",
		ContentType: "video/mp4",
		Size:        MaxFileSize + 1,
		Open: func() (io.ReadCloser, error) {
			t.Fatal("rejected file must not be opened")
			return nil, nil
		},
	}

	_, err := svc.Upload(context.Background(), uploader.KindVideo, file, nil)

	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.False(t, store.putCalled)
}
