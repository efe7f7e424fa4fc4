package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/museumguide/backend/internal/models"
	"github.com/museumguide/backend/internal/services"
	"github.com/museumguide/backend/internal/uploader"
)

// UploadService is the interface that wraps the single-file upload
// operation.
type UploadService interface {
	// UploadFile validates category, MIME type and size, stores the bytes
	// and returns the completed asset reference.
	UploadFile(ctx context.Context, kind uploader.Kind, originalName, contentType string, size int64, body io.Reader) (*models.AssetReference, error)
}

// UploadHandler handles direct file uploads to the asset store
type UploadHandler struct {
	BaseHandler
	service UploadService
	authMw  func(http.Handler) http.Handler
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(svc UploadService, logger *zap.Logger, authMw func(http.Handler) http.Handler) *UploadHandler {
	return &UploadHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
		authMw:      authMw,
	}
}

// RegisterRoutes registers the upload route behind admin auth.
func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.authMw != nil {
			r.Use(h.authMw)
		}
		r.Post("/upload", h.UploadFile)
	})
}

// UploadFile handles POST /upload
// @Summary Upload a file
// @Description Upload one file to the asset store. The type field selects the category allow-list.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File content"
// @Param type formData string true "File category: profile, pdf, image, video or audio"
// @Success 200 {object} models.AssetReference "Stored asset reference including fileURL"
// @Failure 400 {object} map[string]string "Missing file or invalid file type"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /upload [post]
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	kind := uploader.Kind(r.FormValue("type"))
	if kind == "" {
		h.RespondError(w, http.StatusBadRequest, "file type not specified")
		return
	}

	ref, err := h.service.UploadFile(r.Context(), kind, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFileType):
			h.RespondError(w, http.StatusBadRequest, services.ErrInvalidFileType.Error())
		case errors.Is(err, services.ErrFileTooLarge):
			h.RespondError(w, http.StatusRequestEntityTooLarge, services.ErrFileTooLarge.Error())
		default:
			h.Logger.Error("failed to upload file",
				zap.Error(err),
				zap.String("filename", header.Filename),
			)
			h.RespondError(w, http.StatusInternalServerError, "file upload failed")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, ref)
}
