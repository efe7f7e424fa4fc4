package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/museumguide/backend/internal/models"
	"github.com/museumguide/backend/internal/repositories"
	"github.com/museumguide/backend/internal/validation"
)

// ArtifactService is the interface that wraps artifact operations the
// handler needs.
type ArtifactService interface {
	// Create validates and persists a new record, returning it with the
	// assigned identity and timestamps.
	Create(ctx context.Context, a *models.Artifact) (*models.Artifact, error)
	// GetByID retrieves one record or repositories.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Artifact, error)
	// List retrieves all records, newest first.
	List(ctx context.Context) ([]models.Artifact, error)
	// Update validates and replaces the full record at id.
	Update(ctx context.Context, id string, a *models.Artifact) (*models.Artifact, error)
	// Delete removes the record and cascades asset deletion best-effort.
	Delete(ctx context.Context, id string) error
}

// ArtifactHandler handles artifact-related HTTP requests
type ArtifactHandler struct {
	BaseHandler
	service ArtifactService
	authMw  func(http.Handler) http.Handler
}

// NewArtifactHandler creates a new artifact handler
func NewArtifactHandler(svc ArtifactService, logger *zap.Logger, authMw func(http.Handler) http.Handler) *ArtifactHandler {
	return &ArtifactHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
		authMw:      authMw,
	}
}

// RegisterRoutes registers all artifact handler routes. Reads are public
// (the visitor-facing viewer), writes require an admin session.
func (h *ArtifactHandler) RegisterRoutes(r chi.Router) {
	r.Route("/artifacts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)

		r.Group(func(r chi.Router) {
			if h.authMw != nil {
				r.Use(h.authMw)
			}
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// Create handles POST /artifacts
// @Summary Create an artifact
// @Description Create a new artifact record. All referenced assets must already be uploaded.
// @Tags artifacts
// @Accept json
// @Produce json
// @Param artifact body models.Artifact true "Artifact record"
// @Success 201 {object} models.Artifact "Stored record with assigned id"
// @Failure 400 {object} map[string]string "Validation errors keyed by field"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /artifacts [post]
func (h *ArtifactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var artifact models.Artifact
	if err := json.NewDecoder(r.Body).Decode(&artifact); err != nil {
		h.Logger.Error("failed to decode artifact payload", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	stored, err := h.service.Create(r.Context(), &artifact)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			h.RespondFieldErrors(w, verr.Fields)
			return
		}
		h.Logger.Error("failed to create artifact", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to create artifact")
		return
	}

	h.RespondJSON(w, http.StatusCreated, stored)
}

// List handles GET /artifacts
// @Summary List artifacts
// @Description Get all artifact records, newest first
// @Tags artifacts
// @Produce json
// @Success 200 {array} models.Artifact "List of records"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /artifacts [get]
func (h *ArtifactHandler) List(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.service.List(r.Context())
	if err != nil {
		h.Logger.Error("failed to list artifacts", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to list artifacts")
		return
	}

	h.RespondJSON(w, http.StatusOK, artifacts)
}

// GetByID handles GET /artifacts/{id}
// @Summary Get artifact by ID
// @Description Get one artifact record for the public viewer
// @Tags artifacts
// @Produce json
// @Param id path string true "Artifact ID"
// @Success 200 {object} models.Artifact "Artifact record"
// @Failure 404 {object} map[string]string "Artifact not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /artifacts/{id} [get]
func (h *ArtifactHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	artifact, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "artifact not found")
			return
		}
		h.Logger.Error("failed to get artifact", zap.Error(err), zap.String("id", id))
		h.RespondError(w, http.StatusInternalServerError, "failed to get artifact")
		return
	}

	h.RespondJSON(w, http.StatusOK, artifact)
}

// Update handles PUT /artifacts/{id}
// @Summary Update an artifact
// @Description Replace the full artifact record. Assets removed by the new version are deleted from storage best-effort.
// @Tags artifacts
// @Accept json
// @Produce json
// @Param id path string true "Artifact ID"
// @Param artifact body models.Artifact true "Full replacement record"
// @Success 200 {object} models.Artifact "Updated record"
// @Failure 400 {object} map[string]string "Validation errors keyed by field"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Artifact not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /artifacts/{id} [put]
func (h *ArtifactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var artifact models.Artifact
	if err := json.NewDecoder(r.Body).Decode(&artifact); err != nil {
		h.Logger.Error("failed to decode artifact payload", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	stored, err := h.service.Update(r.Context(), id, &artifact)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			h.RespondFieldErrors(w, verr.Fields)
			return
		}
		if errors.Is(err, repositories.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "artifact not found")
			return
		}
		h.Logger.Error("failed to update artifact", zap.Error(err), zap.String("id", id))
		h.RespondError(w, http.StatusInternalServerError, "failed to update artifact")
		return
	}

	h.RespondJSON(w, http.StatusOK, stored)
}

// Delete handles DELETE /artifacts/{id}
// @Summary Delete an artifact
// @Description Remove the record and delete its assets from storage best-effort
// @Tags artifacts
// @Param id path string true "Artifact ID"
// @Success 204 "Deleted"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Artifact not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /artifacts/{id} [delete]
func (h *ArtifactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "artifact not found")
			return
		}
		h.Logger.Error("failed to delete artifact", zap.Error(err), zap.String("id", id))
		h.RespondError(w, http.StatusInternalServerError, "failed to delete artifact")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
