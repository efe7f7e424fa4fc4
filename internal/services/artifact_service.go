package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/museumguide/backend/internal/models"
	"github.com/museumguide/backend/internal/validation"
)

// ArtifactRepository is the interface that wraps artifact persistence
// operations.
type ArtifactRepository interface {
	// Create inserts a new record, assigning its identity and timestamps.
	Create(ctx context.Context, a *models.Artifact) error
	// GetByID retrieves one record or repositories.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Artifact, error)
	// List retrieves all records, newest first.
	List(ctx context.Context) ([]models.Artifact, error)
	// Update replaces the full record at id or returns repositories.ErrNotFound.
	Update(ctx context.Context, id string, a *models.Artifact) error
	// Delete removes the record row or returns repositories.ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// ArtifactService applies the validation contract on every write and keeps
// the object store consistent with the record's asset references: removed
// references have their bytes deleted best-effort, never blocking the
// record operation itself.
type ArtifactService struct {
	repo   ArtifactRepository
	store  ObjectStore
	logger *zap.Logger
}

// NewArtifactService creates a new artifact service
func NewArtifactService(repo ArtifactRepository, store ObjectStore, logger *zap.Logger) *ArtifactService {
	return &ArtifactService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// Create validates the candidate and persists it. On validation failure a
// *validation.ValidationError is returned and nothing is written.
func (s *ArtifactService) Create(ctx context.Context, a *models.Artifact) (*models.Artifact, error) {
	if err := validation.Check(a); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create artifact: %w", err)
	}

	return a, nil
}

// GetByID retrieves one record.
func (s *ArtifactService) GetByID(ctx context.Context, id string) (*models.Artifact, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all records, newest first.
func (s *ArtifactService) List(ctx context.Context) ([]models.Artifact, error) {
	return s.repo.List(ctx)
}

// Update validates the candidate, replaces the stored record wholesale and
// then deletes, best-effort, every asset the old version referenced that
// the new one no longer does. Concurrent updates are last-write-wins; there
// is no version check.
func (s *ArtifactService) Update(ctx context.Context, id string, a *models.Artifact) (*models.Artifact, error) {
	if err := validation.Check(a); err != nil {
		return nil, err
	}

	old, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, a); err != nil {
		return nil, fmt.Errorf("failed to update artifact: %w", err)
	}
	a.CreatedAt = old.CreatedAt

	s.deleteAssets(ctx, removedURLs(old, a))

	return a, nil
}

// Delete removes the record and attempts to delete every referenced asset
// from the store. Asset deletion failures are logged and never block the
// record deletion: orphaned bytes are preferred over stuck records.
func (s *ArtifactService) Delete(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.deleteAssets(ctx, a.AssetURLs())

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}

	return nil
}

// deleteAssets issues one store delete per URL, logging failures.
func (s *ArtifactService) deleteAssets(ctx context.Context, urls []string) {
	for _, u := range urls {
		if err := s.store.Delete(ctx, u); err != nil {
			s.logger.Warn("failed to delete asset from storage",
				zap.String("fileURL", u),
				zap.Error(err),
			)
		}
	}
}

// removedURLs returns the asset URLs present in old but absent from new.
func removedURLs(old, updated *models.Artifact) []string {
	kept := make(map[string]struct{})
	for _, u := range updated.AssetURLs() {
		kept[u] = struct{}{}
	}

	var removed []string
	for _, u := range old.AssetURLs() {
		if _, ok := kept[u]; !ok {
			removed = append(removed, u)
		}
	}
	return removed
}
