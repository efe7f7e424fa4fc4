package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/museumguide/backend/internal/models"
	"github.com/museumguide/backend/internal/repositories"
	"github.com/museumguide/backend/internal/validation"
)

// mockArtifactRepository is a mock implementation of ArtifactRepository
type mockArtifactRepository struct {
	stored    *models.Artifact
	listed    []models.Artifact
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	createCalled bool
	updateCalled bool
	deleteCalled bool
}

func (m *mockArtifactRepository) Create(ctx context.Context, a *models.Artifact) error {
	m.createCalled = true
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = "generated-id"
	return nil
}

func (m *mockArtifactRepository) GetByID(ctx context.Context, id string) (*models.Artifact, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.stored, nil
}

func (m *mockArtifactRepository) List(ctx context.Context) ([]models.Artifact, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.listed, nil
}

func (m *mockArtifactRepository) Update(ctx context.Context, id string, a *models.Artifact) error {
	m.updateCalled = true
	return m.updateErr
}

func (m *mockArtifactRepository) Delete(ctx context.Context, id string) error {
	m.deleteCalled = true
	return m.deleteErr
}

// mockObjectStore is a mock implementation of ObjectStore
type mockObjectStore struct {
	putURL     string
	putErr     error
	deleteErrs map[string]error

	putCalled   bool
	putKey      string
	deletedURLs []string
}

func (m *mockObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	m.putCalled = true
	m.putKey = key
	if m.putErr != nil {
		return "", m.putErr
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	if m.putURL != "" {
		return m.putURL, nil
	}
	return "https://assets.example.com/" + key, nil
}

func (m *mockObjectStore) Delete(ctx context.Context, fileURL string) error {
	m.deletedURLs = append(m.deletedURLs, fileURL)
	if m.deleteErrs != nil {
		return m.deleteErrs[fileURL]
	}
	return nil
}

func validServiceArtifact() *models.Artifact {
	return &models.Artifact{
		ZoneName:     models.Zone1,
		ArtifactName: "Bronze Bell",
		Description:  "A temple bell from the Heian period.",
		Sections: []models.Section{
			{Title: "Overview", Content: "Cast in the ninth century."},
		},
		ProfilePicture: &models.AssetReference{FileURL: "https://assets.example.com/images/bell.jpg"},
	}
}

func TestArtifactService_Create(t *testing.T) {
	repo := &mockArtifactRepository{}
	store := &mockObjectStore{}
	svc := NewArtifactService(repo, store, zap.NewNop())

	stored, err := svc.Create(context.Background(), validServiceArtifact())

	require.NoError(t, err)
	assert.Equal(t, "generated-id", stored.ID)
	assert.True(t, repo.createCalled)
}

func TestArtifactService_CreateValidationFailure(t *testing.T) {
	repo := &mockArtifactRepository{}
	svc := NewArtifactService(repo, &mockObjectStore{}, zap.NewNop())

	a := validServiceArtifact()
	a.ZoneName = "atrium"
	a.ArtifactName = ""

	stored, err := svc.Create(context.Background(), a)

	require.Error(t, err)
	assert.Nil(t, stored)

	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "zoneName")
	assert.Contains(t, verr.Fields, "artifactName")

	// Nothing may be written when validation fails.
	assert.False(t, repo.createCalled)
}

func TestArtifactService_CreateRepositoryError(t *testing.T) {
	repo := &mockArtifactRepository{createErr: errors.New("database error")}
	svc := NewArtifactService(repo, &mockObjectStore{}, zap.NewNop())

	stored, err := svc.Create(context.Background(), validServiceArtifact())

	assert.Error(t, err)
	assert.Nil(t, stored)
}

func TestArtifactService_UpdateDeletesRemovedAssets(t *testing.T) {
	old := validServiceArtifact()
	old.CreatedAt = old.CreatedAt.AddDate(0, 0, -1)
	old.PDFs = []models.AssetReference{
		{FileURL: "https://assets.example.com/pdfs/old-guide.pdf"},
	}
	old.MediaGallery = []models.AssetReference{
		{FileURL: "https://assets.example.com/images/kept.jpg"},
		{FileURL: "https://assets.example.com/images/dropped.jpg"},
	}

	repo := &mockArtifactRepository{stored: old}
	store := &mockObjectStore{}
	svc := NewArtifactService(repo, store, zap.NewNop())

	updated := validServiceArtifact()
	updated.MediaGallery = []models.AssetReference{
		{FileURL: "https://assets.example.com/images/kept.jpg"},
	}

	_, err := svc.Update(context.Background(), "artifact-1", updated)

	require.NoError(t, err)
	assert.True(t, repo.updateCalled)
	assert.ElementsMatch(t, []string{
		"https://assets.example.com/pdfs/old-guide.pdf",
		"https://assets.example.com/images/dropped.jpg",
	}, store.deletedURLs)
}

func TestArtifactService_UpdatePreservesCreatedAt(t *testing.T) {
	old := validServiceArtifact()
	old.CreatedAt = old.CreatedAt.AddDate(-1, 0, 0)

	repo := &mockArtifactRepository{stored: old}
	svc := NewArtifactService(repo, &mockObjectStore{}, zap.NewNop())

	updated, err := svc.Update(context.Background(), "artifact-1", validServiceArtifact())

	require.NoError(t, err)
	assert.Equal(t, old.CreatedAt, updated.CreatedAt)
}

func TestArtifactService_UpdateValidationFailure(t *testing.T) {
	repo := &mockArtifactRepository{stored: validServiceArtifact()}
	svc := NewArtifactService(repo, &mockObjectStore{}, zap.NewNop())

	a := validServiceArtifact()
	a.Sections = nil

	_, err := svc.Update(context.Background(), "artifact-1", a)

	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, repo.updateCalled)
}

func TestArtifactService_UpdateNotFound(t *testing.T) {
	repo := &mockArtifactRepository{getErr: repositories.ErrNotFound}
	svc := NewArtifactService(repo, &mockObjectStore{}, zap.NewNop())

	_, err := svc.Update(context.Background(), "missing", validServiceArtifact())

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.False(t, repo.updateCalled)
}

func TestArtifactService_DeleteCascadesAssets(t *testing.T) {
	old := validServiceArtifact()
	old.PDFs = []models.AssetReference{{FileURL: "https://assets.example.com/pdfs/guide.pdf"}}
	old.AudioGuide = &models.AssetReference{FileURL: "https://assets.example.com/audio/tour.mp3"}

	repo := &mockArtifactRepository{stored: old}
	store := &mockObjectStore{}
	svc := NewArtifactService(repo, store, zap.NewNop())

	err := svc.Delete(context.Background(), "artifact-1")

	require.NoError(t, err)
	assert.True(t, repo.deleteCalled)
	assert.ElementsMatch(t, []string{
		"https://assets.example.com/images/bell.jpg",
		"https://assets.example.com/pdfs/guide.pdf",
		"https://assets.example.com/audio/tour.mp3",
	}, store.deletedURLs)
}

func TestArtifactService_DeleteProceedsPastStorageFailures(t *testing.T) {
	old := validServiceArtifact()
	old.PDFs = []models.AssetReference{{FileURL: "https://assets.example.com/pdfs/guide.pdf"}}

	repo := &mockArtifactRepository{stored: old}
	store := &mockObjectStore{deleteErrs: map[string]error{
		"https://assets.example.com/images/bell.jpg": errors.New("storage unavailable"),
	}}
	svc := NewArtifactService(repo, store, zap.NewNop())

	err := svc.Delete(context.Background(), "artifact-1")

	// The record deletion succeeds and every asset was still attempted.
	require.NoError(t, err)
	assert.True(t, repo.deleteCalled)
	assert.Len(t, store.deletedURLs, 2)
}

func TestArtifactService_DeleteNotFound(t *testing.T) {
	repo := &mockArtifactRepository{getErr: repositories.ErrNotFound}
	store := &mockObjectStore{}
	svc := NewArtifactService(repo, store, zap.NewNop())

	err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, store.deletedURLs)
	assert.False(t, repo.deleteCalled)
}

func TestArtifactService_List(t *testing.T) {
	repo := &mockArtifactRepository{listed: []models.Artifact{{ID: "a"}, {ID: "b"}}}
	svc := NewArtifactService(repo, &mockObjectStore{}, zap.NewNop())

	artifacts, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, artifacts, 2)
}
