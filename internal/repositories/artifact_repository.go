// Package repositories implements data access over MySQL. Embedded
// documents (sections, asset references, reference links) are stored as
// JSON columns, keeping the record a single row.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/museumguide/backend/internal/models"
)

// ErrNotFound is returned when an operation addresses a record identity
// that does not exist.
var ErrNotFound = errors.New("not found")

// artifactRepository implements artifact persistence over *sql.DB
type artifactRepository struct {
	db *sql.DB
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(db *sql.DB) *artifactRepository {
	return &artifactRepository{
		db: db,
	}
}

const artifactColumns = `id, zone_name, artifact_name, artifact_name_jap, description, description_jap,
		       sections, profile_picture, pdfs, audio_guide, media_gallery, reference_links,
		       external_url, created_at, updated_at`

// Create inserts a new artifact row, assigning its identity and timestamps.
func (r *artifactRepository) Create(ctx context.Context, a *models.Artifact) error {
	a.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Millisecond)
	a.CreatedAt = now
	a.UpdatedAt = now

	cols, err := marshalEmbedded(a)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO artifacts (id, zone_name, artifact_name, artifact_name_jap, description, description_jap,
		                       sections, profile_picture, pdfs, audio_guide, media_gallery, reference_links,
		                       external_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		string(a.ZoneName),
		a.ArtifactName,
		nullString(a.ArtifactNameJap),
		a.Description,
		nullString(a.DescriptionJap),
		cols.sections,
		cols.profilePicture,
		cols.pdfs,
		cols.audioGuide,
		cols.mediaGallery,
		cols.referenceLinks,
		nullString(a.ExternalURL),
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create artifact: %w", err)
	}

	return nil
}

// GetByID retrieves one artifact by its identity.
func (r *artifactRepository) GetByID(ctx context.Context, id string) (*models.Artifact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM artifacts
		WHERE id = ?
		LIMIT 1
	`, artifactColumns)

	a, err := scanArtifact(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact by id: %w", err)
	}

	return a, nil
}

// List retrieves all artifacts, newest first.
func (r *artifactRepository) List(ctx context.Context) ([]models.Artifact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM artifacts
		ORDER BY created_at DESC
	`, artifactColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer rows.Close()

	artifacts := []models.Artifact{}
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, *a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return artifacts, nil
}

// Update replaces the full record at id. There is no partial-field patch;
// concurrent writers are last-write-wins.
func (r *artifactRepository) Update(ctx context.Context, id string, a *models.Artifact) error {
	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	a.ID = id
	a.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	cols, err := marshalEmbedded(a)
	if err != nil {
		return err
	}

	query := `
		UPDATE artifacts
		SET zone_name = ?, artifact_name = ?, artifact_name_jap = ?, description = ?, description_jap = ?,
		    sections = ?, profile_picture = ?, pdfs = ?, audio_guide = ?, media_gallery = ?,
		    reference_links = ?, external_url = ?, updated_at = ?
		WHERE id = ?
	`

	_, err = r.db.ExecContext(ctx, query,
		string(a.ZoneName),
		a.ArtifactName,
		nullString(a.ArtifactNameJap),
		a.Description,
		nullString(a.DescriptionJap),
		cols.sections,
		cols.profilePicture,
		cols.pdfs,
		cols.audioGuide,
		cols.mediaGallery,
		cols.referenceLinks,
		nullString(a.ExternalURL),
		a.UpdatedAt,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update artifact: %w", err)
	}

	return nil
}

// Delete removes the record row. Asset cleanup is the service layer's job.
func (r *artifactRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM artifacts WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// exists checks for a row with the given id.
func (r *artifactRepository) exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM artifacts WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check artifact existence: %w", err)
	}
	return true, nil
}

// embeddedColumns carries the JSON-encoded document columns of one row.
type embeddedColumns struct {
	sections       []byte
	profilePicture any
	pdfs           []byte
	audioGuide     any
	mediaGallery   []byte
	referenceLinks []byte
}

func marshalEmbedded(a *models.Artifact) (*embeddedColumns, error) {
	cols := &embeddedColumns{}

	var err error
	if cols.sections, err = json.Marshal(a.Sections); err != nil {
		return nil, fmt.Errorf("failed to encode sections: %w", err)
	}
	if cols.pdfs, err = json.Marshal(emptyIfNil(a.PDFs)); err != nil {
		return nil, fmt.Errorf("failed to encode pdfs: %w", err)
	}
	if cols.mediaGallery, err = json.Marshal(emptyIfNil(a.MediaGallery)); err != nil {
		return nil, fmt.Errorf("failed to encode media gallery: %w", err)
	}
	links := a.ReferenceLinks
	if links == nil {
		links = []string{}
	}
	if cols.referenceLinks, err = json.Marshal(links); err != nil {
		return nil, fmt.Errorf("failed to encode reference links: %w", err)
	}

	cols.profilePicture, err = marshalOptional(a.ProfilePicture)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile picture: %w", err)
	}
	cols.audioGuide, err = marshalOptional(a.AudioGuide)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audio guide: %w", err)
	}

	return cols, nil
}

func marshalOptional(ref *models.AssetReference) (any, error) {
	if ref == nil {
		return nil, nil
	}
	b, err := json.Marshal(ref)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func emptyIfNil(refs []models.AssetReference) []models.AssetReference {
	if refs == nil {
		return []models.AssetReference{}
	}
	return refs
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (*models.Artifact, error) {
	a := &models.Artifact{}
	var (
		zone                            string
		nameJap, descJap, externalURL   sql.NullString
		sections, pdfs, gallery, links  []byte
		profilePicture, audioGuide      []byte
	)

	err := row.Scan(
		&a.ID,
		&zone,
		&a.ArtifactName,
		&nameJap,
		&a.Description,
		&descJap,
		&sections,
		&profilePicture,
		&pdfs,
		&audioGuide,
		&gallery,
		&links,
		&externalURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ZoneName = models.ZoneName(zone)
	a.ArtifactNameJap = nameJap.String
	a.DescriptionJap = descJap.String
	a.ExternalURL = externalURL.String

	if err := json.Unmarshal(sections, &a.Sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	if err := json.Unmarshal(pdfs, &a.PDFs); err != nil {
		return nil, fmt.Errorf("failed to decode pdfs: %w", err)
	}
	if err := json.Unmarshal(gallery, &a.MediaGallery); err != nil {
		return nil, fmt.Errorf("failed to decode media gallery: %w", err)
	}
	if err := json.Unmarshal(links, &a.ReferenceLinks); err != nil {
		return nil, fmt.Errorf("failed to decode reference links: %w", err)
	}
	if len(profilePicture) > 0 {
		a.ProfilePicture = &models.AssetReference{}
		if err := json.Unmarshal(profilePicture, a.ProfilePicture); err != nil {
			return nil, fmt.Errorf("failed to decode profile picture: %w", err)
		}
	}
	if len(audioGuide) > 0 {
		a.AudioGuide = &models.AssetReference{}
		if err := json.Unmarshal(audioGuide, a.AudioGuide); err != nil {
			return nil, fmt.Errorf("failed to decode audio guide: %w", err)
		}
	}

	return a, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
