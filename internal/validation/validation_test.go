package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/museumguide/backend/internal/models"
)

// validArtifact returns a record passing every check; tests mutate it.
func validArtifact() *models.Artifact {
	return &models.Artifact{
		ZoneName:     models.Zone3,
		ArtifactName: "Jade Mask",
		Description:  "A ceremonial mask carved from a single piece of jade.",
		Sections: []models.Section{
			{Title: "Overview", Content: "Found in the northern burial chamber."},
		},
		ProfilePicture: &models.AssetReference{
			OriginalName: "mask.jpg",
			FileName:     "images/1700000000000-abc.jpg",
			FileSize:     2048,
			Extension:    "jpg",
			MimeType:     "image/jpeg",
			FileURL:      "https://assets.example.com/images/1700000000000-abc.jpg",
		},
	}
}

func TestValidateArtifact_Valid(t *testing.T) {
	assert.Nil(t, ValidateArtifact(validArtifact()))
	assert.NoError(t, Check(validArtifact()))
}

func TestValidateArtifact_AllZonesAccepted(t *testing.T) {
	for _, zone := range models.AllZones {
		t.Run(string(zone), func(t *testing.T) {
			a := validArtifact()
			a.ZoneName = zone
			assert.Nil(t, ValidateArtifact(a))
		})
	}
}

func TestValidateArtifact_FieldViolations(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*models.Artifact)
		expectedField string
	}{
		{
			name:          "unknown zone",
			mutate:        func(a *models.Artifact) { a.ZoneName = "zone10" },
			expectedField: "zoneName",
		},
		{
			name:          "empty zone",
			mutate:        func(a *models.Artifact) { a.ZoneName = "" },
			expectedField: "zoneName",
		},
		{
			name:          "missing artifact name",
			mutate:        func(a *models.Artifact) { a.ArtifactName = "" },
			expectedField: "artifactName",
		},
		{
			name:          "whitespace artifact name",
			mutate:        func(a *models.Artifact) { a.ArtifactName = "   " },
			expectedField: "artifactName",
		},
		{
			name:          "missing description",
			mutate:        func(a *models.Artifact) { a.Description = "" },
			expectedField: "description",
		},
		{
			name:          "section without title",
			mutate:        func(a *models.Artifact) { a.Sections[0].Title = "" },
			expectedField: "sections[0].title",
		},
		{
			name:          "section without content",
			mutate:        func(a *models.Artifact) { a.Sections[0].Content = "" },
			expectedField: "sections[0].content",
		},
		{
			name:          "relative reference link",
			mutate:        func(a *models.Artifact) { a.ReferenceLinks = []string{"/docs/page"} },
			expectedField: "referenceLinks[0]",
		},
		{
			name:          "non-http reference link",
			mutate:        func(a *models.Artifact) { a.ReferenceLinks = []string{"ftp://example.com/file"} },
			expectedField: "referenceLinks[0]",
		},
		{
			name:          "dotless host reference link",
			mutate:        func(a *models.Artifact) { a.ReferenceLinks = []string{"http://localhost/page"} },
			expectedField: "referenceLinks[0]",
		},
		{
			name:          "invalid external url",
			mutate:        func(a *models.Artifact) { a.ExternalURL = "not a url" },
			expectedField: "externalURL",
		},
		{
			name:          "missing profile picture",
			mutate:        func(a *models.Artifact) { a.ProfilePicture = nil },
			expectedField: "profilePicture",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArtifact()
			tt.mutate(a)

			errs := ValidateArtifact(a)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.expectedField)
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidateArtifact_EmptySectionsSingleError(t *testing.T) {
	a := validArtifact()
	a.Sections = nil

	errs := ValidateArtifact(a)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "sections")
	// No per-index errors when the list itself is empty.
	assert.Len(t, errs, 1)
}

func TestValidateArtifact_CollectsAllViolations(t *testing.T) {
	a := &models.Artifact{
		ZoneName: "lobby",
		Sections: []models.Section{{}},
	}

	errs := ValidateArtifact(a)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "zoneName")
	assert.Contains(t, errs, "artifactName")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "sections[0].title")
	assert.Contains(t, errs, "sections[0].content")
	assert.Contains(t, errs, "profilePicture")
}

func TestValidateArtifact_SecondSectionIndexed(t *testing.T) {
	a := validArtifact()
	a.Sections = append(a.Sections, models.Section{Title: "History"})

	errs := ValidateArtifact(a)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "sections[1].content")
	assert.NotContains(t, errs, "sections[0].content")
}

func TestValidateArtifact_OptionalFieldsSkipped(t *testing.T) {
	a := validArtifact()
	a.ArtifactNameJap = ""
	a.DescriptionJap = ""
	a.ExternalURL = ""
	a.ReferenceLinks = nil
	a.AudioGuide = nil

	assert.Nil(t, ValidateArtifact(a))
}

func TestFieldErrors_AddFirstMessageWins(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("zoneName", "first")
	errs.Add("zoneName", "second")

	assert.Equal(t, "first", errs["zoneName"])
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{
		"zoneName":     "bad zone",
		"artifactName": "missing",
	}}

	assert.Equal(t, "validation failed: artifactName, zoneName", err.Error())
}
