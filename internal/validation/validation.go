// Package validation holds the single validation contract every artifact
// record must satisfy before it is persisted. The API write path is the
// authoritative caller; any client-side checks must mirror these rules,
// never redeclare them.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/museumguide/backend/internal/models"
)

// FieldErrors maps a field key to a user-facing message. All violations are
// collected, not just the first.
type FieldErrors map[string]string

// Add records a violation for field unless one is already present, so the
// highest-priority message per field wins.
func (e FieldErrors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// ValidationError wraps collected field errors so services can return them
// through a plain error value.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// ValidateArtifact checks a candidate record against the full contract and
// returns nil when it is valid. Checks run in the documented priority order
// but every violation is reported.
func ValidateArtifact(a *models.Artifact) FieldErrors {
	errs := FieldErrors{}

	if !a.ZoneName.Valid() {
		errs.Add("zoneName", "zone name must be one of the registered zones")
	}

	if strings.TrimSpace(a.ArtifactName) == "" {
		errs.Add("artifactName", "artifact name is required")
	}

	if strings.TrimSpace(a.Description) == "" {
		errs.Add("description", "description is required")
	}

	if len(a.Sections) == 0 {
		errs.Add("sections", "at least one section is required")
	}
	for i, s := range a.Sections {
		if strings.TrimSpace(s.Title) == "" {
			errs.Add(fmt.Sprintf("sections[%d].title", i), "section title is required")
		}
		if strings.TrimSpace(s.Content) == "" {
			errs.Add(fmt.Sprintf("sections[%d].content", i), "section content is required")
		}
	}

	for i, link := range a.ReferenceLinks {
		if !models.IsAbsoluteURL(link) {
			errs.Add(fmt.Sprintf("referenceLinks[%d]", i), "reference link must be an absolute URL")
		}
	}
	if a.ExternalURL != "" && !models.IsAbsoluteURL(a.ExternalURL) {
		errs.Add("externalURL", "external URL must be an absolute URL")
	}

	if a.ProfilePicture == nil {
		errs.Add("profilePicture", "profile picture is required")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Check is a convenience wrapper returning a *ValidationError suitable for
// the service layer, or nil when the record is valid.
func Check(a *models.Artifact) error {
	if errs := ValidateArtifact(a); errs != nil {
		return &ValidationError{Fields: errs}
	}
	return nil
}
