package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft_SeedsOverviewSection(t *testing.T) {
	d := NewDraft()

	require.Len(t, d.Sections, 1)
	assert.Equal(t, "Overview", d.Sections[0].Title)
	assert.NotNil(t, d.PDFs)
	assert.NotNil(t, d.MediaGallery)
	assert.NotNil(t, d.ReferenceLinks)
}

func TestDraft_AddRemoveSection(t *testing.T) {
	d := NewDraft()
	d.AddSection(Section{Title: "History", Content: "Edo period"})
	d.AddSection(Section{Title: "Restoration", Content: "2019 restoration notes"})
	require.Len(t, d.Sections, 3)

	require.NoError(t, d.RemoveSection(1))
	require.Len(t, d.Sections, 2)
	assert.Equal(t, "Overview", d.Sections[0].Title)
	assert.Equal(t, "Restoration", d.Sections[1].Title)
}

func TestDraft_RemoveSectionRefusesOverview(t *testing.T) {
	d := NewDraft()
	d.AddSection(Section{Title: "History"})

	err := d.RemoveSection(0)
	assert.ErrorIs(t, err, ErrOverviewSection)
	assert.Len(t, d.Sections, 2)
}

func TestDraft_RemoveSectionOutOfRange(t *testing.T) {
	d := NewDraft()

	assert.Error(t, d.RemoveSection(1))
	assert.Error(t, d.RemoveSection(-1))
}

func TestDraft_AddReferenceLink(t *testing.T) {
	d := NewDraft()

	require.NoError(t, d.AddReferenceLink("https://example.com/catalogue"))
	require.NoError(t, d.AddReferenceLink("  http://museum.example.org/entry  "))

	assert.Equal(t, []string{
		"https://example.com/catalogue",
		"http://museum.example.org/entry",
	}, d.ReferenceLinks)
}

func TestDraft_AddReferenceLinkRejectsInvalid(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.AddReferenceLink("https://example.com/one"))

	assert.Error(t, d.AddReferenceLink("not-a-url"))
	assert.Error(t, d.AddReferenceLink("ftp://example.com/file"))
	assert.Error(t, d.AddReferenceLink(""))

	// The list is untouched on rejection.
	assert.Equal(t, []string{"https://example.com/one"}, d.ReferenceLinks)
}

func TestDraft_RemoveReferenceLink(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.AddReferenceLink("https://example.com/a"))
	require.NoError(t, d.AddReferenceLink("https://example.com/b"))

	d.RemoveReferenceLink("https://example.com/a")
	assert.Equal(t, []string{"https://example.com/b"}, d.ReferenceLinks)

	// Removing an absent link is a no-op.
	d.RemoveReferenceLink("https://example.com/missing")
	assert.Equal(t, []string{"https://example.com/b"}, d.ReferenceLinks)
}
