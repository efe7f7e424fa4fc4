package models

import (
	"errors"
	"fmt"
	"strings"
)

// Draft is the mutable form state of one artifact edit session, before the
// record is assembled and submitted. It owns the structural rules the form
// must hold at all times: the section list always starts with the Overview
// block, and reference links are only ever appended as valid URLs.
type Draft struct {
	Artifact
}

// ErrOverviewSection is returned when a caller tries to remove the first
// section. The Overview block can only be edited, never removed.
var ErrOverviewSection = errors.New("the overview section cannot be removed")

// NewDraft returns a draft with the mandatory Overview section in place.
func NewDraft() *Draft {
	return &Draft{Artifact: Artifact{
		Sections:       []Section{{Title: "Overview"}},
		PDFs:           []AssetReference{},
		MediaGallery:   []AssetReference{},
		ReferenceLinks: []string{},
	}}
}

// AddSection appends a new titled content block after the existing ones.
func (d *Draft) AddSection(s Section) {
	d.Sections = append(d.Sections, s)
}

// RemoveSection deletes the section at index i. Index 0 is the Overview
// block and is refused.
func (d *Draft) RemoveSection(i int) error {
	if i == 0 {
		return ErrOverviewSection
	}
	if i < 0 || i >= len(d.Sections) {
		return fmt.Errorf("section index %d out of range", i)
	}
	d.Sections = append(d.Sections[:i], d.Sections[i+1:]...)
	return nil
}

// AddReferenceLink appends link to the reference list after checking it is
// an absolute URL. On rejection the list is left unchanged.
func (d *Draft) AddReferenceLink(link string) error {
	link = strings.TrimSpace(link)
	if !IsAbsoluteURL(link) {
		return fmt.Errorf("invalid reference link %q", link)
	}
	d.ReferenceLinks = append(d.ReferenceLinks, link)
	return nil
}

// RemoveReferenceLink deletes the first occurrence of link from the list.
func (d *Draft) RemoveReferenceLink(link string) {
	for i, l := range d.ReferenceLinks {
		if l == link {
			d.ReferenceLinks = append(d.ReferenceLinks[:i], d.ReferenceLinks[i+1:]...)
			return
		}
	}
}
