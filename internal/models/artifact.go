// Package models defines the artifact record aggregate and its embedded
// value types as they are persisted and served over the API.
package models

import (
	"net/url"
	"strings"
	"time"
)

// ZoneName is the fixed exhibition-area classification attached to every
// artifact record.
type ZoneName string

// The closed set of exhibition zones. Records referencing any other value
// are rejected by validation.
const (
	Zone1 ZoneName = "zone1"
	Zone2 ZoneName = "zone2"
	Zone3 ZoneName = "zone3"
	Zone4 ZoneName = "zone4"
	Zone5 ZoneName = "zone5"
	Zone6 ZoneName = "zone6"
	Zone7 ZoneName = "zone7"
	Zone8 ZoneName = "zone8"
	Zone9 ZoneName = "zone9"
)

// AllZones lists every valid zone in display order.
var AllZones = []ZoneName{Zone1, Zone2, Zone3, Zone4, Zone5, Zone6, Zone7, Zone8, Zone9}

// Valid reports whether z is one of the fixed zone identifiers.
func (z ZoneName) Valid() bool {
	for _, zone := range AllZones {
		if z == zone {
			return true
		}
	}
	return false
}

// AssetReference describes one uploaded binary file and its durable URL.
// It is created exactly once, by the upload service after a completed
// object-store put, and is immutable afterwards.
type AssetReference struct {
	OriginalName string    `json:"originalName"`
	FileName     string    `json:"fileName"`
	FileSize     int64     `json:"fileSize"`
	Extension    string    `json:"extension"`
	MimeType     string    `json:"mimeType"`
	FileURL      string    `json:"fileURL"`
	UploadDate   time.Time `json:"uploadDate"`
}

// IsImage reports whether the asset is displayable in the image partition
// of a media gallery.
func (a AssetReference) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

// IsVideo reports whether the asset is displayable in the video partition
// of a media gallery.
func (a AssetReference) IsVideo() bool {
	return strings.HasPrefix(a.MimeType, "video/")
}

// Section is one titled content block within an artifact record. The first
// section is the "Overview" block by convention. Japanese variants are
// independently optional.
type Section struct {
	Title      string `json:"title"`
	TitleJap   string `json:"titleJap,omitempty"`
	Content    string `json:"content"`
	ContentJap string `json:"contentJap,omitempty"`
}

// Artifact is the persisted entity describing one exhibited item. It
// exclusively owns its embedded sections and asset references; the
// underlying bytes live in the object store and are only referenced here.
type Artifact struct {
	ID              string           `json:"id,omitempty"`
	ZoneName        ZoneName         `json:"zoneName"`
	ArtifactName    string           `json:"artifactName"`
	ArtifactNameJap string           `json:"artifactNameJap,omitempty"`
	Description     string           `json:"description"`
	DescriptionJap  string           `json:"descriptionJap,omitempty"`
	Sections        []Section        `json:"sections"`
	ProfilePicture  *AssetReference  `json:"profilePicture,omitempty"`
	PDFs            []AssetReference `json:"pdfs"`
	AudioGuide      *AssetReference  `json:"audioGuide,omitempty"`
	MediaGallery    []AssetReference `json:"mediaGallery"`
	ReferenceLinks  []string         `json:"referenceLinks"`
	ExternalURL     string           `json:"externalURL,omitempty"`
	CreatedAt       time.Time        `json:"createdAt,omitzero"`
	UpdatedAt       time.Time        `json:"updatedAt,omitzero"`
}

// Images returns the gallery entries with an image/ MIME prefix, preserving
// order. Entries matching neither partition are stored but not returned by
// either helper.
func (a *Artifact) Images() []AssetReference {
	var out []AssetReference
	for _, m := range a.MediaGallery {
		if m.IsImage() {
			out = append(out, m)
		}
	}
	return out
}

// Videos returns the gallery entries with a video/ MIME prefix, preserving
// order.
func (a *Artifact) Videos() []AssetReference {
	var out []AssetReference
	for _, m := range a.MediaGallery {
		if m.IsVideo() {
			out = append(out, m)
		}
	}
	return out
}

// AssetURLs returns the URL of every asset the record references: profile
// picture, each PDF, each gallery entry and the audio guide. It is the
// input for cascade deletion and for diffing old against new references on
// update.
func (a *Artifact) AssetURLs() []string {
	var urls []string
	if a.ProfilePicture != nil {
		urls = append(urls, a.ProfilePicture.FileURL)
	}
	for _, p := range a.PDFs {
		urls = append(urls, p.FileURL)
	}
	for _, m := range a.MediaGallery {
		urls = append(urls, m.FileURL)
	}
	if a.AudioGuide != nil {
		urls = append(urls, a.AudioGuide.FileURL)
	}
	return urls
}

// IsAbsoluteURL reports whether s parses as an absolute http(s) URL with a
// dotted host. This is the single URL rule shared by the validation
// contract and the draft edit session.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return host != "" && strings.Contains(host, ".")
}
