// Package uploader implements the staged-upload batch that turns a set of
// locally selected files into durable asset references before the record
// referencing them is submitted.
package uploader

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/museumguide/backend/internal/models"
)

// Kind tags a staged file with its slot in the artifact record.
type Kind string

const (
	KindProfile Kind = "profile"
	KindPDF     Kind = "pdf"
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
)

// Valid reports whether k is a known staging kind.
func (k Kind) Valid() bool {
	switch k {
	case KindProfile, KindPDF, KindImage, KindVideo, KindAudio:
		return true
	}
	return false
}

// singleton reports whether the kind keeps only the most recently staged
// file.
func (k Kind) singleton() bool {
	return k == KindProfile || k == KindAudio
}

// Status is the lifecycle state of one staged file within a batch.
type Status string

const (
	StatusStaged    Status = "staged"
	StatusUploading Status = "uploading"
	StatusUploaded  Status = "uploaded"
	StatusFailed    Status = "failed"
)

// File is one locally selected file handed to the batch. Open must return a
// fresh reader on each call so a failed upload can be retried. Preview is an
// optional local display resource released when the file leaves the batch.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
	Preview     io.Closer
}

// Uploader performs one file upload and returns the resulting asset
// reference. The progress callback receives cumulative bytes sent.
type Uploader interface {
	Upload(ctx context.Context, kind Kind, file File, progress func(int64)) (*models.AssetReference, error)
}

var (
	errUnknownKind = errors.New("unknown staging kind")
	errNotStaged   = errors.New("file is not staged")
)

// FileError reports one file's upload failure without affecting siblings.
type FileError struct {
	Kind Kind
	Name string
	Err  error
}

func (e FileError) Error() string {
	return string(e.Kind) + " " + e.Name + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error { return e.Err }

// Result groups the asset references of every uploaded file in the batch by
// kind, plus the per-file errors of this commit. A batch with failures still
// reports every successful reference.
type Result struct {
	Profile *models.AssetReference
	Audio   *models.AssetReference
	PDFs    []models.AssetReference
	Images  []models.AssetReference
	Videos  []models.AssetReference
	Errors  []FileError
}

// FileStatus is a point-in-time view of one staged file, safe to hand to
// any observer without exposing batch internals.
type FileStatus struct {
	Kind      Kind
	Name      string
	Status    Status
	Size      int64
	BytesSent int64
	Err       error
}

type staged struct {
	file      File
	status    Status
	ref       *models.AssetReference
	err       error
	bytesSent atomic.Int64
}

// Batch owns the staging state of a single edit session. It is safe for
// concurrent use, though a session normally has one writer.
type Batch struct {
	uploader Uploader

	mu      sync.Mutex
	profile *staged
	audio   *staged
	pdfs    []*staged
	images  []*staged
	videos  []*staged
}

// NewBatch returns an empty batch uploading through u.
func NewBatch(u Uploader) *Batch {
	return &Batch{uploader: u}
}

// Stage records files for later upload. No network call happens here.
// Profile and audio are singleton slots: the most recently staged file
// replaces any previous selection and the replaced preview is released.
// List kinds accumulate; a file whose name is already staged for that kind
// is dropped and its preview released, so repeated staging cannot produce
// duplicates.
func (b *Batch) Stage(kind Kind, files ...File) error {
	if !kind.Valid() {
		return FileError{Kind: kind, Err: errUnknownKind}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, f := range files {
		if kind.singleton() {
			slot := b.slot(kind)
			if *slot != nil {
				closePreview((*slot).file)
			}
			*slot = &staged{file: f, status: StatusStaged}
			continue
		}

		list := b.list(kind)
		if findByName(*list, f.Name) != nil {
			closePreview(f)
			continue
		}
		*list = append(*list, &staged{file: f, status: StatusStaged})
	}
	return nil
}

// Unstage removes one previously staged file by name and releases its
// preview. Removing a file that was already uploaded does not delete it from
// the asset store; that cleanup belongs to the record's update/delete path.
func (b *Batch) Unstage(kind Kind, name string) error {
	if !kind.Valid() {
		return FileError{Kind: kind, Name: name, Err: errUnknownKind}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if kind.singleton() {
		slot := b.slot(kind)
		if *slot == nil || (*slot).file.Name != name {
			return FileError{Kind: kind, Name: name, Err: errNotStaged}
		}
		closePreview((*slot).file)
		*slot = nil
		return nil
	}

	list := b.list(kind)
	for i, s := range *list {
		if s.file.Name == name {
			closePreview(s.file)
			*list = append((*list)[:i], (*list)[i+1:]...)
			return nil
		}
	}
	return FileError{Kind: kind, Name: name, Err: errNotStaged}
}

// Commit uploads every staged file that has not yet been uploaded. Uploads
// are mutually independent and fan out concurrently; one file's failure
// never aborts its siblings. Files already uploaded in a previous commit are
// not re-sent, and their references are included again in the result.
// Committing an empty batch performs no network calls.
func (b *Batch) Commit(ctx context.Context) Result {
	b.mu.Lock()
	var pending []batchItem
	for _, item := range b.all() {
		if item.s.status == StatusStaged || item.s.status == StatusFailed {
			item.s.status = StatusUploading
			item.s.err = nil
			pending = append(pending, item)
		}
	}
	b.mu.Unlock()

	var wg sync.WaitGroup
	for _, item := range pending {
		wg.Add(1)
		go func(kind Kind, s *staged) {
			defer wg.Done()
			ref, err := b.uploader.Upload(ctx, kind, s.file, s.bytesSent.Store)
			b.mu.Lock()
			defer b.mu.Unlock()
			if err != nil {
				s.status = StatusFailed
				s.err = err
				return
			}
			s.status = StatusUploaded
			s.ref = ref
		}(item.kind, item.s)
	}
	wg.Wait()

	return b.result()
}

// Reset discards all staged and committed state and releases every preview
// resource. Used after a successful record submission or when the edit
// session is abandoned.
func (b *Batch) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, item := range b.all() {
		closePreview(item.s.file)
	}
	b.profile = nil
	b.audio = nil
	b.pdfs = nil
	b.images = nil
	b.videos = nil
}

// Snapshot returns the current per-file state of the batch, for progress
// observation decoupled from the batch internals.
func (b *Batch) Snapshot() []FileStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []FileStatus
	for _, item := range b.all() {
		out = append(out, FileStatus{
			Kind:      item.kind,
			Name:      item.s.file.Name,
			Status:    item.s.status,
			Size:      item.s.file.Size,
			BytesSent: item.s.bytesSent.Load(),
			Err:       item.s.err,
		})
	}
	return out
}

// HasFailures reports whether any file in the batch is in the failed state.
// Callers block final record submission until failures are removed or
// retried successfully.
func (b *Batch) HasFailures() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, item := range b.all() {
		if item.s.status == StatusFailed {
			return true
		}
	}
	return false
}

func (b *Batch) result() Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	var res Result
	for _, item := range b.all() {
		switch item.s.status {
		case StatusUploaded:
			switch item.kind {
			case KindProfile:
				res.Profile = item.s.ref
			case KindAudio:
				res.Audio = item.s.ref
			case KindPDF:
				res.PDFs = append(res.PDFs, *item.s.ref)
			case KindImage:
				res.Images = append(res.Images, *item.s.ref)
			case KindVideo:
				res.Videos = append(res.Videos, *item.s.ref)
			}
		case StatusFailed:
			res.Errors = append(res.Errors, FileError{Kind: item.kind, Name: item.s.file.Name, Err: item.s.err})
		}
	}
	return res
}

type batchItem struct {
	kind Kind
	s    *staged
}

// all flattens the batch in stable kind order. Callers must hold b.mu.
func (b *Batch) all() []batchItem {
	var items []batchItem
	if b.profile != nil {
		items = append(items, batchItem{KindProfile, b.profile})
	}
	for _, s := range b.pdfs {
		items = append(items, batchItem{KindPDF, s})
	}
	for _, s := range b.images {
		items = append(items, batchItem{KindImage, s})
	}
	for _, s := range b.videos {
		items = append(items, batchItem{KindVideo, s})
	}
	if b.audio != nil {
		items = append(items, batchItem{KindAudio, b.audio})
	}
	return items
}

func (b *Batch) slot(kind Kind) **staged {
	if kind == KindProfile {
		return &b.profile
	}
	return &b.audio
}

func (b *Batch) list(kind Kind) *[]*staged {
	switch kind {
	case KindPDF:
		return &b.pdfs
	case KindImage:
		return &b.images
	default:
		return &b.videos
	}
}

func findByName(list []*staged, name string) *staged {
	for _, s := range list {
		if s.file.Name == name {
			return s
		}
	}
	return nil
}

func closePreview(f File) {
	if f.Preview != nil {
		f.Preview.Close()
	}
}
