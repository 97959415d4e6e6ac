package upload

import (
	"context"
	"image"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/freshmart/admin-console/internal/domain"
)

// State is the phase of the upload pipeline on one form.
type State string

const (
	// StateIdle means no file is in flight; the form shows the existing
	// image, a pasted link, or nothing.
	StateIdle State = "idle"
	// StatePreview means a file was selected and awaits cropping.
	StatePreview State = "preview"
	// StateUploading means the cropped, compressed payload is on the wire.
	StateUploading State = "uploading"
	// StateUploaded means the backend accepted the payload; the asset is
	// ready to be saved with the entity.
	StateUploaded State = "uploaded"
	// StateFailed means the upload did not complete; the form keeps its
	// previous image reference.
	StateFailed State = "failed"
)

// Snapshot is a point-in-time view of an orchestrator, serialized to the
// progress endpoint.
type Snapshot struct {
	State    State   `json:"state"`
	Progress float64 `json:"progress"` // 0..1, meaningful while uploading
	Link     string  `json:"link,omitempty"`
	Asset    *Asset  `json:"asset,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Orchestrator drives the image pipeline of a single entity form: select,
// crop, compress, upload with progress, and rollback. It tracks the asset
// already persisted on the entity so that replacing an image deletes the
// old file only after the save commits; a failed upload or an abandoned
// form never touches the stored image.
type Orchestrator struct {
	backend      Backend
	maxBytes     int
	maxDimension int
	onFailure    func(error) // set before sharing, called without the lock

	mu       sync.Mutex
	state    State
	original image.Image
	link     string
	asset    *Asset // uploaded but not yet committed
	existing Asset  // persisted on the entity before this form session
	err      error
	cancel   context.CancelFunc

	sent  atomic.Int64
	total atomic.Int64
}

// NewOrchestrator creates an orchestrator for a form whose entity
// currently holds existing (zero Asset for a create form). Zero limits
// fall back to the compression defaults.
func NewOrchestrator(backend Backend, maxBytes, maxDimension int, existing Asset) *Orchestrator {
	return &Orchestrator{
		backend:      backend,
		maxBytes:     maxBytes,
		maxDimension: maxDimension,
		state:        StateIdle,
		existing:     existing,
	}
}

// Snapshot returns the current pipeline state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := Snapshot{State: o.state, Link: o.link}
	if o.asset != nil {
		a := *o.asset
		s.Asset = &a
	}
	if o.err != nil {
		s.Error = o.err.Error()
	}
	if total := o.total.Load(); total > 0 {
		s.Progress = float64(o.sent.Load()) / float64(total)
		if s.Progress > 1 {
			s.Progress = 1
		}
	}
	return s
}

// Select decodes a newly chosen file and moves to the preview phase.
// Selecting while an earlier upload is in flight cancels it; an earlier
// uncommitted upload is rolled back.
func (o *Orchestrator) Select(data []byte) error {
	img, err := DecodeImage(data)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.abandonPendingLocked()
	o.original = img
	o.state = StatePreview
	o.err = nil
	o.sent.Store(0)
	o.total.Store(0)
	o.mu.Unlock()
	return nil
}

// Bounds returns the selected image's dimensions for the crop UI.
func (o *Orchestrator) Bounds() (image.Rectangle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.original == nil {
		return image.Rectangle{}, domain.NewAppError(domain.CodeValidation, "no image selected", nil)
	}
	return o.original.Bounds(), nil
}

// Crop finalizes the crop area, compresses the result, and starts the
// upload. The upload runs asynchronously; poll Snapshot or call Wait for
// completion. Passing the full image bounds uploads uncropped.
func (o *Orchestrator) Crop(rect image.Rectangle) error {
	o.mu.Lock()
	if o.state != StatePreview || o.original == nil {
		o.mu.Unlock()
		return domain.NewAppError(domain.CodeValidation, "no image awaiting crop", nil)
	}
	img := o.original
	o.mu.Unlock()

	cropped, err := Crop(img, rect)
	if err != nil {
		return err
	}
	payload, err := Compress(cropped, o.maxBytes, o.maxDimension)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	o.mu.Lock()
	if o.state != StatePreview {
		// Superseded by another Select or a Reset while compressing.
		o.mu.Unlock()
		cancel()
		return domain.NewAppError(domain.CodeValidation, "no image awaiting crop", nil)
	}
	o.state = StateUploading
	o.cancel = cancel
	o.sent.Store(0)
	o.total.Store(int64(len(payload)))
	o.mu.Unlock()

	filename := NewFilename(time.Now())
	go o.runUpload(ctx, filename, payload)
	return nil
}

func (o *Orchestrator) runUpload(ctx context.Context, filename string, payload []byte) {
	reader := &countingReader{data: payload, sent: &o.sent}
	asset, err := o.backend.Upload(ctx, filename, reader, int64(len(payload)))

	o.mu.Lock()

	if o.state != StateUploading {
		o.mu.Unlock()
		// The form moved on; if the late upload succeeded anyway, the
		// file is orphaned and removed best-effort.
		if err == nil && asset != nil {
			go o.deleteBestEffort(*asset)
		}
		return
	}

	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	if err != nil {
		o.state = StateFailed
		o.err = err
		o.sent.Store(0)
		o.total.Store(0)
		onFailure := o.onFailure
		o.mu.Unlock()
		if onFailure != nil {
			onFailure(err)
		}
		return
	}
	o.state = StateUploaded
	o.asset = asset
	o.original = nil
	o.mu.Unlock()
}

// Wait blocks until the pipeline leaves the uploading phase or ctx ends.
func (o *Orchestrator) Wait(ctx context.Context) (Snapshot, error) {
	for {
		s := o.Snapshot()
		if s.State != StateUploading {
			return s, nil
		}
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}
}

// PasteLink records an externally hosted image URL. A completed file
// upload still takes precedence over the link when the form is saved.
func (o *Orchestrator) PasteLink(url string) {
	o.mu.Lock()
	o.link = url
	o.mu.Unlock()
}

// Reference returns the asset the form would persist right now: a
// completed upload wins over a pasted link, which wins over the image
// already on the entity. A selection that has not finished uploading
// never leaks into the saved entity.
func (o *Orchestrator) Reference() Asset {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateUploaded && o.asset != nil {
		return *o.asset
	}
	if o.link != "" {
		return Asset{URL: o.link}
	}
	return o.existing
}

// Commit finalizes a successful entity save. If the save replaced the
// previously stored image with a newly uploaded one, the old file is
// deleted now, never before the save succeeded. The pipeline resets
// around the committed asset.
func (o *Orchestrator) Commit(ctx context.Context) error {
	o.mu.Lock()
	saved := o.referenceLocked()
	replaced := o.existing
	o.existing = saved
	o.asset = nil
	o.link = ""
	o.original = nil
	o.state = StateIdle
	o.err = nil
	o.mu.Unlock()

	if replaced.PublicID != "" && replaced != saved {
		return o.backend.Delete(ctx, replaced)
	}
	return nil
}

func (o *Orchestrator) referenceLocked() Asset {
	if o.state == StateUploaded && o.asset != nil {
		return *o.asset
	}
	if o.link != "" {
		return Asset{URL: o.link}
	}
	return o.existing
}

// Reset abandons the form session: in-flight work is cancelled, an
// uploaded but uncommitted file is removed, and the entity's stored image
// is left exactly as it was.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.abandonPendingLocked()
	o.link = ""
	o.original = nil
	o.state = StateIdle
	o.err = nil
	o.sent.Store(0)
	o.total.Store(0)
	o.mu.Unlock()
}

// abandonPendingLocked cancels any in-flight upload and rolls back an
// uncommitted uploaded asset. Callers must hold o.mu.
func (o *Orchestrator) abandonPendingLocked() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	if o.asset != nil {
		go o.deleteBestEffort(*o.asset)
		o.asset = nil
	}
}

func (o *Orchestrator) deleteBestEffort(asset Asset) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = o.backend.Delete(ctx, asset)
}

// countingReader feeds the payload to the backend while exposing how many
// bytes were consumed, which drives the progress bar.
type countingReader struct {
	data []byte
	off  int
	sent *atomic.Int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	r.sent.Add(int64(n))
	return n, nil
}
