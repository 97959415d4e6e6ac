package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/freshmart/admin-console/internal/notify"
)

// fakeBackend records uploads and deletes in memory. Set fail to reject
// uploads; set gate to hold uploads until the channel closes.
type fakeBackend struct {
	mu       sync.Mutex
	fail     bool
	gate     chan struct{}
	uploads  []Asset
	deletes  []Asset
	uploaded map[string][]byte
	lastCtx  context.Context
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{uploaded: make(map[string][]byte)}
}

func (b *fakeBackend) Upload(ctx context.Context, filename string, payload io.Reader, size int64) (*Asset, error) {
	b.mu.Lock()
	b.lastCtx = ctx
	b.mu.Unlock()

	data, err := io.ReadAll(payload)
	if err != nil {
		return nil, err
	}
	if b.gate != nil {
		select {
		case <-b.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return nil, errors.New("store rejected upload")
	}
	asset := Asset{URL: "https://img.example.com/" + filename, PublicID: filename}
	b.uploads = append(b.uploads, asset)
	b.uploaded[filename] = data
	return &asset, nil
}

func (b *fakeBackend) Delete(ctx context.Context, asset Asset) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletes = append(b.deletes, asset)
	delete(b.uploaded, asset.PublicID)
	return nil
}

func (b *fakeBackend) deleted() []Asset {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Asset, len(b.deletes))
	copy(out, b.deletes)
	return out
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func mustUpload(t *testing.T, o *Orchestrator, data []byte) Snapshot {
	t.Helper()
	if err := o.Select(data); err != nil {
		t.Fatalf("select: %v", err)
	}
	bounds, err := o.Bounds()
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	if err := o.Crop(bounds); err != nil {
		t.Fatalf("crop: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap, err := o.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	return snap
}

func TestOrchestrator_HappyPath(t *testing.T) {
	backend := newFakeBackend()
	o := NewOrchestrator(backend, 0, 0, Asset{})

	snap := mustUpload(t, o, testPNG(t, 40, 30))
	if snap.State != StateUploaded {
		t.Fatalf("expected uploaded, got %s (%s)", snap.State, snap.Error)
	}
	if snap.Asset == nil || snap.Asset.URL == "" || snap.Asset.PublicID == "" {
		t.Fatalf("incomplete asset: %+v", snap.Asset)
	}
	if snap.Progress != 1 {
		t.Errorf("expected full progress, got %f", snap.Progress)
	}
	if got := o.Reference(); got != *snap.Asset {
		t.Errorf("reference should be the uploaded asset, got %+v", got)
	}

	// The per-upload context is released once the transfer settles.
	backend.mu.Lock()
	uploadCtx := backend.lastCtx
	backend.mu.Unlock()
	if uploadCtx.Err() == nil {
		t.Error("upload context not released after completion")
	}
}

func TestOrchestrator_ReferencePrecedence(t *testing.T) {
	existing := Asset{URL: "https://img.example.com/old.jpg", PublicID: "old.jpg"}

	t.Run("existing_when_idle", func(t *testing.T) {
		o := NewOrchestrator(newFakeBackend(), 0, 0, existing)
		if got := o.Reference(); got != existing {
			t.Errorf("expected existing asset, got %+v", got)
		}
	})

	t.Run("link_beats_existing", func(t *testing.T) {
		o := NewOrchestrator(newFakeBackend(), 0, 0, existing)
		o.PasteLink("https://cdn.example.com/pasted.jpg")
		got := o.Reference()
		if got.URL != "https://cdn.example.com/pasted.jpg" || got.PublicID != "" {
			t.Errorf("expected pasted link without public id, got %+v", got)
		}
	})

	t.Run("upload_beats_link", func(t *testing.T) {
		o := NewOrchestrator(newFakeBackend(), 0, 0, existing)
		o.PasteLink("https://cdn.example.com/pasted.jpg")
		snap := mustUpload(t, o, testPNG(t, 20, 20))
		if got := o.Reference(); got != *snap.Asset {
			t.Errorf("completed upload must win over link, got %+v", got)
		}
	})
}

func TestOrchestrator_InFlightUploadNeverReferenced(t *testing.T) {
	backend := newFakeBackend()
	backend.gate = make(chan struct{})
	existing := Asset{URL: "https://img.example.com/old.jpg", PublicID: "old.jpg"}
	o := NewOrchestrator(backend, 0, 0, existing)

	if err := o.Select(testPNG(t, 20, 20)); err != nil {
		t.Fatal(err)
	}
	bounds, _ := o.Bounds()
	if err := o.Crop(bounds); err != nil {
		t.Fatal(err)
	}

	// Upload is stalled; the form must still reference the stored image.
	if got := o.Reference(); got != existing {
		t.Errorf("in-flight upload leaked into reference: %+v", got)
	}

	close(backend.gate)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if snap, _ := o.Wait(ctx); snap.State != StateUploaded {
		t.Fatalf("expected uploaded after gate opened, got %s", snap.State)
	}
}

func TestOrchestrator_FailedUploadKeepsExisting(t *testing.T) {
	backend := newFakeBackend()
	backend.fail = true
	existing := Asset{URL: "https://img.example.com/old.jpg", PublicID: "old.jpg"}
	o := NewOrchestrator(backend, 0, 0, existing)

	if err := o.Select(testPNG(t, 20, 20)); err != nil {
		t.Fatal(err)
	}
	bounds, _ := o.Bounds()
	if err := o.Crop(bounds); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap, _ := o.Wait(ctx)
	if snap.State != StateFailed || snap.Error == "" {
		t.Fatalf("expected failed state with error, got %+v", snap)
	}
	if snap.Progress != 0 {
		t.Errorf("failed upload must reset progress, got %f", snap.Progress)
	}

	if got := o.Reference(); got != existing {
		t.Errorf("failed upload must not change the reference, got %+v", got)
	}
	if err := o.Commit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(backend.deleted()) != 0 {
		t.Error("stored image deleted although no replacement was uploaded")
	}
}

func TestOrchestrator_ReplaceDeletesOldOnlyAfterCommit(t *testing.T) {
	backend := newFakeBackend()
	existing := Asset{URL: "https://img.example.com/old.jpg", PublicID: "old.jpg"}
	o := NewOrchestrator(backend, 0, 0, existing)

	snap := mustUpload(t, o, testPNG(t, 20, 20))

	if len(backend.deleted()) != 0 {
		t.Fatal("old image deleted before the save committed")
	}

	if err := o.Commit(context.Background()); err != nil {
		t.Fatal(err)
	}
	deleted := backend.deleted()
	if len(deleted) != 1 || deleted[0] != existing {
		t.Fatalf("expected old asset deleted after commit, got %+v", deleted)
	}
	if got := o.Reference(); got != *snap.Asset {
		t.Errorf("committed asset should now be the stored image, got %+v", got)
	}
}

func TestOrchestrator_ResetRollsBackUncommitted(t *testing.T) {
	backend := newFakeBackend()
	existing := Asset{URL: "https://img.example.com/old.jpg", PublicID: "old.jpg"}
	o := NewOrchestrator(backend, 0, 0, existing)

	snap := mustUpload(t, o, testPNG(t, 20, 20))
	o.Reset()

	deadline := time.Now().Add(2 * time.Second)
	for len(backend.deleted()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	deleted := backend.deleted()
	if len(deleted) != 1 || deleted[0] != *snap.Asset {
		t.Fatalf("expected uncommitted upload rolled back, got %+v", deleted)
	}
	if got := o.Reference(); got != existing {
		t.Errorf("stored image must survive an abandoned form, got %+v", got)
	}
}

func TestManager_Sessions(t *testing.T) {
	m := NewManager(newFakeBackend(), 0, 0)

	id, o := m.Open(Asset{URL: "https://img.example.com/a.jpg", PublicID: "a.jpg"})
	got, err := m.Get(id)
	if err != nil || got != o {
		t.Fatalf("expected session back, got %v (%v)", got, err)
	}

	m.Close(id)
	if _, err := m.Get(id); err == nil {
		t.Error("expected unknown session after close")
	}
}

func TestManager_FailedUploadNotifies(t *testing.T) {
	backend := newFakeBackend()
	backend.fail = true

	m := NewManager(backend, 0, 0)
	hub := notify.NewHub(time.Minute)
	defer hub.Close()
	m.OnUploadFailure(func(err error) {
		hub.Error("image upload failed: " + err.Error())
	})

	_, o := m.Open(Asset{})
	snap := mustUpload(t, o, testPNG(t, 20, 20))
	if snap.State != StateFailed {
		t.Fatalf("expected failed state, got %s", snap.State)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		active := hub.Active()
		if len(active) == 1 {
			if active[0].Severity != notify.SeverityError {
				t.Fatalf("expected error severity, got %s", active[0].Severity)
			}
			if !strings.Contains(active[0].Message, "store rejected upload") {
				t.Fatalf("notification missing cause: %q", active[0].Message)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("failed upload never reached the notification channel")
}

func TestManager_IdleExpiry(t *testing.T) {
	m := NewManager(newFakeBackend(), 0, 0)
	m.SetIdleTimeout(40 * time.Millisecond)

	id, _ := m.Open(Asset{})

	// Touching the session keeps it alive past the original deadline.
	time.Sleep(25 * time.Millisecond)
	if _, err := m.Get(id); err != nil {
		t.Fatalf("session expired too early: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	if _, err := m.Get(id); err != nil {
		t.Fatalf("touched session expired: %v", err)
	}

	// Untouched past the timeout, the session is gone. Each Get extends
	// the deadline, so only check once after the wait.
	time.Sleep(200 * time.Millisecond)
	if _, err := m.Get(id); err == nil {
		t.Error("idle session never expired")
	}
}
