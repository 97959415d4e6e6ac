package upload

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freshmart/admin-console/internal/domain"
)

// defaultIdleTimeout is how long an untouched form session survives
// before its uncommitted work is rolled back. Operators walking away from
// a half-filled form must not leak orphaned uploads forever.
const defaultIdleTimeout = 30 * time.Minute

// Manager tracks one orchestrator per open entity form, keyed by a form
// id handed to the browser when the form opens. Sessions idle past the
// timeout are closed as if abandoned.
type Manager struct {
	backend      Backend
	maxBytes     int
	maxDimension int
	idleTimeout  time.Duration
	onFailure    func(error)

	mu    sync.Mutex
	forms map[string]*formEntry
}

type formEntry struct {
	o     *Orchestrator
	timer *time.Timer
}

// NewManager creates a manager whose orchestrators share the given
// backend and compression limits.
func NewManager(backend Backend, maxBytes, maxDimension int) *Manager {
	return &Manager{
		backend:      backend,
		maxBytes:     maxBytes,
		maxDimension: maxDimension,
		idleTimeout:  defaultIdleTimeout,
		forms:        make(map[string]*formEntry),
	}
}

// SetIdleTimeout overrides the idle expiry for sessions opened after the
// call. Zero disables expiry.
func (m *Manager) SetIdleTimeout(d time.Duration) {
	m.mu.Lock()
	m.idleTimeout = d
	m.mu.Unlock()
}

// OnUploadFailure registers a handler invoked whenever an upload on any
// session fails. The console posts a notification from it. Applies to
// sessions opened after the call.
func (m *Manager) OnUploadFailure(fn func(error)) {
	m.mu.Lock()
	m.onFailure = fn
	m.mu.Unlock()
}

// Open starts a form session around the asset currently stored on the
// entity and returns the session id.
func (m *Manager) Open(existing Asset) (string, *Orchestrator) {
	id := uuid.NewString()
	o := NewOrchestrator(m.backend, m.maxBytes, m.maxDimension, existing)

	m.mu.Lock()
	o.onFailure = m.onFailure
	e := &formEntry{o: o}
	if m.idleTimeout > 0 {
		e.timer = time.AfterFunc(m.idleTimeout, func() { m.Close(id) })
	}
	m.forms[id] = e
	m.mu.Unlock()
	return id, o
}

// Get returns the orchestrator for a form session and extends its idle
// deadline.
func (m *Manager) Get(id string) (*Orchestrator, error) {
	m.mu.Lock()
	e, ok := m.forms[id]
	if ok && e.timer != nil {
		e.timer.Reset(m.idleTimeout)
	}
	m.mu.Unlock()
	if !ok {
		return nil, domain.NewAppError(domain.CodeNotFound, "unknown form session", nil)
	}
	return e.o, nil
}

// Close ends a form session. Uncommitted uploads are rolled back.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	e, ok := m.forms[id]
	delete(m.forms, id)
	m.mu.Unlock()
	if ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		e.o.Reset()
	}
}

// Release ends a form session after a committed save, keeping the
// committed asset untouched.
func (m *Manager) Release(id string) {
	m.mu.Lock()
	e, ok := m.forms[id]
	delete(m.forms, id)
	m.mu.Unlock()
	if ok && e.timer != nil {
		e.timer.Stop()
	}
}

// CloseAll rolls back every open session; called on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	forms := m.forms
	m.forms = make(map[string]*formEntry)
	m.mu.Unlock()

	for _, e := range forms {
		if e.timer != nil {
			e.timer.Stop()
		}
		e.o.Reset()
	}
}
