// Package notify implements the console's transient notification channel.
// Services post notifications after mutations; the app shell streams them
// to the browser over SSE. Every notification auto-dismisses after a fixed
// interval unless dismissed earlier by the operator.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for presentation.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is one entry in the on-screen stack.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event is what subscribers receive: a notification appearing or leaving
// the stack.
type Event struct {
	Kind         string       `json:"kind"` // "added" or "dismissed"
	Notification Notification `json:"notification"`
}

// Hub fans notifications out to subscribers and owns the auto-dismiss
// timers. Safe for concurrent use.
type Hub struct {
	dismissAfter time.Duration

	mu     sync.Mutex
	active map[string]*entry
	subs   map[chan Event]struct{}
	closed bool
}

type entry struct {
	n     Notification
	timer *time.Timer
}

// NewHub creates a hub whose notifications auto-dismiss after the given
// interval.
func NewHub(dismissAfter time.Duration) *Hub {
	return &Hub{
		dismissAfter: dismissAfter,
		active:       make(map[string]*entry),
		subs:         make(map[chan Event]struct{}),
	}
}

// Notify adds a notification to the stack and returns its id. The
// notification dismisses itself when its interval elapses; dismissal
// timers run independently, so an older notification never outlives its
// own interval because a newer one arrived.
func (h *Hub) Notify(message string, severity Severity) string {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return n.ID
	}
	e := &entry{n: n}
	e.timer = time.AfterFunc(h.dismissAfter, func() { h.Dismiss(n.ID) })
	h.active[n.ID] = e
	h.broadcastLocked(Event{Kind: "added", Notification: n})
	h.mu.Unlock()

	return n.ID
}

// Info posts an info notification.
func (h *Hub) Info(message string) string { return h.Notify(message, SeverityInfo) }

// Success posts a success notification.
func (h *Hub) Success(message string) string { return h.Notify(message, SeveritySuccess) }

// Warning posts a warning notification.
func (h *Hub) Warning(message string) string { return h.Notify(message, SeverityWarning) }

// Error posts an error notification.
func (h *Hub) Error(message string) string { return h.Notify(message, SeverityError) }

// Dismiss removes a notification early. Dismissing an id that already left
// the stack is a no-op, so manual dismissal racing the auto-dismiss timer
// is harmless.
func (h *Hub) Dismiss(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.active[id]
	if !ok {
		return
	}
	e.timer.Stop()
	delete(h.active, id)
	h.broadcastLocked(Event{Kind: "dismissed", Notification: e.n})
}

// Active returns the notifications currently on the stack, oldest first.
func (h *Hub) Active() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notification, 0, len(h.active))
	for _, e := range h.active {
		out = append(out, e.n)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.Before(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Subscribe registers an event channel. The buffer absorbs bursts; a
// subscriber that falls further behind misses events rather than blocking
// the hub.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Close stops all timers and releases subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, e := range h.active {
		e.timer.Stop()
		delete(h.active, id)
	}
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *Hub) broadcastLocked(ev Event) {
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
