// Package listquery implements the query-state controller shared by every
// list view in the console: products, orders, customers, and contacts.
//
// Each page owns one Controller. The controller tracks {keyword, page,
// limit, filter}, debounces keyword changes so typing does not flood the
// remote API, re-queries immediately on page/filter/limit changes, clamps
// the page when the server reports fewer pages than the one selected, and
// discards stale responses so the newest request always wins.
package listquery

import (
	"context"
	"sync"
	"time"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/pkg"
)

// DefaultDebounce is the quiet period applied to keyword changes.
const DefaultDebounce = 400 * time.Millisecond

// Fetch loads one page of results for the given query. Implementations are
// the remote repository List methods.
type Fetch[T any] func(ctx context.Context, req domain.PageRequest) (*domain.PageResult[T], error)

// State is the published snapshot of a controller: the effective query, the
// last successfully loaded page, and the in-flight/error flags. Err holds
// the last fetch failure message; it clears on the next successful load.
type State[T any] struct {
	Query     domain.PageRequest
	Items     []T
	Paginator domain.Paginator
	Loading   bool
	Err       string
}

// Controller drives the list-query lifecycle for one page instance.
// All methods are safe for concurrent use.
type Controller[T any] struct {
	fetch    Fetch[T]
	debounce time.Duration

	base       context.Context
	baseCancel context.CancelFunc

	mu       sync.Mutex
	state    State[T]
	seq      uint64
	timer    *time.Timer
	inflight context.CancelFunc
	subs     map[chan State[T]]struct{}
	closed   bool
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	debounce time.Duration
	limit    int
	filter   string
}

// WithDebounce overrides the keyword quiet period.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithLimit sets the initial page size.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// WithFilter sets the initial filter value.
func WithFilter(v string) Option {
	return func(o *options) { o.filter = v }
}

// New creates a controller around fetch. Call Refresh to load the first
// page and Close when the owning view goes away.
func New[T any](fetch Fetch[T], opts ...Option) *Controller[T] {
	o := options{debounce: DefaultDebounce, limit: 10}
	for _, opt := range opts {
		opt(&o)
	}

	base, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		fetch:      fetch,
		debounce:   o.debounce,
		base:       base,
		baseCancel: cancel,
		state: State[T]{
			Query: domain.PageRequest{Page: 1, Limit: o.limit, Filter: o.filter},
		},
		subs: make(map[chan State[T]]struct{}),
	}
}

// State returns the current snapshot.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a channel receiving state snapshots. The channel is
// buffered latest-wins: a slow consumer skips intermediate states.
func (c *Controller[T]) Subscribe() (<-chan State[T], func()) {
	ch := make(chan State[T], 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// SetKeyword updates the search keyword, resets to page 1, and schedules a
// debounced re-query. Rapid successive calls collapse into one request.
func (c *Controller[T]) SetKeyword(keyword string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Query.Keyword = keyword
	c.state.Query.Page = 1
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		c.startFetchLocked()
		c.mu.Unlock()
	})
	c.mu.Unlock()
}

// SetFilter updates the filter value, resets to page 1, and re-queries
// immediately.
func (c *Controller[T]) SetFilter(filter string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state.Query.Filter = filter
	c.state.Query.Page = 1
	c.stopTimerLocked()
	c.startFetchLocked()
}

// SetLimit updates the page size, resets to page 1, and re-queries
// immediately. Non-positive values are ignored.
func (c *Controller[T]) SetLimit(limit int) {
	if limit < 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state.Query.Limit = limit
	c.state.Query.Page = 1
	c.stopTimerLocked()
	c.startFetchLocked()
}

// SetPage moves to the given page and re-queries immediately, leaving
// keyword, filter, and limit untouched. Non-positive pages are ignored.
func (c *Controller[T]) SetPage(page int) {
	if page < 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state.Query.Page = page
	c.stopTimerLocked()
	c.startFetchLocked()
}

// Refresh re-runs the current query immediately. Used for the initial load
// and after mutations that change the underlying data.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopTimerLocked()
	c.startFetchLocked()
}

// Close abandons any pending or in-flight work and releases subscribers.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimerLocked()
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
	c.baseCancel()
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
}

func (c *Controller[T]) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// startFetchLocked issues a new request, superseding any in-flight one.
// Callers must hold c.mu.
func (c *Controller[T]) startFetchLocked() {
	if c.closed {
		return
	}

	c.seq++
	mySeq := c.seq

	if c.inflight != nil {
		c.inflight()
	}
	ctx, cancel := context.WithCancel(c.base)
	c.inflight = cancel

	req := c.state.Query
	c.state.Loading = true
	c.publishLocked()

	go func() {
		result, err := c.fetch(ctx, req)
		cancel()

		c.mu.Lock()
		defer c.mu.Unlock()

		// A newer request was issued while this one was in flight; its
		// response must not overwrite fresher state.
		if mySeq != c.seq || c.closed {
			return
		}

		c.inflight = nil
		c.state.Loading = false

		if err != nil {
			c.state.Err = err.Error()
			c.publishLocked()
			return
		}

		c.state.Err = ""
		c.state.Items = result.Data
		c.state.Paginator = result.Paginator

		// Never leave the view on a page the server no longer has.
		if clamped := pkg.ClampPage(req.Page, result.Paginator); clamped != req.Page {
			c.state.Query.Page = clamped
			c.publishLocked()
			c.startFetchLocked()
			return
		}

		c.publishLocked()
	}()
}

// publishLocked pushes the current snapshot to all subscribers,
// latest-wins. Callers must hold c.mu.
func (c *Controller[T]) publishLocked() {
	for ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- c.state:
		default:
		}
	}
}
