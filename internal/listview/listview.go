// Package listview implements the list-management engine shared by every
// admin listing: a fetched collection snapshot, AND-composed filters and a
// pagination window, recomputed deterministically from those inputs.
package listview

import (
	"context"
	"sync"
)

// State describes the controller lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateMutating
	StateLoadError
)

// DefaultPageSize is applied when a page config does not set one.
const DefaultPageSize = 5

// Scope carries the identifying route parameters a fetch is scoped by,
// e.g. the parent category id for a subcategory listing.
type Scope map[string]string

// Source loads the full collection for a scope (client-side pagination).
type Source[T any] func(ctx context.Context, scope Scope) ([]T, error)

// PagedSource loads one page at a time (server-side pagination).
type PagedSource[T any] func(ctx context.Context, scope Scope, page, perPage int) (Page[T], error)

// Page is one server-side page plus its pagination metadata.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PerPage     int
	Total       int
	LastPage    int
}

// MutationKind identifies the mutation being performed.
type MutationKind int

const (
	MutationCreate MutationKind = iota
	MutationUpdate
	MutationDelete
)

// Config binds a Controller to an entity type. Exactly one of Source or
// PagedSource must be set; PagedSource switches the controller to
// server-side pagination (VisiblePage becomes a passthrough).
type Config[T any] struct {
	Source      Source[T]
	PagedSource PagedSource[T]

	// Fields exposes filterable string fields by filter key ("status", ...).
	Fields map[string]func(T) string
	// SearchFields lists the values the free-text search matches against.
	SearchFields func(T) []string

	PageSize int
	Notifier Notifier
}

// Controller owns one collection snapshot, its filter state and its
// pagination window. One instance per listing view.
type Controller[T any] struct {
	mu  sync.Mutex
	cfg Config[T]

	state    State
	snapshot []T
	loadErr  error

	filters map[string]string
	search  string
	page    int

	// server-side pagination metadata, meaningful only with PagedSource
	total    int
	lastPage int

	// issued increments per Load; a response only lands if no newer
	// Load has been issued since, so a stale fetch can never clobber
	// a fresher snapshot.
	issued  uint64
	applied uint64
}

// New constructs an idle controller. The first Load populates it.
func New[T any](cfg Config[T]) *Controller[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Controller[T]{
		cfg:     cfg,
		state:   StateIdle,
		filters: make(map[string]string),
		page:    1,
	}
}

// State returns the current lifecycle state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether a fetch is in flight; it gates skeleton rows.
func (c *Controller[T]) Loading() bool {
	return c.State() == StateLoading
}

// Err returns the error of the most recent failed load, if any.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Snapshot returns the collection held by the most recently applied load.
func (c *Controller[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

func (c *Controller[T]) serverPaginated() bool {
	return c.cfg.PagedSource != nil
}

// Load fetches the collection for scope and replaces the snapshot. Overlapping
// loads are sequenced: only the response of the latest issued call may apply,
// late arrivals of superseded calls are dropped. On failure the snapshot is
// replaced with an empty one so the view shows an empty state, never stale rows.
func (c *Controller[T]) Load(ctx context.Context, scope Scope) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.state = StateLoading
	page := c.page
	size := c.cfg.PageSize
	c.mu.Unlock()

	var (
		items []T
		meta  Page[T]
		err   error
	)
	if c.serverPaginated() {
		meta, err = c.cfg.PagedSource(ctx, scope, page, size)
		items = meta.Items
	} else {
		items, err = c.cfg.Source(ctx, scope)
	}

	c.mu.Lock()
	if seq < c.issued {
		// Superseded while in flight; the newer call owns the snapshot.
		c.mu.Unlock()
		return nil
	}
	c.applied = seq
	if err != nil {
		c.snapshot = nil
		c.total = 0
		c.lastPage = 0
		c.loadErr = err
		c.state = StateLoadError
		c.mu.Unlock()
		c.notifyError(UserMessage(err, "Gagal memuat data"))
		return err
	}
	c.snapshot = items
	c.loadErr = nil
	c.state = StateReady
	if c.serverPaginated() {
		c.total = meta.Total
		c.lastPage = meta.LastPage
	}
	c.mu.Unlock()
	return nil
}

// Mutate runs a create/update/delete operation. Success is reported and the
// collection refetched wholesale; failure is reported with the server message
// when one is available and leaves the snapshot untouched.
func (c *Controller[T]) Mutate(ctx context.Context, kind MutationKind, scope Scope, op func(context.Context) error, successMsg, failureMsg string) error {
	_ = kind

	c.mu.Lock()
	c.state = StateMutating
	c.mu.Unlock()

	if err := op(ctx); err != nil {
		c.mu.Lock()
		c.state = StateReady
		c.mu.Unlock()
		c.notifyError(UserMessage(err, failureMsg))
		return err
	}

	c.notifySuccess(successMsg)
	return c.Load(ctx, scope)
}

func (c *Controller[T]) notifySuccess(msg string) {
	if c.cfg.Notifier != nil && msg != "" {
		c.cfg.Notifier.Success(msg)
	}
}

func (c *Controller[T]) notifyError(msg string) {
	if c.cfg.Notifier != nil && msg != "" {
		c.cfg.Notifier.Error(msg)
	}
}
