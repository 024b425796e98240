package shared

import (
	"log/slog"

	"github.com/AnatoleLucet/shared/internal"
)

// ErrMaxDepth is the error (wrapped) a fan-out panics with when wakes nest deeper than the cell's limit.
var ErrMaxDepth = internal.ErrMaxDepth

// Monitor receives attach, detach and update events from cells.
type Monitor = internal.Monitor

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Cell is a piece of state shared by any number of observers.
// Create it once with NewCell and share the returned handle.
type Cell[T comparable] struct {
	cell   *internal.Cell
	setter *Setter[T]
}

// NewCell creates a new cell holding initial.
// Each call creates an independent cell, even for identical initial values.
func NewCell[T comparable](initial T, opts ...Option) *Cell[T] {
	cfg := internal.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := internal.NewCell(initial, cfg)

	return &Cell[T]{
		cell:   c,
		setter: &Setter[T]{cell: c},
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return as[T](c.cell.Read())
}

// Setter returns the cell's setter. It is the same pointer on every call.
func (c *Cell[T]) Setter() *Setter[T] {
	return c.setter
}

// Set replaces the value, see Setter.Set.
func (c *Cell[T]) Set(v T) { c.setter.Set(v) }

// Update replaces the value with fn(current), see Setter.Update.
func (c *Cell[T]) Update(fn func(T) T) { c.setter.Update(fn) }

// Apply resolves u against the current value, see Setter.Apply.
func (c *Cell[T]) Apply(u Update[T]) { c.setter.Apply(u) }

// Subscribe registers wake to be called with the new value after every change.
// The returned function detaches it; once it returns wake is never called again.
// Calling it more than once is a no-op.
func (c *Cell[T]) Subscribe(wake func(T)) (unsubscribe func()) {
	o := c.cell.Attach(func(v any) {
		wake(as[T](v))
	})

	return func() { o.Detach() }
}

// Observers returns the number of attached observers.
func (c *Cell[T]) Observers() int {
	return c.cell.Observers()
}

// Name returns the name used in logs and metrics.
func (c *Cell[T]) Name() string {
	return c.cell.Name()
}

// Setter is the single mutation entrypoint of a cell.
type Setter[T comparable] struct {
	cell *internal.Cell
}

// Set replaces the value with v and wakes every observer, unless v == current.
func (s *Setter[T]) Set(v T) {
	s.Apply(Value(v))
}

// Update replaces the value with fn(current) and wakes every observer, unless the result == current.
// fn runs while the cell is locked and must not access the same cell.
// If fn panics the value is left untouched and the panic propagates.
func (s *Setter[T]) Update(fn func(T) T) {
	s.Apply(Transform(fn))
}

// Apply resolves u against the current value and stores the result if it differs.
func (s *Setter[T]) Apply(u Update[T]) {
	s.cell.Write(func(current any) any {
		return u.Resolve(as[T](current))
	})
}

// Option configures a cell.
type Option func(*internal.Config)

// WithName names the cell in logs and metrics. Cells are named cell1, cell2, ... by default.
func WithName(name string) Option {
	return func(c *internal.Config) {
		c.Name = name
	}
}

// WithLogger sets the logger receiving debug records. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}

// WithMonitor reports the cell's events to m.
func WithMonitor(m Monitor) Option {
	return func(c *internal.Config) {
		c.Monitor = m
	}
}

// WithMaxDepth limits how deep updates made from inside wakes may nest. 0 disables the limit.
func WithMaxDepth(depth int) Option {
	return func(c *internal.Config) {
		c.MaxDepth = depth
	}
}
