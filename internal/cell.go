package internal

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// Monitor receives lifecycle events from cells.
type Monitor interface {
	ObserverAttached(cell string)
	ObserverDetached(cell string)
	Updated(cell string, woken int)
	Skipped(cell string)
}

type Config struct {
	Name     string
	MaxDepth int
	Monitor  Monitor
	Logger   *slog.Logger
}

const DefaultMaxDepth = 100

func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

var cellCounter atomic.Uint64

func nextName() string {
	return fmt.Sprintf("cell%d", cellCounter.Add(1))
}

type Cell struct {
	mu sync.Mutex

	name  string
	value any

	// registration order, at most one entry per observer
	observers []*Observer

	guard   *DepthGuard
	monitor Monitor
	logger  *slog.Logger
}

func NewCell(initial any, cfg Config) *Cell {
	name := cfg.Name
	if name == "" {
		name = nextName()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Cell{
		name:    name,
		value:   initial,
		guard:   NewDepthGuard(cfg.MaxDepth),
		monitor: cfg.Monitor,
		logger:  logger,
	}
}

func (c *Cell) Name() string {
	return c.name
}

// Read returns the current value.
func (c *Cell) Read() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.value
}

// Write resolves the next value from the current one. When it differs from the current value
// it replaces it and wakes every attached observer in registration order.
// It reports whether the value changed.
func (c *Cell) Write(resolve func(current any) any) bool {
	observers, changed := c.commit(resolve)
	if !changed {
		c.logger.Debug("cell update skipped", "cell", c.name)
		if c.monitor != nil {
			c.monitor.Skipped(c.name)
		}
		return false
	}

	c.logger.Debug("cell updated", "cell", c.name, "observers", len(observers))
	woken := c.notify(observers)

	if c.monitor != nil {
		c.monitor.Updated(c.name, woken)
	}

	return true
}

func (c *Cell) commit(resolve func(current any) any) ([]*Observer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a panicking resolve leaves the value untouched
	next := resolve(c.value)
	if isEqual(c.value, next) {
		return nil, false
	}

	c.value = next

	// cloning so observers can attach/detach during the fan-out
	return slices.Clone(c.observers), true
}

func (c *Cell) notify(observers []*Observer) int {
	c.guard.Enter()
	defer c.guard.Exit()

	woken := 0
	for _, o := range observers {
		// detached after the snapshot was taken
		if !o.Attached() {
			continue
		}

		o.wake(c.Read())
		woken++
	}

	return woken
}

// Attach registers wake and returns its observer. Each call is a distinct registration.
func (c *Cell) Attach(wake func(value any)) *Observer {
	o := &Observer{cell: c, wake: wake}
	o.attached.Store(true)

	c.mu.Lock()
	c.observers = append(c.observers, o)
	c.mu.Unlock()

	c.logger.Debug("observer attached", "cell", c.name)
	if c.monitor != nil {
		c.monitor.ObserverAttached(c.name)
	}

	return o
}

// Detach removes the observer. It reports false if it was already detached.
func (c *Cell) Detach(o *Observer) bool {
	if o == nil || o.cell != c || !o.attached.Swap(false) {
		return false
	}

	c.mu.Lock()
	if i := slices.Index(c.observers, o); i != -1 {
		c.observers = slices.Delete(c.observers, i, i+1)
	}
	c.mu.Unlock()

	c.logger.Debug("observer detached", "cell", c.name)
	if c.monitor != nil {
		c.monitor.ObserverDetached(c.name)
	}

	return true
}

// Observers returns the number of attached observers.
func (c *Cell) Observers() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.observers)
}

func isEqual(a, b any) bool {
	return a == b
}
