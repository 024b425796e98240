package host

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/AnatoleLucet/shared"
)

var (
	ErrOutsideRender = errors.New("host: hook called outside a component render")
	ErrRenderLoop    = errors.New("host: too many re-render passes")
)

// Component renders the text of one component instance. Hooks may only be called from inside it.
type Component func() string

var _ shared.Host = (*Root)(nil)

// Root owns a flat list of mounted component instances.
//
// Root is not safe for concurrent use: mount, dispatch and set from the goroutine driving it.
type Root struct {
	instances []*Instance
	scheduler *scheduler

	nextID int
	logger *slog.Logger
}

type Option func(*Root)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		r.logger = logger
	}
}

// WithMaxPasses limits how many re-render passes a single flush may take.
func WithMaxPasses(n int) Option {
	return func(r *Root) {
		r.scheduler.maxPasses = n
	}
}

func NewRoot(opts ...Option) *Root {
	r := &Root{
		scheduler: newScheduler(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Mount renders c, then runs its mount effects.
func (r *Root) Mount(name string, c Component) *Instance {
	r.nextID++
	inst := &Instance{
		root:      r,
		id:        r.nextID,
		name:      name,
		component: c,
	}
	r.instances = append(r.instances, inst)

	r.render(inst)
	inst.mounted = true
	r.logger.Debug("component mounted", "component", name, "id", inst.id)

	inst.runMountEffects()

	r.flush()

	return inst
}

// Unmount runs the instance's cleanups, last registered first, and removes it.
func (r *Root) Unmount(inst *Instance) {
	if inst == nil || !inst.mounted || inst.root != r {
		return
	}

	inst.dispose()

	if i := slices.Index(r.instances, inst); i != -1 {
		r.instances = slices.Delete(r.instances, i, i+1)
	}

	r.logger.Debug("component unmounted", "component", inst.name, "id", inst.id)
}

// UnmountAll unmounts every instance, most recently mounted first.
func (r *Root) UnmountAll() {
	for i := len(r.instances) - 1; i >= 0; i-- {
		r.Unmount(r.instances[i])
	}
}

// Instances returns the mounted instances in mount order.
func (r *Root) Instances() []*Instance {
	return slices.Clone(r.instances)
}

// Text returns the output of every mounted instance, one per line.
func (r *Root) Text() string {
	outputs := make([]string, 0, len(r.instances))
	for _, inst := range r.instances {
		if inst.output != "" {
			outputs = append(outputs, inst.output)
		}
	}

	return strings.Join(outputs, "\n")
}

// Flushes returns how many re-render flushes completed.
func (r *Root) Flushes() int {
	return r.scheduler.Time()
}

// Dispatch calls the handlers registered for event by every mounted instance, in mount order.
// It reports how many handlers ran.
func (r *Root) Dispatch(event, arg string) int {
	var handlers []func(string)
	for _, inst := range r.instances {
		if h, ok := inst.handlers[event]; ok {
			handlers = append(handlers, h)
		}
	}

	for _, h := range handlers {
		h(arg)
	}

	r.flush()

	return len(handlers)
}

// UseRerender returns the re-render trigger of the instance currently rendering.
func (r *Root) UseRerender() func() {
	inst := r.current()

	if inst.rerender == nil {
		inst.rerender = func() { r.schedule(inst) }
	}

	return inst.rerender
}

// OnMount registers effect on the instance currently rendering. It is ignored after the first render.
func (r *Root) OnMount(effect func() func()) {
	inst := r.current()

	if !inst.rendered {
		inst.effects = append(inst.effects, effect)
	}
}

// UseEvent registers handler for event on the instance currently rendering.
// Handlers are replaced on every render.
func (r *Root) UseEvent(event string, handler func(arg string)) {
	inst := r.current()
	inst.handlers[event] = handler
}

func (r *Root) current() *Instance {
	inst := currentInstance()
	if inst == nil || inst.root != r {
		panic(ErrOutsideRender)
	}

	return inst
}

func (r *Root) render(inst *Instance) {
	inst.handlers = make(map[string]func(string))
	inst.dirty = false

	runWithInstance(inst, func() {
		inst.output = inst.component()
	})

	inst.rendered = true
	inst.renders++
}

func (r *Root) schedule(inst *Instance) {
	if !inst.mounted {
		return
	}

	inst.dirty = true
	r.scheduler.Schedule()
	r.flush()
}

func (r *Root) flush() {
	err := r.scheduler.Run(func() bool {
		rendered := false
		for _, inst := range slices.Clone(r.instances) {
			if inst.mounted && inst.dirty {
				r.render(inst)
				rendered = true
			}
		}

		return rendered
	})

	if err != nil {
		panic(err)
	}
}
