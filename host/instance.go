package host

// Instance is one mounted component.
type Instance struct {
	root      *Root
	id        int
	name      string
	component Component

	output  string
	renders int

	rendered bool
	mounted  bool
	dirty    bool

	// the instance's re-render slot, allocated by the first UseRerender
	rerender func()

	// mount effects queued during the first render
	effects  []func() func()
	cleanups []func()

	handlers map[string]func(string)
}

func (i *Instance) ID() int        { return i.id }
func (i *Instance) Name() string   { return i.name }
func (i *Instance) Output() string { return i.output }
func (i *Instance) Renders() int   { return i.renders }
func (i *Instance) Mounted() bool  { return i.mounted }

func (i *Instance) runMountEffects() {
	effects := i.effects
	i.effects = nil

	for _, effect := range effects {
		if cleanup := effect(); cleanup != nil {
			i.cleanups = append(i.cleanups, cleanup)
		}
	}
}

func (i *Instance) dispose() {
	// cleanups run while still mounted so they can detach before wakes stop being handled
	for j := len(i.cleanups) - 1; j >= 0; j-- {
		i.cleanups[j]()
	}
	i.cleanups = nil

	i.mounted = false
	i.dirty = false
	i.handlers = nil
}
