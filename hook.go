package shared

// Host is the component framework a Hook is called from.
type Host interface {
	// UseRerender returns the re-render trigger of the component currently rendering.
	// Every call during the lifetime of the same component returns a trigger for the same slot.
	UseRerender() func()

	// OnMount runs effect once after the first render of the component currently rendering.
	// The cleanup it returns runs once before the component is removed.
	OnMount(effect func() func())
}

// Hook returns the current value of a cell and its setter,
// and keeps the calling component subscribed while it is mounted.
type Hook[T comparable] func() (T, *Setter[T])

// MakeHook creates a cell holding initial and binds it to host.
// Call it once per piece of shared data and share the returned hook.
func MakeHook[T comparable](host Host, initial T, opts ...Option) Hook[T] {
	return NewCell(initial, opts...).Hook(host)
}

// Hook binds the cell to host.
func (c *Cell[T]) Hook(host Host) Hook[T] {
	return func() (T, *Setter[T]) {
		rerender := host.UseRerender()
		value := c.Get()

		host.OnMount(func() func() {
			unsubscribe := c.Subscribe(func(T) { rerender() })

			// changed between the render and the mount
			if c.Get() != value {
				rerender()
			}

			return unsubscribe
		})

		return value, c.setter
	}
}
