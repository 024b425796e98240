package demo

import (
	"slices"

	"github.com/AnatoleLucet/shared"
	"github.com/AnatoleLucet/shared/host"
)

// App mounts the counter and logged in user components on a root.
type App struct {
	Root *host.Root

	Counter *shared.Cell[int]
	User    *shared.Cell[string]

	displays []*host.Instance
}

func New(r *host.Root, cfg Config, opts ...shared.Option) *App {
	if cfg.MaxDepth != nil {
		opts = append(opts, shared.WithMaxDepth(*cfg.MaxDepth))
	}

	app := &App{
		Root:    r,
		Counter: shared.NewCell(cfg.InitialCounter, append(slices.Clone(opts), shared.WithName("counter"))...),
		User:    shared.NewCell(cfg.InitialUser, append(slices.Clone(opts), shared.WithName("user"))...),
	}

	useCounter := app.Counter.Hook(r)
	useUser := app.User.Hook(r)

	for range cfg.CounterDisplays {
		app.displays = append(app.displays, r.Mount("CounterDisplay", CounterDisplay(useCounter)))
	}
	r.Mount("CounterIncrementer", CounterIncrementer(r, useCounter))
	r.Mount("LoggedInUserDisplay", LoggedInUserDisplay(useUser))
	r.Mount("LoggedInUserSetter", LoggedInUserSetter(r, useUser))

	return app
}

// Displays returns the counter displays still mounted.
func (a *App) Displays() []*host.Instance {
	var mounted []*host.Instance
	for _, d := range a.displays {
		if d.Mounted() {
			mounted = append(mounted, d)
		}
	}

	return mounted
}

// UnmountDisplay unmounts the i-th mounted counter display. It reports false if there is none.
func (a *App) UnmountDisplay(i int) bool {
	displays := a.Displays()
	if i < 0 || i >= len(displays) {
		return false
	}

	a.Root.Unmount(displays[i])
	return true
}

func (a *App) Close() {
	a.Root.UnmountAll()
}
