package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testHost mounts sites one at a time, running mount effects right after the first render.
type testHost struct {
	current *testSite

	// runs between the first render and the mount effects
	beforeMount func()
}

type testSite struct {
	body func()

	renders  int
	rendered bool
	mounted  bool

	rerender func()
	effects  []func() func()
	cleanups []func()
}

func (h *testHost) UseRerender() func() {
	s := h.current
	if s.rerender == nil {
		s.rerender = func() {
			if s.mounted {
				h.render(s)
			}
		}
	}

	return s.rerender
}

func (h *testHost) OnMount(effect func() func()) {
	s := h.current
	if !s.rendered {
		s.effects = append(s.effects, effect)
	}
}

func (h *testHost) render(s *testSite) {
	prev := h.current
	h.current = s
	defer func() { h.current = prev }()

	s.renders++
	s.body()
}

func (h *testHost) mount(body func()) *testSite {
	s := &testSite{body: body}
	h.render(s)
	s.rendered = true

	if h.beforeMount != nil {
		h.beforeMount()
	}

	s.mounted = true
	for _, effect := range s.effects {
		if cleanup := effect(); cleanup != nil {
			s.cleanups = append(s.cleanups, cleanup)
		}
	}
	s.effects = nil

	return s
}

func (h *testHost) unmount(s *testSite) {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
	s.mounted = false
}

func TestHook(t *testing.T) {
	t.Run("counter shared by two sites", func(t *testing.T) {
		host := &testHost{}
		useCounter := MakeHook(host, 0)

		var a, b int
		var setA *Setter[int]

		siteA := host.mount(func() { a, setA = useCounter() })
		siteB := host.mount(func() { b, _ = useCounter() })
		assert.Equal(t, 0, a)
		assert.Equal(t, 0, b)

		increment := func(old int) int { return old + 1 }

		setA.Update(increment)
		assert.Equal(t, 1, a)
		assert.Equal(t, 1, b)

		setA.Update(increment)
		assert.Equal(t, 2, a)
		assert.Equal(t, 2, b)

		host.unmount(siteB)
		rendersB := siteB.renders

		setA.Set(3)
		assert.Equal(t, 3, a)
		assert.Equal(t, 2, b)
		assert.Equal(t, rendersB, siteB.renders)
		assert.Equal(t, 4, siteA.renders)
	})

	t.Run("setter is the same for every site", func(t *testing.T) {
		host := &testHost{}
		useUser := MakeHook(host, "")

		var first, second *Setter[string]
		host.mount(func() { _, first = useUser() })
		host.mount(func() { _, second = useUser() })

		assert.Same(t, first, second)
	})

	t.Run("re-render does not register again", func(t *testing.T) {
		host := &testHost{}
		count := NewCell(0)
		useCount := count.Hook(host)

		var set *Setter[int]
		host.mount(func() { _, set = useCount() })
		host.mount(func() { useCount() })
		assert.Equal(t, 2, count.Observers())

		for i := 1; i <= 5; i++ {
			set.Set(i)
		}
		assert.Equal(t, 2, count.Observers())
	})

	t.Run("unmount detaches the site", func(t *testing.T) {
		host := &testHost{}
		count := NewCell(0)
		useCount := count.Hook(host)

		site := host.mount(func() { useCount() })
		assert.Equal(t, 1, count.Observers())

		host.unmount(site)
		assert.Equal(t, 0, count.Observers())

		count.Set(1)
		assert.Equal(t, 1, site.renders)
	})

	t.Run("value changed before mount re-renders once", func(t *testing.T) {
		count := NewCell(0)
		host := &testHost{beforeMount: func() { count.Set(7) }}
		useCount := count.Hook(host)

		var seen int
		site := host.mount(func() { seen, _ = useCount() })

		assert.Equal(t, 7, seen)
		assert.Equal(t, 2, site.renders)
	})

	t.Run("hooks from separate factories are isolated", func(t *testing.T) {
		host := &testHost{}
		useA := MakeHook(host, 0)
		useB := MakeHook(host, 0)

		var b int
		var setA *Setter[int]
		host.mount(func() { _, setA = useA() })
		siteB := host.mount(func() { b, _ = useB() })

		setA.Set(1)
		assert.Equal(t, 0, b)
		assert.Equal(t, 1, siteB.renders)
	})
}
