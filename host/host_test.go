package host

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AnatoleLucet/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	t.Run("mount renders then runs effects in order", func(t *testing.T) {
		log := []string{}
		r := NewRoot()

		inst := r.Mount("logger", func() string {
			log = append(log, "render")
			r.OnMount(func() func() {
				log = append(log, "first effect")
				return func() { log = append(log, "first cleanup") }
			})
			r.OnMount(func() func() {
				log = append(log, "second effect")
				return func() { log = append(log, "second cleanup") }
			})
			return "hello"
		})

		assert.Equal(t, "hello", inst.Output())
		assert.True(t, inst.Mounted())

		r.Unmount(inst)
		assert.False(t, inst.Mounted())
		assert.Empty(t, r.Instances())

		assert.Equal(t, []string{
			"render",
			"first effect",
			"second effect",
			"second cleanup",
			"first cleanup",
		}, log)
	})

	t.Run("effects only run after the first render", func(t *testing.T) {
		effects := 0
		r := NewRoot()

		var rerender func()
		r.Mount("c", func() string {
			rerender = r.UseRerender()
			r.OnMount(func() func() {
				effects++
				return nil
			})
			return ""
		})

		rerender()
		rerender()
		assert.Equal(t, 1, effects)
	})

	t.Run("rerender slot is stable", func(t *testing.T) {
		r := NewRoot()

		var slots []func()
		inst := r.Mount("c", func() string {
			slots = append(slots, r.UseRerender())
			return ""
		})

		slots[0]()
		require.Len(t, slots, 2)
		assert.Equal(t, fmt.Sprintf("%p", slots[0]), fmt.Sprintf("%p", slots[1]))
		assert.Equal(t, 2, inst.Renders())
	})

	t.Run("rerender after unmount is a no-op", func(t *testing.T) {
		r := NewRoot()

		var rerender func()
		inst := r.Mount("c", func() string {
			rerender = r.UseRerender()
			return ""
		})

		r.Unmount(inst)
		rerender()
		assert.Equal(t, 1, inst.Renders())
	})

	t.Run("hooks outside render panic", func(t *testing.T) {
		r := NewRoot()

		assert.PanicsWithValue(t, ErrOutsideRender, func() { r.UseRerender() })
		assert.PanicsWithValue(t, ErrOutsideRender, func() { r.OnMount(func() func() { return nil }) })
	})

	t.Run("hooks of another root panic", func(t *testing.T) {
		a := NewRoot()
		b := NewRoot()

		assert.PanicsWithValue(t, ErrOutsideRender, func() {
			a.Mount("c", func() string {
				b.UseRerender()
				return ""
			})
		})
	})

	t.Run("dispatch reaches handlers in mount order", func(t *testing.T) {
		log := []string{}
		r := NewRoot()

		for _, name := range []string{"a", "b"} {
			r.Mount(name, func() string {
				r.UseEvent("click", func(arg string) {
					log = append(log, name+" "+arg)
				})
				return name
			})
		}

		assert.Equal(t, 2, r.Dispatch("click", "x"))
		assert.Equal(t, 0, r.Dispatch("missing", ""))
		assert.Equal(t, []string{"a x", "b x"}, log)
		assert.Equal(t, "a\nb", r.Text())
	})

	t.Run("render loop is stopped", func(t *testing.T) {
		r := NewRoot(WithMaxPasses(3))

		var rerender func()
		r.Mount("loop", func() string {
			rerender = r.UseRerender()
			// schedules itself on every render
			if rerender != nil {
				defer rerender()
			}
			return ""
		})

		var err error
		func() {
			defer func() { err, _ = recover().(error) }()
			rerender()
		}()

		assert.True(t, errors.Is(err, ErrRenderLoop))
	})

	t.Run("unmount all", func(t *testing.T) {
		log := []string{}
		r := NewRoot()

		for _, name := range []string{"a", "b"} {
			r.Mount(name, func() string {
				r.OnMount(func() func() {
					return func() { log = append(log, name) }
				})
				return ""
			})
		}

		r.UnmountAll()
		assert.Equal(t, []string{"b", "a"}, log)
		assert.Empty(t, r.Instances())
	})
}

func TestSharedHook(t *testing.T) {
	t.Run("counter displays follow the incrementer", func(t *testing.T) {
		r := NewRoot()
		useCounter := shared.MakeHook(r, 0)

		display := func() string {
			counter, _ := useCounter()
			return fmt.Sprintf("display %d", counter)
		}

		r.Mount("display", display)
		second := r.Mount("display", display)
		r.Mount("incrementer", func() string {
			counter, setCounter := useCounter()
			r.UseEvent("increment", func(string) {
				setCounter.Update(func(old int) int { return old + 1 })
			})
			return fmt.Sprintf("incrementer %d", counter)
		})

		assert.Equal(t, "display 0\ndisplay 0\nincrementer 0", r.Text())

		r.Dispatch("increment", "")
		assert.Equal(t, "display 1\ndisplay 1\nincrementer 1", r.Text())

		r.Dispatch("increment", "")
		assert.Equal(t, "display 2\ndisplay 2\nincrementer 2", r.Text())

		r.Unmount(second)
		r.Dispatch("increment", "")
		assert.Equal(t, "display 3\nincrementer 3", r.Text())
		assert.Equal(t, "display 2", second.Output())
	})

	t.Run("each instance subscribes once", func(t *testing.T) {
		r := NewRoot()
		count := shared.NewCell(0)
		useCount := count.Hook(r)

		inst := r.Mount("c", func() string {
			v, _ := useCount()
			return fmt.Sprint(v)
		})

		for i := 1; i <= 3; i++ {
			count.Set(i)
		}

		assert.Equal(t, 1, count.Observers())
		assert.Equal(t, 4, inst.Renders())
		assert.Equal(t, 3, r.Flushes())

		r.Unmount(inst)
		assert.Equal(t, 0, count.Observers())
	})
}
