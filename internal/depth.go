package internal

import (
	"errors"
	"fmt"
	"sync"
)

var ErrMaxDepth = errors.New("maximum nested update depth exceeded")

// DepthGuard counts nested fan-outs per goroutine.
// A fan-out started from inside a wake increases the depth by 1.
type DepthGuard struct {
	// 0 means unlimited
	max int

	depths sync.Map // goroutine id -> *int
}

func NewDepthGuard(max int) *DepthGuard {
	return &DepthGuard{max: max}
}

// Enter increments the depth of the calling goroutine.
// It panics with an error wrapping ErrMaxDepth when the limit is exceeded.
func (g *DepthGuard) Enter() {
	depth := g.counter()
	*depth++

	if g.max > 0 && *depth > g.max {
		g.Exit()
		panic(fmt.Errorf("%w (limit %d)", ErrMaxDepth, g.max))
	}
}

func (g *DepthGuard) Exit() {
	gid := GID()

	v, ok := g.depths.Load(gid)
	if !ok {
		return
	}

	depth := v.(*int)
	*depth--
	if *depth <= 0 {
		g.depths.Delete(gid)
	}
}

// Depth returns the current depth of the calling goroutine.
func (g *DepthGuard) Depth() int {
	if v, ok := g.depths.Load(GID()); ok {
		return *v.(*int)
	}

	return 0
}

func (g *DepthGuard) counter() *int {
	gid := GID()

	if v, ok := g.depths.Load(gid); ok {
		return v.(*int)
	}

	depth := new(int)
	g.depths.Store(gid, depth)
	return depth
}
