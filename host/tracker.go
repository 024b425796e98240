package host

import (
	"sync"

	"github.com/AnatoleLucet/shared/internal"
)

// the instance rendering on each goroutine
var activeInstances sync.Map

func currentInstance() *Instance {
	if inst, ok := activeInstances.Load(internal.GID()); ok {
		return inst.(*Instance)
	}

	return nil
}

func runWithInstance(inst *Instance, fn func()) {
	gid := internal.GID()

	prev, hadPrev := activeInstances.Load(gid)
	activeInstances.Store(gid, inst)

	defer func() {
		if hadPrev {
			activeInstances.Store(gid, prev)
		} else {
			activeInstances.Delete(gid)
		}
	}()

	fn()
}
