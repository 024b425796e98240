package internal

import "sync/atomic"

// Observer is one registration of a wake callback on a cell.
type Observer struct {
	cell *Cell
	wake func(value any)

	// cleared before the observer leaves the cell's list
	attached atomic.Bool
}

func (o *Observer) Attached() bool {
	return o.attached.Load()
}

func (o *Observer) Detach() bool {
	return o.cell.Detach(o)
}
