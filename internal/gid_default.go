//go:build !wasm

package internal

import "github.com/petermattis/goid"

// GID returns the id of the calling goroutine.
func GID() int64 {
	return goid.Get()
}
