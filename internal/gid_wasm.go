//go:build wasm

package internal

// GID returns 0 so wasm builds share a single depth counter, like the single event loop they run on.
func GID() int64 {
	return 0
}
