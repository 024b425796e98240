package shared

// Update is either a literal value or a transform of the current value.
// The zero Update is Value of the zero T.
type Update[T any] struct {
	value     T
	transform func(T) T
}

// Value returns an update that replaces the current value with v.
func Value[T any](v T) Update[T] {
	return Update[T]{value: v}
}

// Transform returns an update that replaces the current value with fn(current).
// A nil fn keeps the current value.
func Transform[T any](fn func(T) T) Update[T] {
	if fn == nil {
		fn = func(current T) T { return current }
	}

	return Update[T]{transform: fn}
}

// IsTransform reports whether u was built with Transform.
func (u Update[T]) IsTransform() bool {
	return u.transform != nil
}

// Resolve returns the value u yields when applied to current.
func (u Update[T]) Resolve(current T) T {
	if u.transform != nil {
		return u.transform(current)
	}

	return u.value
}
