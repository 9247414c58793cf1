package otgraph

// Option is an optional value, used for fields which may be absent in a
// font, such as anchors of a cursive attachment or the stylistic-set number
// of a glyph classification.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None is the absent value of type T.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome is true if a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone is true if no value is present.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Unwrap returns the value together with its presence flag.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// MustUnwrap returns the value and panics if there is none.
func (o Option[T]) MustUnwrap() T {
	if !o.ok {
		panic("otgraph: unwrap of empty option")
	}
	return o.value
}

// Or returns the value if present, def otherwise.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}
