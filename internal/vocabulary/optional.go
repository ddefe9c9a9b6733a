package vocabulary

// Optional holds a decoded field value together with whether the field was
// present. Records keep the raw Optional and apply their defaults in
// accessors via Or, so the defaulting rule lives in one place.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an unset Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was set
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value was decoded
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Or returns the value when set, otherwise fallback
func (o Optional[T]) Or(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}
