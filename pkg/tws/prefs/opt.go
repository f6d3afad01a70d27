package prefs

// Opt is a tri-state patch field. The zero value means "not part of
// this patch, keep the current value". Clear means "explicitly unset
// the value". Set carries a replacement. The distinction between an
// omitted field and an explicit clear is load-bearing for Apply.
type Opt[T any] struct {
	present bool
	clear   bool
	value   T
}

// Set marks the field as part of the patch with a new value.
func Set[T any](v T) Opt[T] {
	return Opt[T]{present: true, value: v}
}

// Clear marks the field as part of the patch with no value.
func Clear[T any]() Opt[T] {
	return Opt[T]{present: true, clear: true}
}

// apply resolves the patch field against the current pointer value.
func (o Opt[T]) apply(cur *T) *T {
	if !o.present {
		return cur
	}
	if o.clear {
		return nil
	}
	v := o.value
	return &v
}
