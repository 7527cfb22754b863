package service

// Patch carries a three-state value for partial updates of nullable
// columns: absent (leave the column untouched), set, or null
// (explicitly clear it).
type Patch[T any] struct {
	present bool
	value   *T
}

// PatchSet returns a patch that sets the column to v.
func PatchSet[T any](v T) Patch[T] {
	return Patch[T]{present: true, value: &v}
}

// PatchClear returns a patch that clears the column to null.
func PatchClear[T any]() Patch[T] {
	return Patch[T]{present: true}
}

// apply writes the patch into a column map used with partial updates.
func (p Patch[T]) apply(fields map[string]any, column string) {
	if !p.present {
		return
	}
	if p.value == nil {
		fields[column] = nil
		return
	}
	fields[column] = *p.value
}
