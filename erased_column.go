package archway

import "reflect"

// erasedColumn is a type-erased handle to a columnStore[T], exposing a
// fixed operations table built once at construction time from closures
// captured over the concrete *columnStore[T]. This is the Go-idiomatic
// replacement for a vtable: an explicit, inspectable record of function
// handles rather than closures that round-trip raw pointers.
type erasedColumn struct {
	id      ComponentID
	elem    reflect.Type
	storage any

	addEmptyRow func() int
	length      func() int
	swapRemove  func(row int)
	cloneEmpty  func() *erasedColumn
	// moveRowInto moves storage's value at srcRow into dst at dstRow.
	// dst must wrap the same element type; TypeMismatch otherwise.
	moveRowInto func(dst *erasedColumn, srcRow, dstRow int) error
}

func newErasedColumn[T any](id ComponentID) *erasedColumn {
	cs := newColumnStore[T]()
	return wrapColumn[T](id, cs)
}

func wrapColumn[T any](id ComponentID, cs *columnStore[T]) *erasedColumn {
	var zero T
	ec := &erasedColumn{
		id:      id,
		elem:    reflect.TypeOf(zero),
		storage: cs,
	}
	ec.addEmptyRow = cs.addEmptyRow
	ec.length = cs.length
	ec.swapRemove = cs.swapRemove
	ec.cloneEmpty = func() *erasedColumn {
		return newErasedColumn[T](id)
	}
	ec.moveRowInto = func(dst *erasedColumn, srcRow, dstRow int) error {
		dstCS, ok := dst.storage.(*columnStore[T])
		if !ok {
			return errTypeMismatch(ec.elem, dst.elem)
		}
		dstCS.set(dstRow, cs.take(srcRow))
		return nil
	}
	return ec
}

// downcastColumn returns the concrete *columnStore[T] backing ec, or a
// TypeMismatch error if ec wraps a different element type.
func downcastColumn[T any](ec *erasedColumn) (*columnStore[T], error) {
	cs, ok := ec.storage.(*columnStore[T])
	if !ok {
		var zero T
		return nil, errTypeMismatch(reflect.TypeOf(zero), ec.elem)
	}
	return cs, nil
}
