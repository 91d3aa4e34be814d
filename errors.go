package archway

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/TheBitDrifter/bark"
)

// Sentinel error kinds. Use errors.Is against these, not type assertions,
// since the wrapped errors carry per-call context via fmt.Errorf("%w: ...").
var (
	// ErrMissing is returned when a requested component or archetype is
	// not present for the given key.
	ErrMissing = errors.New("missing")

	// ErrBadRow is returned when a row index is out of range for its column.
	ErrBadRow = errors.New("bad row")

	// ErrTypeMismatch is returned when an erased column is downcast to the
	// wrong element type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrAliasConflict is returned when a query or mutation would violate
	// the single-writer-or-many-readers aliasing rule.
	ErrAliasConflict = errors.New("alias conflict")

	// ErrCardinality is returned by Single when a query's result set does
	// not contain exactly one row.
	ErrCardinality = errors.New("cardinality error")
)

func errMissingComponent(e EntityID, t reflect.Type) error {
	return bark.AddTrace(fmt.Errorf("%w: entity %d has no component %s", ErrMissing, e, t))
}

func errMissingArchetype(fp Fingerprint) error {
	return bark.AddTrace(fmt.Errorf("%w: no archetype table for fingerprint %x", ErrMissing, uint64(fp)))
}

func errBadRow(row, length int) error {
	return bark.AddTrace(fmt.Errorf("%w: row %d out of range [0,%d)", ErrBadRow, row, length))
}

func errTypeMismatch(want, got reflect.Type) error {
	return bark.AddTrace(fmt.Errorf("%w: column holds %s, requested %s", ErrTypeMismatch, got, want))
}

func errAliasConflict(t reflect.Type) error {
	return bark.AddTrace(fmt.Errorf("%w: component %s already borrowed incompatibly", ErrAliasConflict, t))
}

func errCardinality(n int) error {
	return bark.AddTrace(fmt.Errorf("%w: query has %d matching rows, want exactly 1", ErrCardinality, n))
}
