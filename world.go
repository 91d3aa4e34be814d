package archway

import "reflect"

// storageLocation is the (fingerprint, row) pair identifying where an
// entity's data currently lives.
type storageLocation struct {
	fingerprint Fingerprint
	row         int
}

// World owns every entity, the archetype registry, the entity-to-location
// map, and the borrow guard. It is the single logical owner of all ECS
// state; mutation (Spawn/Attach/Detach) is exclusive, and a query borrows
// the world for the duration of its iteration.
type World struct {
	locations []storageLocation
	registry  *archetypeRegistry
	borrows   *borrowGuard
	nextID    EntityID
	deferred  []EntityOperation
}

// NewWorld constructs a fresh world with no persisted state.
func NewWorld() *World {
	return &World{
		registry: newArchetypeRegistry(),
		borrows:  newBorrowGuard(),
	}
}

// Spawn creates a fresh entity with zero components, placed in the
// reserved empty archetype, and returns its id.
func (w *World) Spawn() EntityID {
	id := w.nextID
	w.nextID++
	empty, _ := w.registry.table(emptyFingerprint)
	row := empty.addRow(id)
	w.locations = append(w.locations, storageLocation{fingerprint: emptyFingerprint, row: row})
	return id
}

func (w *World) locationOf(e EntityID) (*storageLocation, bool) {
	idx := int(e)
	if idx < 0 || idx >= len(w.locations) {
		return nil, false
	}
	return &w.locations[idx], true
}

// Attach adds or updates T on entity e. If the entity's current
// archetype already holds T, this is a pure update that returns the
// previous value; otherwise the entity migrates to the archetype for its
// old component set plus T.
func Attach[T any](w *World, e EntityID, value T) (T, error) {
	var zero T
	if w.borrows.busy() {
		return zero, errAliasConflict(globalComponents.typeOf(idFor[T]()))
	}
	loc, ok := w.locationOf(e)
	if !ok {
		return zero, errMissingComponent(e, reflect.TypeOf(value))
	}
	id := idFor[T]()
	oldTable, ok := w.registry.table(loc.fingerprint)
	if !ok {
		return zero, errMissingArchetype(loc.fingerprint)
	}

	if oldTable.hasColumn(id) {
		prev, err := setComponent[T](oldTable, loc.row, value)
		return prev, err
	}

	newFP := mix(loc.fingerprint, id)
	newTable, exists := w.registry.table(newFP)
	if !exists {
		newTable = newArchetypeTable(newFP)
		newTable.cloneSchemaFrom(oldTable, func(ComponentID) bool { return true })
		addColumn[T](newTable)
		w.registry.register(newTable)
	}

	dstRow := newTable.addRow(e)
	displaced, moved, err := oldTable.migrateRowTo(newTable, loc.row, dstRow)
	if err != nil {
		return zero, err
	}
	if moved {
		if dloc, ok := w.locationOf(displaced); ok {
			dloc.row = loc.row
		}
	}
	if _, err := setComponent[T](newTable, dstRow, value); err != nil {
		return zero, err
	}
	*loc = storageLocation{fingerprint: newFP, row: dstRow}
	return zero, nil
}

// Detach removes T from entity e, returning the removed value and true
// if T was present, or the zero value and false if it was not (a no-op,
// not an error).
func Detach[T any](w *World, e EntityID) (T, bool, error) {
	var zero T
	if w.borrows.busy() {
		return zero, false, errAliasConflict(globalComponents.typeOf(idFor[T]()))
	}
	loc, ok := w.locationOf(e)
	if !ok {
		return zero, false, errMissingComponent(e, reflect.TypeOf(zero))
	}
	id := idFor[T]()
	oldTable, ok := w.registry.table(loc.fingerprint)
	if !ok {
		return zero, false, errMissingArchetype(loc.fingerprint)
	}
	if !oldTable.hasColumn(id) {
		return zero, false, nil
	}

	removed, err := getComponent[T](oldTable, loc.row)
	if err != nil {
		return zero, false, err
	}
	value := *removed

	newFP := mix(loc.fingerprint, id)
	newTable, exists := w.registry.table(newFP)
	if !exists {
		newTable = newArchetypeTable(newFP)
		newTable.cloneSchemaFrom(oldTable, func(cid ComponentID) bool { return cid != id })
		w.registry.register(newTable)
	}

	dstRow := newTable.addRow(e)
	displaced, moved, err := oldTable.migrateRowTo(newTable, loc.row, dstRow)
	if err != nil {
		return zero, false, err
	}
	if moved {
		if dloc, ok := w.locationOf(displaced); ok {
			dloc.row = loc.row
		}
	}
	*loc = storageLocation{fingerprint: newFP, row: dstRow}
	return value, true, nil
}

// Get returns a pointer to entity e's T component, or a Missing error.
func Get[T any](w *World, e EntityID) (*T, error) {
	loc, ok := w.locationOf(e)
	if !ok {
		var zero T
		return nil, errMissingComponent(e, reflect.TypeOf(zero))
	}
	table, ok := w.registry.table(loc.fingerprint)
	if !ok {
		return nil, errMissingArchetype(loc.fingerprint)
	}
	return getComponent[T](table, loc.row)
}

// GetMut returns a mutable pointer to entity e's T component. It is
// identical to Get; Go has no const-reference distinction, so read/write
// access is governed by the caller's usage and by query-time borrow tags.
func GetMut[T any](w *World, e EntityID) (*T, error) {
	return Get[T](w, e)
}
