package archway

import "testing"

type aPosition struct{ X, Y float64 }
type aVelocity struct{ X, Y float64 }

func TestColumnStoreAddGetSet(t *testing.T) {
	cs := newColumnStore[aPosition]()
	row := cs.addEmptyRow()
	if row != 0 {
		t.Fatalf("first row = %d, want 0", row)
	}
	v, err := cs.get(row)
	if err != nil {
		t.Fatalf("get(0): %v", err)
	}
	if *v != (aPosition{}) {
		t.Fatalf("new row not zero-valued: %+v", *v)
	}
	prev := cs.set(row, aPosition{X: 1, Y: 2})
	if prev != (aPosition{}) {
		t.Fatalf("set returned %+v, want zero value", prev)
	}
	v, _ = cs.get(row)
	if *v != (aPosition{X: 1, Y: 2}) {
		t.Fatalf("get after set = %+v", *v)
	}
}

func TestColumnStoreGetOutOfRange(t *testing.T) {
	cs := newColumnStore[aPosition]()
	if _, err := cs.get(0); err == nil {
		t.Fatal("expected error reading an empty column store")
	}
}

func TestColumnStoreSwapRemove(t *testing.T) {
	cs := newColumnStore[aPosition]()
	cs.addEmptyRow()
	cs.addEmptyRow()
	cs.addEmptyRow()
	cs.set(0, aPosition{X: 0})
	cs.set(1, aPosition{X: 1})
	cs.set(2, aPosition{X: 2})

	cs.swapRemove(0)
	if cs.length() != 2 {
		t.Fatalf("length after swapRemove = %d, want 2", cs.length())
	}
	v, _ := cs.get(0)
	if v.X != 2 {
		t.Fatalf("row 0 after swapRemove(0) = %+v, want last element moved in", *v)
	}
}

func TestErasedColumnDowncast(t *testing.T) {
	id := idFor[aPosition]()
	ec := newErasedColumn[aPosition](id)
	if _, err := downcastColumn[aPosition](ec); err != nil {
		t.Fatalf("downcastColumn to matching type: %v", err)
	}
	if _, err := downcastColumn[aVelocity](ec); err == nil {
		t.Fatal("downcastColumn to mismatched type should error")
	}
}

func TestErasedColumnMoveRowInto(t *testing.T) {
	id := idFor[aPosition]()
	src := newErasedColumn[aPosition](id)
	dst := newErasedColumn[aPosition](id)

	srcRow := src.addEmptyRow()
	cs, _ := downcastColumn[aPosition](src)
	cs.set(srcRow, aPosition{X: 9, Y: 9})

	dstRow := dst.addEmptyRow()
	if err := src.moveRowInto(dst, srcRow, dstRow); err != nil {
		t.Fatalf("moveRowInto: %v", err)
	}
	dstCS, _ := downcastColumn[aPosition](dst)
	v, _ := dstCS.get(dstRow)
	if *v != (aPosition{X: 9, Y: 9}) {
		t.Fatalf("value not moved: %+v", *v)
	}
}

func TestArchetypeTableAddRow(t *testing.T) {
	tbl := newArchetypeTable(fingerprintOf(nil))
	e := EntityID(1)
	row := tbl.addRow(e)
	if row != 0 || tbl.n != 1 {
		t.Fatalf("addRow row=%d n=%d, want 0,1", row, tbl.n)
	}
	if tbl.entityAt(row) != e {
		t.Fatalf("entityAt(0) = %d, want %d", tbl.entityAt(row), e)
	}
}

func TestArchetypeTableSetGetComponent(t *testing.T) {
	tbl := newArchetypeTable(0)
	addColumn[aPosition](tbl)
	row := tbl.addRow(1)

	prev, err := setComponent[aPosition](tbl, row, aPosition{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("setComponent: %v", err)
	}
	if prev != (aPosition{}) {
		t.Fatalf("setComponent prev = %+v, want zero value", prev)
	}
	got, err := getComponent[aPosition](tbl, row)
	if err != nil {
		t.Fatalf("getComponent: %v", err)
	}
	if *got != (aPosition{X: 3, Y: 4}) {
		t.Fatalf("getComponent = %+v", *got)
	}
}

func TestArchetypeTableGetComponentMissingColumn(t *testing.T) {
	tbl := newArchetypeTable(0)
	row := tbl.addRow(1)
	if _, err := getComponent[aPosition](tbl, row); err == nil {
		t.Fatal("expected error reading a column the table does not have")
	}
}

func TestArchetypeTableCompactSwapRemove(t *testing.T) {
	tbl := newArchetypeTable(0)
	addColumn[aPosition](tbl)
	e1, e2, e3 := EntityID(1), EntityID(2), EntityID(3)
	tbl.addRow(e1)
	tbl.addRow(e2)
	tbl.addRow(e3)

	displaced, moved, err := tbl.compact(0)
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	if !moved || displaced != e3 {
		t.Fatalf("compact displaced=%d moved=%v, want e3 moved=true", displaced, moved)
	}
	if tbl.n != 2 {
		t.Fatalf("n after compact = %d, want 2", tbl.n)
	}
	if tbl.entityAt(0) != e3 {
		t.Fatalf("entityAt(0) after compact = %d, want e3", tbl.entityAt(0))
	}
}

func TestArchetypeTableCompactLastRowNoDisplacement(t *testing.T) {
	tbl := newArchetypeTable(0)
	e1 := EntityID(1)
	tbl.addRow(e1)
	_, moved, err := tbl.compact(0)
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	if moved {
		t.Fatal("compacting the only row should not report a displacement")
	}
}

func TestArchetypeTableCloneSchemaFromFilter(t *testing.T) {
	src := newArchetypeTable(0)
	posID := idFor[aPosition]()
	velID := idFor[aVelocity]()
	addColumn[aPosition](src)
	addColumn[aVelocity](src)

	dst := newArchetypeTable(1)
	dst.cloneSchemaFrom(src, func(id ComponentID) bool { return id != velID })

	if !dst.hasColumn(posID) {
		t.Fatal("cloneSchemaFrom did not copy the allowed column")
	}
	if dst.hasColumn(velID) {
		t.Fatal("cloneSchemaFrom copied a column the filter rejected")
	}
}

func TestArchetypeTableMigrateRowTo(t *testing.T) {
	src := newArchetypeTable(0)
	addColumn[aPosition](src)
	addColumn[aVelocity](src)
	row := src.addRow(5)
	setComponent[aPosition](src, row, aPosition{X: 1, Y: 1})
	setComponent[aVelocity](src, row, aVelocity{X: 2, Y: 2})

	dst := newArchetypeTable(1)
	velID := idFor[aVelocity]()
	dst.cloneSchemaFrom(src, func(id ComponentID) bool { return id != velID })
	dstRow := dst.addRow(5)

	_, moved, err := src.migrateRowTo(dst, row, dstRow)
	if err != nil {
		t.Fatalf("migrateRowTo: %v", err)
	}
	if moved {
		t.Fatal("migrating the only row of src should not displace anything")
	}
	got, err := getComponent[aPosition](dst, dstRow)
	if err != nil || *got != (aPosition{X: 1, Y: 1}) {
		t.Fatalf("migrated position = %+v, err=%v", got, err)
	}
	if src.n != 0 {
		t.Fatalf("src.n after migrate = %d, want 0", src.n)
	}
}
