package archway

import (
	"errors"
	"testing"
)

type sysPosition struct{ X, Y float64 }
type sysVelocity struct{ X, Y float64 }

func moveSystem(w *World) error {
	q, err := NewQuery2[sysPosition, sysVelocity](w, true, false)
	if err != nil {
		return err
	}
	for _, p, v := range q.Iter() {
		p.X += v.X
		p.Y += v.Y
	}
	return nil
}

func TestRunSystemsAppliesInOrder(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	Attach(w, e, sysPosition{X: 0, Y: 0})
	Attach(w, e, sysVelocity{X: 1, Y: 2})

	if err := RunSystems(w, moveSystem, moveSystem); err != nil {
		t.Fatalf("RunSystems: %v", err)
	}

	pos, err := Get[sysPosition](w, e)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *pos != (sysPosition{X: 2, Y: 4}) {
		t.Fatalf("position after two moveSystem runs = %+v, want (2,4)", *pos)
	}
}

func TestRunSystemsStopsOnFirstError(t *testing.T) {
	w := NewWorld()
	boom := errors.New("boom")
	ran := 0
	failing := func(w *World) error {
		ran++
		return boom
	}
	neverRuns := func(w *World) error {
		ran++
		return nil
	}

	if err := RunSystems(w, failing, neverRuns); !errors.Is(err, boom) {
		t.Fatalf("RunSystems error = %v, want boom", err)
	}
	if ran != 1 {
		t.Fatalf("ran %d systems, want 1 (should stop after first error)", ran)
	}
}
