package archway

// Seq3 is the 3-argument analog of the standard library's iter.Seq2,
// which only goes up to two yielded values. range-over-func accepts any
// function shaped like this, so Query3 iterates exactly like Query1/Query2.
type Seq3[A, B, C any] func(yield func(EntityID, A, B, C) bool)

// queryCore is the shared resolution/iteration engine behind every
// QueryN façade: it resolves archetype tables via the per-component
// index intersection and acquires the borrow-guard bits those tables'
// columns require, releasing them when iteration completes.
//
// Arity is parameterised by the thin QueryN wrappers below rather than
// by a variadic type parameter, since Go generics have no variadics;
// mutability is a runtime flag per component instead of a distinct
// generic type per read/write combination, avoiding the combinatorial
// explosion a hand-enumerated QueryParam-style design would produce.
type queryCore struct {
	world   *World
	ids     []ComponentID
	mutate  []bool
	tables  []*archetypeTable
	release func()
}

func newQueryCore(w *World, ids []ComponentID, mutate []bool) (*queryCore, error) {
	tables := w.registry.resolve(ids)
	release, err := w.borrows.tryAcquire(ids, mutate)
	if err != nil {
		return nil, err
	}
	return &queryCore{
		world:  w,
		ids:    ids,
		mutate: mutate,
		tables: tables,
		release: func() {
			release()
			w.drainDeferred()
		},
	}, nil
}

func (c *queryCore) total() int {
	n := 0
	for _, t := range c.tables {
		n += t.n
	}
	return n
}

// Query1 iterates every entity carrying component A.
type Query1[A any] struct{ core *queryCore }

// NewQuery1 resolves a one-component query. mutateA tags A as a write
// borrow; two Query1 instances both reading A may coexist, but a write
// borrow conflicts with any other live borrow of A.
func NewQuery1[A any](w *World, mutateA bool) (*Query1[A], error) {
	core, err := newQueryCore(w, []ComponentID{idFor[A]()}, []bool{mutateA})
	if err != nil {
		return nil, err
	}
	return &Query1[A]{core: core}, nil
}

// Iter ranges over every matching (entity, *A) pair, row-ascending within
// a table and in unspecified but stable table order across tables.
func (q *Query1[A]) Iter() func(yield func(EntityID, *A) bool) {
	return func(yield func(EntityID, *A) bool) {
		defer q.core.release()
		for _, t := range q.core.tables {
			cs, err := downcastColumn[A](t.columns[q.core.ids[0]])
			if err != nil {
				return
			}
			for row := 0; row < t.n; row++ {
				v, _ := cs.get(row)
				if !yield(t.entityAt(row), v) {
					return
				}
			}
		}
	}
}

// Single returns the query's sole matching row, or a CardinalityError if
// the query does not match exactly one entity.
func (q *Query1[A]) Single() (EntityID, *A, error) {
	if total := q.core.total(); total != 1 {
		q.core.release()
		return 0, nil, errCardinality(total)
	}
	var oe EntityID
	var ov *A
	for e, v := range q.Iter() {
		oe, ov = e, v
	}
	return oe, ov, nil
}

// Query2 iterates every entity carrying components A and B.
type Query2[A, B any] struct{ core *queryCore }

// NewQuery2 resolves a two-component query.
func NewQuery2[A, B any](w *World, mutateA, mutateB bool) (*Query2[A, B], error) {
	ids := []ComponentID{idFor[A](), idFor[B]()}
	core, err := newQueryCore(w, ids, []bool{mutateA, mutateB})
	if err != nil {
		return nil, err
	}
	return &Query2[A, B]{core: core}, nil
}

func (q *Query2[A, B]) Iter() func(yield func(EntityID, *A, *B) bool) {
	return func(yield func(EntityID, *A, *B) bool) {
		defer q.core.release()
		for _, t := range q.core.tables {
			csA, errA := downcastColumn[A](t.columns[q.core.ids[0]])
			csB, errB := downcastColumn[B](t.columns[q.core.ids[1]])
			if errA != nil || errB != nil {
				return
			}
			for row := 0; row < t.n; row++ {
				va, _ := csA.get(row)
				vb, _ := csB.get(row)
				if !yield(t.entityAt(row), va, vb) {
					return
				}
			}
		}
	}
}

// Single returns the query's sole matching row, or a CardinalityError.
func (q *Query2[A, B]) Single() (EntityID, *A, *B, error) {
	if total := q.core.total(); total != 1 {
		q.core.release()
		return 0, nil, nil, errCardinality(total)
	}
	var oe EntityID
	var oa *A
	var ob *B
	for e, a, b := range q.Iter() {
		oe, oa, ob = e, a, b
	}
	return oe, oa, ob, nil
}

// Query3 iterates every entity carrying components A, B, and C.
type Query3[A, B, C any] struct{ core *queryCore }

// NewQuery3 resolves a three-component query.
func NewQuery3[A, B, C any](w *World, mutateA, mutateB, mutateC bool) (*Query3[A, B, C], error) {
	ids := []ComponentID{idFor[A](), idFor[B](), idFor[C]()}
	core, err := newQueryCore(w, ids, []bool{mutateA, mutateB, mutateC})
	if err != nil {
		return nil, err
	}
	return &Query3[A, B, C]{core: core}, nil
}

func (q *Query3[A, B, C]) Iter() Seq3[*A, *B, *C] {
	return func(yield func(EntityID, *A, *B, *C) bool) {
		defer q.core.release()
		for _, t := range q.core.tables {
			csA, errA := downcastColumn[A](t.columns[q.core.ids[0]])
			csB, errB := downcastColumn[B](t.columns[q.core.ids[1]])
			csC, errC := downcastColumn[C](t.columns[q.core.ids[2]])
			if errA != nil || errB != nil || errC != nil {
				return
			}
			for row := 0; row < t.n; row++ {
				va, _ := csA.get(row)
				vb, _ := csB.get(row)
				vc, _ := csC.get(row)
				if !yield(t.entityAt(row), va, vb, vc) {
					return
				}
			}
		}
	}
}

// Single returns the query's sole matching row, or a CardinalityError.
func (q *Query3[A, B, C]) Single() (EntityID, *A, *B, *C, error) {
	if total := q.core.total(); total != 1 {
		q.core.release()
		return 0, nil, nil, nil, errCardinality(total)
	}
	var oe EntityID
	var oa *A
	var ob *B
	var oc *C
	for e, a, b, c := range q.Iter() {
		oe, oa, ob, oc = e, a, b, c
	}
	return oe, oa, ob, oc, nil
}
