package archway

import "github.com/TheBitDrifter/mask"

// borrowGuard enforces single-writer-or-many-readers access to component
// columns with two fixed-width bitsets (one bit per live ComponentID):
// readMask tracks components currently borrowed read-only, writeMask
// tracks components currently borrowed mutably.
type borrowGuard struct {
	readMask  mask.Mask256
	writeMask mask.Mask256
	// readRefs lets two read-only queries over the same component
	// coexist; the bit is only cleared once every holder has released it.
	readRefs map[ComponentID]int
}

func newBorrowGuard() *borrowGuard {
	return &borrowGuard{readRefs: make(map[ComponentID]int)}
}

// tryAcquire checks whether a query borrowing ids (tagged write per
// wantWrite) may proceed without violating the aliasing rule. On success
// it marks the borrow and returns a release function.
func (g *borrowGuard) tryAcquire(ids []ComponentID, wantWrite []bool) (release func(), err error) {
	var requested mask.Mask256
	for _, id := range ids {
		requested.Mark(uint32(id))
	}
	if g.writeMask.ContainsAny(requested) {
		return nil, errAliasConflict(globalComponents.typeOf(firstConflict(g.writeMask, ids)))
	}
	for i, id := range ids {
		if wantWrite[i] && g.readMask.ContainsAny(bitOf(id)) {
			return nil, errAliasConflict(globalComponents.typeOf(id))
		}
	}
	for i, id := range ids {
		bit := uint32(id)
		if wantWrite[i] {
			g.writeMask.Mark(bit)
		} else {
			g.readMask.Mark(bit)
			g.readRefs[id]++
		}
	}
	released := false
	return func() {
		if released {
			return
		}
		released = true
		for i, id := range ids {
			bit := uint32(id)
			if wantWrite[i] {
				g.writeMask.Unmark(bit)
			} else {
				g.readRefs[id]--
				if g.readRefs[id] <= 0 {
					delete(g.readRefs, id)
					g.readMask.Unmark(bit)
				}
			}
		}
	}, nil
}

// busy reports whether any component is currently borrowed at all,
// used to gate world mutation against an in-flight query.
func (g *borrowGuard) busy() bool {
	return !g.readMask.IsEmpty() || !g.writeMask.IsEmpty()
}

func bitOf(id ComponentID) mask.Mask256 {
	var m mask.Mask256
	m.Mark(uint32(id))
	return m
}

func firstConflict(against mask.Mask256, ids []ComponentID) ComponentID {
	for _, id := range ids {
		if against.ContainsAny(bitOf(id)) {
			return id
		}
	}
	return 0
}
