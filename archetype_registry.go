package archway

// archetypeRegistry owns every archetype table ever created and the
// per-component index used by query resolution. Tables are created
// lazily on first migration into their type set and are never destroyed.
type archetypeRegistry struct {
	byFingerprint map[Fingerprint]*archetypeTable
	byComponent   map[ComponentID]map[Fingerprint]struct{}
}

func newArchetypeRegistry() *archetypeRegistry {
	empty := newArchetypeTable(emptyFingerprint)
	r := &archetypeRegistry{
		byFingerprint: make(map[Fingerprint]*archetypeTable, Config.initialRegistrySize),
		byComponent:   make(map[ComponentID]map[Fingerprint]struct{}, Config.initialRegistrySize),
	}
	r.byFingerprint[emptyFingerprint] = empty
	return r
}

func (r *archetypeRegistry) table(fp Fingerprint) (*archetypeTable, bool) {
	t, ok := r.byFingerprint[fp]
	return t, ok
}

// register installs t and indexes every one of its columns under the
// per-component index. Idempotent: a fingerprint appears at most once
// per component id.
func (r *archetypeRegistry) register(t *archetypeTable) {
	r.byFingerprint[t.fingerprint] = t
	for id := range t.columns {
		set, ok := r.byComponent[id]
		if !ok {
			set = make(map[Fingerprint]struct{})
			r.byComponent[id] = set
		}
		set[t.fingerprint] = struct{}{}
	}
}

// fingerprintsFor returns the set of archetype fingerprints containing id.
func (r *archetypeRegistry) fingerprintsFor(id ComponentID) map[Fingerprint]struct{} {
	return r.byComponent[id]
}

// resolve returns every archetype table that contains all of ids, via
// the per-component index intersection: it probes the least populous
// id's fingerprint set first, then checks each candidate against the
// remaining ids.
func (r *archetypeRegistry) resolve(ids []ComponentID) []*archetypeTable {
	if len(ids) == 0 {
		return nil
	}
	var smallest map[Fingerprint]struct{}
	for _, id := range ids {
		set := r.fingerprintsFor(id)
		if len(set) == 0 {
			return nil
		}
		if smallest == nil || len(set) < len(smallest) {
			smallest = set
		}
	}
	tables := make([]*archetypeTable, 0, len(smallest))
candidate:
	for fp := range smallest {
		for _, id := range ids {
			if _, ok := r.fingerprintsFor(id)[fp]; !ok {
				continue candidate
			}
		}
		tables = append(tables, r.byFingerprint[fp])
	}
	return tables
}
