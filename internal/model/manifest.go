package model

import "sort"

// Manifest is the root descriptor enumerating every downloadable unit and
// its direct dependencies. A Manifest is immutable once built; a loader
// context fetches it at most once and every caller observes the same value.
type Manifest struct {
	deps map[string][]string
	ids  []string
}

// NewManifest builds a Manifest from a unit id to direct-dependency map.
// The dependency slices keep their given order; AllUnitIDs is sorted so
// iteration over the manifest is deterministic.
func NewManifest(units map[string][]string) *Manifest {
	m := &Manifest{
		deps: make(map[string][]string, len(units)),
		ids:  make([]string, 0, len(units)),
	}
	for id, deps := range units {
		m.deps[id] = deps
		m.ids = append(m.ids, id)
	}
	sort.Strings(m.ids)
	return m
}

// AllUnitIDs returns every unit id in the manifest, sorted.
func (m *Manifest) AllUnitIDs() []string {
	return m.ids
}

// DirectDependencies returns the ordered direct dependencies of a unit.
// A unit with no dependencies returns an empty slice.
func (m *Manifest) DirectDependencies(unitID string) []string {
	return m.deps[unitID]
}

// Has reports whether the manifest declares the unit.
func (m *Manifest) Has(unitID string) bool {
	_, ok := m.deps[unitID]
	return ok
}

// UnitCount returns the total number of units. The aggregate progress
// fraction is normalized by this count.
func (m *Manifest) UnitCount() int {
	return len(m.ids)
}
