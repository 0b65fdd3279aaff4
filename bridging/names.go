package bridging

import "github.com/optlayer/bridgekit-go/contracts"

// ambiguousIndex marks a name held by two or more virtual constraints.
// Synthetic indices are strictly negative, so zero can never collide with a
// live entry.
const ambiguousIndex contracts.ConstraintIndex = 0

// nameMap tracks names of virtual constraints. The forward map is the source
// of truth; the inverse map is rebuilt lazily on the first lookup after any
// write or deletion, never eagerly.
type nameMap struct {
	forward map[contracts.ConstraintIndex]string
	inverse map[string]contracts.ConstraintIndex
	dirty   bool
}

func newNameMap() *nameMap {
	return &nameMap{forward: make(map[contracts.ConstraintIndex]string)}
}

// name returns the stored name of a virtual constraint, empty if unset.
func (m *nameMap) name(c contracts.ConstraintIndex) string {
	return m.forward[c]
}

// setName stores a name; an empty name clears the entry. Either way the
// inverse map is invalidated.
func (m *nameMap) setName(c contracts.ConstraintIndex, name string) {
	if name == "" {
		delete(m.forward, c)
	} else {
		m.forward[c] = name
	}
	m.dirty = true
}

// setDirty invalidates the inverse map without touching the forward map.
// Called on constraint deletions that happen outside the virtual world.
func (m *nameMap) setDirty() {
	m.dirty = true
}

// remove drops a deleted constraint's bookkeeping.
func (m *nameMap) remove(c contracts.ConstraintIndex) {
	delete(m.forward, c)
	m.dirty = true
}

// lookup resolves a name against the virtual world. ambiguous is true when
// two or more virtual constraints hold the name.
func (m *nameMap) lookup(name string) (c contracts.ConstraintIndex, ok bool, ambiguous bool) {
	if m.inverse == nil || m.dirty {
		m.rebuild()
	}
	c, ok = m.inverse[name]
	if ok && c == ambiguousIndex {
		return 0, false, true
	}
	return c, ok, false
}

func (m *nameMap) rebuild() {
	m.inverse = make(map[string]contracts.ConstraintIndex, len(m.forward))
	for c, name := range m.forward {
		if _, taken := m.inverse[name]; taken {
			m.inverse[name] = ambiguousIndex
			continue
		}
		m.inverse[name] = c
	}
	m.dirty = false
}

func (m *nameMap) reset() {
	m.forward = make(map[contracts.ConstraintIndex]string)
	m.inverse = nil
	m.dirty = false
}
