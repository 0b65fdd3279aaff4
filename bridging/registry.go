package bridging

import (
	"slices"

	"github.com/google/uuid"
	"github.com/hashicorp/go-set/v3"

	"github.com/optlayer/bridgekit-go/contracts"
)

// Synthetic indices come from monotonic counters that start at -1 and only
// ever decrease. Freed slots are never recycled within a session, so a
// deleted handle can never alias a newly issued one.

// variableBlock groups the synthetic variables emulated by one bridge.
type variableBlock struct {
	id         uuid.UUID
	bridge     VariableBridge
	indices    []contracts.VariableIndex
	kind       contracts.SetKind
	constraint contracts.ConstraintIndex // membership constraint entry
}

type variableSlot struct {
	block *variableBlock
	slot  int
}

type variableRegistry struct {
	next   int64
	slots  map[contracts.VariableIndex]*variableSlot
	blocks map[contracts.VariableIndex]*variableBlock // keyed by first index
	byKind map[contracts.SetKind]*set.Set[contracts.VariableIndex]
}

func newVariableRegistry() *variableRegistry {
	return &variableRegistry{
		next:   -1,
		slots:  make(map[contracts.VariableIndex]*variableSlot),
		blocks: make(map[contracts.VariableIndex]*variableBlock),
		byKind: make(map[contracts.SetKind]*set.Set[contracts.VariableIndex]),
	}
}

func (r *variableRegistry) empty() bool { return len(r.slots) == 0 }

func (r *variableRegistry) size() int { return len(r.slots) }

// registerBlock assigns fresh negative indices to every slot of the bridge.
func (r *variableRegistry) registerBlock(bridge VariableBridge, kind contracts.SetKind) *variableBlock {
	n := bridge.NumVariables()
	block := &variableBlock{
		id:      uuid.New(),
		bridge:  bridge,
		indices: make([]contracts.VariableIndex, n),
		kind:    kind,
	}
	for i := 0; i < n; i++ {
		v := contracts.VariableIndex(r.next)
		r.next--
		block.indices[i] = v
		r.slots[v] = &variableSlot{block: block, slot: i}
		r.kindSet(kind).Insert(v)
	}
	r.blocks[block.indices[0]] = block
	return block
}

func (r *variableRegistry) lookup(v contracts.VariableIndex) (*variableSlot, bool) {
	s, ok := r.slots[v]
	return s, ok
}

func (r *variableRegistry) unregisterBlock(block *variableBlock) {
	for _, v := range block.indices {
		delete(r.slots, v)
		if s, ok := r.byKind[block.kind]; ok {
			s.Remove(v)
		}
	}
	delete(r.blocks, block.indices[0])
}

// enumerate returns the live synthetic variables of one set kind, in
// allocation order. Time is proportional to the matches, not the registry.
func (r *variableRegistry) enumerate(kind contracts.SetKind) []contracts.VariableIndex {
	s, ok := r.byKind[kind]
	if !ok {
		return nil
	}
	out := s.Slice()
	slices.SortFunc(out, descending)
	return out
}

func (r *variableRegistry) count(kind contracts.SetKind) int {
	s, ok := r.byKind[kind]
	if !ok {
		return 0
	}
	return s.Size()
}

func (r *variableRegistry) indices() []contracts.VariableIndex {
	out := make([]contracts.VariableIndex, 0, len(r.slots))
	for v := range r.slots {
		out = append(out, v)
	}
	slices.SortFunc(out, descending)
	return out
}

func (r *variableRegistry) forEachBlock(fn func(*variableBlock)) {
	for _, block := range r.blocks {
		fn(block)
	}
}

func (r *variableRegistry) reset() {
	r.next = -1
	r.slots = make(map[contracts.VariableIndex]*variableSlot)
	r.blocks = make(map[contracts.VariableIndex]*variableBlock)
	r.byKind = make(map[contracts.SetKind]*set.Set[contracts.VariableIndex])
}

func (r *variableRegistry) kindSet(kind contracts.SetKind) *set.Set[contracts.VariableIndex] {
	s, ok := r.byKind[kind]
	if !ok {
		s = set.New[contracts.VariableIndex](4)
		r.byKind[kind] = s
	}
	return s
}

// constraintEntry is one live synthetic constraint.
type constraintEntry struct {
	id     uuid.UUID
	bridge ConstraintBridge
	key    contracts.TypeKey
}

type constraintRegistry struct {
	next    int64
	entries map[contracts.ConstraintIndex]*constraintEntry
	byKey   map[contracts.TypeKey]*set.Set[contracts.ConstraintIndex]
}

func newConstraintRegistry() *constraintRegistry {
	return &constraintRegistry{
		next:    -1,
		entries: make(map[contracts.ConstraintIndex]*constraintEntry),
		byKey:   make(map[contracts.TypeKey]*set.Set[contracts.ConstraintIndex]),
	}
}

func (r *constraintRegistry) register(bridge ConstraintBridge, key contracts.TypeKey) contracts.ConstraintIndex {
	c := contracts.ConstraintIndex(r.next)
	r.next--
	r.entries[c] = &constraintEntry{id: uuid.New(), bridge: bridge, key: key}
	r.keySet(key).Insert(c)
	return c
}

func (r *constraintRegistry) lookup(c contracts.ConstraintIndex) (*constraintEntry, bool) {
	e, ok := r.entries[c]
	return e, ok
}

func (r *constraintRegistry) unregister(c contracts.ConstraintIndex) {
	e, ok := r.entries[c]
	if !ok {
		return
	}
	delete(r.entries, c)
	if s, ok := r.byKey[e.key]; ok {
		s.Remove(c)
	}
}

// indices returns the live synthetic constraints of one type key, in
// allocation order.
func (r *constraintRegistry) indices(key contracts.TypeKey) []contracts.ConstraintIndex {
	s, ok := r.byKey[key]
	if !ok {
		return nil
	}
	out := s.Slice()
	slices.SortFunc(out, descending)
	return out
}

func (r *constraintRegistry) count(key contracts.TypeKey) int {
	s, ok := r.byKey[key]
	if !ok {
		return 0
	}
	return s.Size()
}

func (r *constraintRegistry) typeKeys() []contracts.TypeKey {
	out := make([]contracts.TypeKey, 0, len(r.byKey))
	for key, s := range r.byKey {
		if s.Size() > 0 {
			out = append(out, key)
		}
	}
	return out
}

func (r *constraintRegistry) forEach(fn func(contracts.ConstraintIndex, *constraintEntry)) {
	for c, e := range r.entries {
		fn(c, e)
	}
}

func (r *constraintRegistry) reset() {
	r.next = -1
	r.entries = make(map[contracts.ConstraintIndex]*constraintEntry)
	r.byKey = make(map[contracts.TypeKey]*set.Set[contracts.ConstraintIndex])
}

func (r *constraintRegistry) keySet(key contracts.TypeKey) *set.Set[contracts.ConstraintIndex] {
	s, ok := r.byKey[key]
	if !ok {
		s = set.New[contracts.ConstraintIndex](4)
		r.byKey[key] = s
	}
	return s
}

// descending orders synthetic indices in allocation order (-1 before -2).
func descending[T ~int64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
