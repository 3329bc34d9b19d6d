package chart

import "github.com/emirpasic/gods/maps/linkedhashmap"

// StateSet is a deduplicated, insertion-order-preserving collection of
// items all sharing the same End position. Inserting an item that is
// already present (by (Rule, Dot, Start, End) identity) merges its
// backpointers into the existing, shared item rather than adding a second
// entry — this is what keeps ambiguous derivations representable in cubic
// space.
//
// The existence index is a gods linkedhashmap; a parallel slice gives O(1)
// positional append/iterate for the saturation loop's cursor.
//
// Iteration must expose insertion order, and must tolerate items being
// appended to the set while a saturation loop walks it (Each observes
// appends made after it started).
type StateSet struct {
	items []*Item
	index *linkedhashmap.Map // item.key() -> *Item
}

// NewStateSet returns an empty state set.
func NewStateSet() *StateSet {
	return &StateSet{index: linkedhashmap.New()}
}

// Insert adds it to the set, or merges its backpointers into the
// already-present equal item. Returns the item now owned by the set (either
// it, or the pre-existing equal item it was merged into) and whether a new
// entry was appended.
func (s *StateSet) Insert(it *Item) (*Item, bool) {
	k := it.key()
	if v, ok := s.index.Get(k); ok {
		existing := v.(*Item)
		existing.mergeFrom(it)
		return existing, false
	}
	s.index.Put(k, it)
	s.items = append(s.items, it)
	return it, true
}

// Len returns the number of distinct items currently in the set.
func (s *StateSet) Len() int {
	return len(s.items)
}

// At returns the item at position i in insertion order.
func (s *StateSet) At(i int) *Item {
	return s.items[i]
}

// Items returns every item currently in the set, in insertion order. The
// returned slice shares storage with the set and must not be mutated; it
// may grow if further items are inserted afterwards (callers that need a
// stable snapshot should copy it).
func (s *StateSet) Items() []*Item {
	return s.items
}

// Each processes every item in the set in insertion order, including items
// appended by fn itself during the walk — this is the saturation cursor:
// new items discovered mid-pass are
// processed when the cursor reaches them, and the loop terminates once the
// cursor catches up to the end of the (possibly still-growing) set.
func (s *StateSet) Each(fn func(*Item)) {
	for i := 0; i < len(s.items); i++ {
		fn(s.items[i])
	}
}
