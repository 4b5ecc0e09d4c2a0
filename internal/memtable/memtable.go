package memtable

import "sync"

// MemTable is an ordered, mutex-guarded key/value store. A single lock
// guards every operation; there is no lock-free read path, and no
// sequence-number or multi-version bookkeeping — a later Set simply
// overwrites whatever value was stored for that key.
type MemTable struct {
	mu sync.Mutex
	sl *skipList
}

// New creates an empty MemTable ordered by cmp. A nil cmp uses
// BytewiseComparator.
func New(cmp Comparator) *MemTable {
	return &MemTable{sl: newSkipList(cmp)}
}

// Get returns the value stored for key, if any.
func (mt *MemTable) Get(key []byte) ([]byte, bool) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.sl.get(key)
}

// Set stores value for key, overwriting any existing value. Returns the
// previous value and whether the key was already present.
func (mt *MemTable) Set(key, value []byte) ([]byte, bool) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.sl.set(key, value)
}

// Contains reports whether key is present.
func (mt *MemTable) Contains(key []byte) bool {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	_, ok := mt.sl.get(key)
	return ok
}

// Remove deletes key. Returns the removed value and whether it was present.
func (mt *MemTable) Remove(key []byte) ([]byte, bool) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.sl.remove(key)
}

// Count returns the number of entries currently stored.
func (mt *MemTable) Count() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.sl.count
}

// Iterator returns a snapshot iterator positioned before the first entry,
// in ascending key order. The snapshot observes the table's state at the
// moment Iterator is called and is not affected by later writes.
func (mt *MemTable) Iterator() *Iterator {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	entries := make([]entry, 0, mt.sl.count)
	for it := mt.sl.newIterator(); it.valid(); it.next() {
		entries = append(entries, entry{key: it.key(), value: it.value()})
	}
	return &Iterator{entries: entries, pos: -1}
}

type entry struct {
	key, value []byte
}

// Iterator walks a MemTable snapshot in ascending key order.
type Iterator struct {
	entries []entry
	pos     int
}

// Next advances the iterator and reports whether a valid entry follows.
func (it *Iterator) Next() bool {
	it.pos++
	return it.pos < len(it.entries)
}

// Key returns the current entry's key. REQUIRES: a prior Next returned true.
func (it *Iterator) Key() []byte { return it.entries[it.pos].key }

// Value returns the current entry's value. REQUIRES: a prior Next returned true.
func (it *Iterator) Value() []byte { return it.entries[it.pos].value }
