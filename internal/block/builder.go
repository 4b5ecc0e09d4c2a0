// Package block builds a single sstable data block: a sequence of sorted
// key/value entries with prefix-compressed keys and periodic restart
// points for random access.
//
// Entry format:
//
//	shared_bytes:   varint32
//	unshared_bytes: varint32
//	value_length:   varint32
//	key_delta:      char[unshared_bytes]
//	value:          char[value_length]
//
// Block format:
//
//	[entry 1]
//	[entry 2]
//	...
//	[entry N]
//	[restart point 1: fixed32]
//	...
//	[restart point M: fixed32]
//	[restart count: fixed32]
package block

import "github.com/durakv/durakv/internal/encoding"

// RestartInterval is the number of entries between restart points: every
// 16th entry stores its key in full instead of as a delta against its
// predecessor.
const RestartInterval = 16

// Builder accumulates sorted key/value entries into a single block.
type Builder struct {
	buffer   []byte
	restarts []uint32
	counter  int
	lastKey  []byte
	finished bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{restarts: []uint32{0}}
}

// Add appends a key/value entry to the block.
// REQUIRES: key is strictly greater than every previously added key.
// REQUIRES: Finish has not been called since the last Reset.
func (b *Builder) Add(key, value []byte) {
	if b.finished {
		panic("block: Add called after Finish")
	}

	shared := 0
	if b.counter < RestartInterval {
		shared = sharedPrefixLength(b.lastKey, key)
	} else {
		b.restarts = append(b.restarts, uint32(len(b.buffer)))
		b.counter = 0
	}
	unshared := len(key) - shared

	b.buffer = encoding.EncodeVarint32(b.buffer, uint32(shared))
	b.buffer = encoding.EncodeVarint32(b.buffer, uint32(unshared))
	b.buffer = encoding.EncodeVarint32(b.buffer, uint32(len(value)))
	b.buffer = append(b.buffer, key[shared:]...)
	b.buffer = append(b.buffer, value...)

	b.lastKey = append(b.lastKey[:0], key...)
	b.counter++
}

// Empty reports whether any entries have been added.
func (b *Builder) Empty() bool {
	return len(b.buffer) == 0
}

// Reset clears the builder so it can build another block.
func (b *Builder) Reset() {
	b.buffer = b.buffer[:0]
	b.restarts = b.restarts[:1]
	b.restarts[0] = 0
	b.counter = 0
	b.lastKey = b.lastKey[:0]
	b.finished = false
}

// Finish appends the restart point array and the restart count footer and
// returns the completed block. The returned slice is valid until Reset is
// called.
func (b *Builder) Finish() []byte {
	for _, restart := range b.restarts {
		b.buffer = appendFixed32(b.buffer, restart)
	}
	b.buffer = appendFixed32(b.buffer, uint32(len(b.restarts)))
	b.finished = true
	return b.buffer
}

func appendFixed32(dst []byte, v uint32) []byte {
	var tmp [4]byte
	encoding.EncodeFixed32(tmp[:], v)
	return append(dst, tmp[:]...)
}

func sharedPrefixLength(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
