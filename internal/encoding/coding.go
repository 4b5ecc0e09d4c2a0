// Package encoding provides the binary encoding primitives shared by the
// write-ahead log and the sstable block builder: fixed-width little-endian
// integers and LEB128-style unsigned varints.
//
// Reference: LevelDB/RocksDB util/coding.h — this package reproduces the
// same byte layout so that encoded values are bit-compatible with any
// compliant reader.
package encoding

import (
	"encoding/binary"
	"errors"
)

// MaxVarint32Len is the maximum number of bytes a varint32 can occupy.
const MaxVarint32Len = 5

// MaxVarint64Len is the maximum number of bytes a varint64 can occupy.
const MaxVarint64Len = 10

var (
	// ErrVarintTruncated is returned when the byte stream ends before a
	// terminating (high-bit-clear) byte is found.
	ErrVarintTruncated = errors.New("encoding: varint truncated")

	// ErrVarintOverflow is returned when a varint would decode to a value
	// wider than the target integer width, or exceeds the maximum number
	// of continuation bytes for its width.
	ErrVarintOverflow = errors.New("encoding: varint overflow")
)

// EncodeFixed32 writes v to dst in little-endian order.
// REQUIRES: len(dst) >= 4.
func EncodeFixed32(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}

// DecodeFixed32 reads a little-endian uint32 from src.
// REQUIRES: len(src) >= 4.
func DecodeFixed32(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

// EncodeFixed16 writes v to dst in little-endian order.
// REQUIRES: len(dst) >= 2.
func EncodeFixed16(dst []byte, v uint16) {
	binary.LittleEndian.PutUint16(dst, v)
}

// DecodeFixed16 reads a little-endian uint16 from src.
// REQUIRES: len(src) >= 2.
func DecodeFixed16(src []byte) uint16 {
	return binary.LittleEndian.Uint16(src)
}

// EncodeVarint32 appends v to dst as a LEB128 varint and returns the
// extended slice.
func EncodeVarint32(dst []byte, v uint32) []byte {
	return EncodeVarint64(dst, uint64(v))
}

// EncodeVarint64 appends v to dst as a LEB128 varint and returns the
// extended slice. Each emitted byte carries 7 payload bits; the high bit
// is set on every byte but the last.
func EncodeVarint64(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// DecodeVarint32 decodes a varint32 from the front of src.
// Returns the value, the number of bytes consumed, and an error.
//
// Decoding uses shift-accumulate rather than repeated multiplication, so a
// value that would overflow 32 bits partway through the 5th byte is
// rejected as ErrVarintOverflow instead of silently wrapping.
func DecodeVarint32(src []byte) (uint32, int, error) {
	v, n, err := decodeVarint(src, 32)
	return uint32(v), n, err
}

// DecodeVarint64 decodes a varint64 from the front of src.
// Returns the value, the number of bytes consumed, and an error.
func DecodeVarint64(src []byte) (uint64, int, error) {
	return decodeVarint(src, 64)
}

func decodeVarint(src []byte, width uint) (uint64, int, error) {
	maxBytes := int((width + 6) / 7) // ceil(width/7): 5 for 32-bit, 10 for 64-bit

	var result uint64
	for i := 0; i < len(src) && i < maxBytes; i++ {
		shift := 7 * uint(i)
		b := src[i]
		chunk := uint64(b & 0x7f)

		// On the last permitted byte, the chunk may only contribute bits
		// that still fit within width; anything above that is overflow
		// even though it would fit in a uint64 accumulator.
		if avail := width - shift; avail < 7 && chunk>>avail != 0 {
			return 0, 0, ErrVarintOverflow
		}

		result |= chunk << shift
		if b < 0x80 {
			return result, i + 1, nil
		}
	}
	if len(src) < maxBytes {
		return 0, 0, ErrVarintTruncated
	}
	return 0, 0, ErrVarintOverflow
}

// VarintLength returns the number of bytes EncodeVarint64 would emit for v.
func VarintLength(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
