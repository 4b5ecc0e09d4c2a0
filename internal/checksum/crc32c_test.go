package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKnownVector(t *testing.T) {
	// "123456789" is the standard CRC32C/Castagnoli check vector.
	assert.Equal(t, uint32(0xe3069283), Value([]byte("123456789")))
}

func TestExtendMatchesValue(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	whole := Value(data)

	split := len(data) / 3
	partial := Value(data[:split])
	extended := Extend(partial, data[split:])

	assert.Equal(t, whole, extended)
}

func TestValueEmpty(t *testing.T) {
	assert.Equal(t, uint32(0), Value(nil))
}

func TestValueDiffersOnBitFlip(t *testing.T) {
	a := []byte{0x01, 0x02, 0x03, 0x04}
	b := []byte{0x01, 0x02, 0x03, 0x05}
	assert.NotEqual(t, Value(a), Value(b))
}
