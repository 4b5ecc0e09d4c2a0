package memtable

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	mt := New(nil)
	_, existed := mt.Set([]byte("a"), []byte("1"))
	assert.False(t, existed)

	v, ok := mt.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, "1", string(v))
}

func TestSetOverwritesAndReturnsPrior(t *testing.T) {
	mt := New(nil)
	mt.Set([]byte("a"), []byte("1"))
	prior, existed := mt.Set([]byte("a"), []byte("2"))
	require.True(t, existed)
	assert.Equal(t, "1", string(prior))

	v, ok := mt.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, "2", string(v))
	assert.Equal(t, 1, mt.Count())
}

func TestGetMissing(t *testing.T) {
	mt := New(nil)
	_, ok := mt.Get([]byte("missing"))
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	mt := New(nil)
	assert.False(t, mt.Contains([]byte("a")))
	mt.Set([]byte("a"), []byte("1"))
	assert.True(t, mt.Contains([]byte("a")))
}

func TestRemove(t *testing.T) {
	mt := New(nil)
	mt.Set([]byte("a"), []byte("1"))

	v, ok := mt.Remove([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, "1", string(v))
	assert.False(t, mt.Contains([]byte("a")))
	assert.Equal(t, 0, mt.Count())

	_, ok = mt.Remove([]byte("a"))
	assert.False(t, ok)
}

func TestIteratorOrdersKeys(t *testing.T) {
	mt := New(nil)
	keys := []string{"delta", "alpha", "charlie", "bravo"}
	for _, k := range keys {
		mt.Set([]byte(k), []byte(k+"-value"))
	}

	it := mt.Iterator()
	var seen []string
	for it.Next() {
		seen = append(seen, string(it.Key()))
		assert.Equal(t, string(it.Key())+"-value", string(it.Value()))
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta"}, seen)
}

func TestIteratorIsSnapshot(t *testing.T) {
	mt := New(nil)
	mt.Set([]byte("a"), []byte("1"))

	it := mt.Iterator()
	mt.Set([]byte("b"), []byte("2"))

	var count int
	for it.Next() {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestManyRandomInsertsStayOrdered(t *testing.T) {
	mt := New(nil)
	rng := rand.New(rand.NewSource(7))

	inserted := make(map[string]string)
	for i := 0; i < 2000; i++ {
		k := fmt.Sprintf("key-%06d", rng.Intn(5000))
		v := fmt.Sprintf("value-%d", i)
		mt.Set([]byte(k), []byte(v))
		inserted[k] = v
	}

	it := mt.Iterator()
	var prev string
	count := 0
	for it.Next() {
		k := string(it.Key())
		if count > 0 {
			assert.True(t, prev < k, "keys must be strictly increasing")
		}
		prev = k
		assert.Equal(t, inserted[k], string(it.Value()))
		count++
	}
	assert.Equal(t, len(inserted), count)
}
