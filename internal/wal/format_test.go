package wal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordTypeString(t *testing.T) {
	assert.Equal(t, "FullType", FullType.String())
	assert.Equal(t, "ZeroType", ZeroType.String())
	assert.Equal(t, "UnknownType", RecordType(200).String())
}

func TestIsFragmentType(t *testing.T) {
	assert.True(t, IsFragmentType(FullType))
	assert.True(t, IsFragmentType(FirstType))
	assert.True(t, IsFragmentType(MiddleType))
	assert.True(t, IsFragmentType(LastType))
	assert.False(t, IsFragmentType(ZeroType))
	assert.False(t, IsFragmentType(RecordType(200)))
}
