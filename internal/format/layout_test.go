package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignBlock(t *testing.T) {
	require.Equal(t, 0, AlignBlock(0))
	require.Equal(t, 8, AlignBlock(1))
	require.Equal(t, 8, AlignBlock(8))
	require.Equal(t, 64, AlignBlock(60))
	require.Equal(t, 72, AlignBlock(65))
}

func TestIsBlockAligned(t *testing.T) {
	require.True(t, IsBlockAligned(64))
	require.True(t, IsBlockAligned(MinBlockSize))
	require.False(t, IsBlockAligned(60))
}

func TestPayloadCapacity(t *testing.T) {
	require.Equal(t, 56, PayloadCapacity(64, 1))
	require.Equal(t, 184, PayloadCapacity(64, 3))
	require.Equal(t, 0, PayloadCapacity(64, 0))
}

func TestLayoutConstants(t *testing.T) {
	require.Equal(t, 0, MetadataSize%BlockAlignment, "header must keep payloads aligned")
	require.Greater(t, MinBlockSize, MetadataSize)
}
