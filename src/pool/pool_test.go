package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRespectsCapacity(t *testing.T) {
	p := New("link", 1)
	require.NoError(t, p.Acquire())
	assert.Error(t, p.Acquire())
}

func TestReleaseFreesCapacity(t *testing.T) {
	p := New("link", 1)
	require.NoError(t, p.Acquire())
	p.Release()
	assert.NoError(t, p.Acquire())
}

func TestZeroCapacityIsUnlimited(t *testing.T) {
	p := New("parse", 0)
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Acquire())
	}
}
