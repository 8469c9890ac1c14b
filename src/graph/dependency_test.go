package graph

import (
	"testing"

	"github.com/kdt3rd/constructor/src/ospath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(a *Arena, name string) ID {
	return a.New(KindSource, name, ospath.NewDirectory("/proj"))
}

func TestAddDependencyRejectsCycle(t *testing.T) {
	a := NewArena()
	x := newTestItem(a, "x")
	y := newTestItem(a, "y")
	require.NoError(t, a.AddDependency(x, y, Explicit))
	assert.Error(t, a.AddDependency(y, x, Explicit))
}

func TestAddDependencyRejectsSelf(t *testing.T) {
	a := NewArena()
	x := newTestItem(a, "x")
	assert.Error(t, a.AddDependency(x, x, Explicit))
}

func TestAddDependencyKeepsStrongerType(t *testing.T) {
	a := NewArena()
	x := newTestItem(a, "x")
	y := newTestItem(a, "y")
	require.NoError(t, a.AddDependency(x, y, Order))
	require.NoError(t, a.AddDependency(x, y, Chain))
	node := a.MustGet(x)
	assert.Equal(t, Chain, node.deps[y])
}

func TestAddDependencyDoesNotWeaken(t *testing.T) {
	a := NewArena()
	x := newTestItem(a, "x")
	y := newTestItem(a, "y")
	require.NoError(t, a.AddDependency(x, y, Chain))
	require.NoError(t, a.AddDependency(x, y, Order))
	node := a.MustGet(x)
	assert.Equal(t, Chain, node.deps[y])
}

func TestExtractDependenciesNonChainSorted(t *testing.T) {
	a := NewArena()
	root := newTestItem(a, "root")
	zeta := newTestItem(a, "zeta")
	alpha := newTestItem(a, "alpha")
	require.NoError(t, a.AddDependency(root, zeta, Explicit))
	require.NoError(t, a.AddDependency(root, alpha, Explicit))
	deps := a.ExtractDependencies(root, Explicit)
	require.Len(t, deps, 2)
	assert.Equal(t, "alpha", a.MustGet(deps[0]).Name)
	assert.Equal(t, "zeta", a.MustGet(deps[1]).Name)
}

// TestExtractDependenciesChainNearestFirst builds a diamond:
// root -> a -> c, root -> b -> c (all CHAIN). c is reachable via both a and
// b; the nearest-first dedup should keep exactly one occurrence of c.
func TestExtractDependenciesChainNearestFirst(t *testing.T) {
	a := NewArena()
	root := newTestItem(a, "root")
	ai := newTestItem(a, "a")
	bi := newTestItem(a, "b")
	ci := newTestItem(a, "c")
	require.NoError(t, a.AddDependency(root, ai, Chain))
	require.NoError(t, a.AddDependency(root, bi, Chain))
	require.NoError(t, a.AddDependency(ai, ci, Chain))
	require.NoError(t, a.AddDependency(bi, ci, Chain))

	chain := a.ExtractDependencies(root, Chain)
	seen := map[ID]int{}
	for _, id := range chain {
		seen[id]++
	}
	assert.Equal(t, 1, seen[ci])
}

// TestExtractDependenciesChainDeterministicOrder checks that a node with
// more than one direct CHAIN neighbor always walks them in (name, dir)
// order, the same tiebreak ExtractDependencies uses for every other
// dependency type, rather than Go's randomized map iteration order.
func TestExtractDependenciesChainDeterministicOrder(t *testing.T) {
	a := NewArena()
	root := newTestItem(a, "root")
	zeta := newTestItem(a, "zeta")
	alpha := newTestItem(a, "alpha")
	middle := newTestItem(a, "middle")
	require.NoError(t, a.AddDependency(root, zeta, Chain))
	require.NoError(t, a.AddDependency(root, alpha, Chain))
	require.NoError(t, a.AddDependency(root, middle, Chain))

	for i := 0; i < 20; i++ {
		chain := a.ExtractDependencies(root, Chain)
		require.Len(t, chain, 3)
		assert.Equal(t, "alpha", a.MustGet(chain[0]).Name)
		assert.Equal(t, "middle", a.MustGet(chain[1]).Name)
		assert.Equal(t, "zeta", a.MustGet(chain[2]).Name)
	}
}
