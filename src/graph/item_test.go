package graph

import (
	"testing"

	"github.com/kdt3rd/constructor/src/ospath"
	"github.com/stretchr/testify/assert"
)

func TestSetTopLevelAndDefaultTarget(t *testing.T) {
	a := NewArena()
	id := newTestItem(a, "x")
	it := a.MustGet(id)
	it.SetTopLevel(true)
	it.SetDefaultTarget(false)
	assert.True(t, it.IsTopLevel)
	assert.False(t, it.DefaultTarget)
}

func TestSetPseudoTarget(t *testing.T) {
	a := NewArena()
	id := newTestItem(a, "x")
	it := a.MustGet(id)
	it.SetPseudoTarget("all")
	assert.Equal(t, "all", it.PseudoName)
}

func TestIncludeArtifactDirAddsParentAndCurrentPaths(t *testing.T) {
	a := NewArena()
	id := newTestItem(a, "x")
	it := a.MustGet(id)

	cur := ospath.NewDirectory("/proj")
	cur.Cd("src/widgets")

	it.IncludeArtifactDir(cur)

	v, ok := it.Variables.Lookup("includes")
	assert.True(t, ok)
	assert.True(t, v.Inherit)
	assert.Equal(t, "cc", v.ToolTag)
	assert.Equal(t, []string{"$builddir/artifacts/src", "$builddir/artifacts/src/widgets"}, v.Values())
}

func TestIncludeArtifactDirAtRoot(t *testing.T) {
	a := NewArena()
	id := newTestItem(a, "x")
	it := a.MustGet(id)

	it.IncludeArtifactDir(ospath.NewDirectory("/proj"))

	v, _ := it.Variables.Lookup("includes")
	assert.Equal(t, []string{"$builddir/artifacts"}, v.Values())
}
