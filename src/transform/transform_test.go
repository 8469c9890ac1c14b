package transform

import (
	"testing"

	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/ospath"
	"github.com/kdt3rd/constructor/src/scope"
	"github.com/kdt3rd/constructor/src/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	dir := ospath.NewDirectory(t.TempDir())
	ts, err := NewSet(dir)
	require.NoError(t, err)
	return ts
}

func ccTool() *tool.Tool {
	t := tool.New("cc", "gcc")
	t.Extensions = []string{".c"}
	return t
}

func ldTool() *tool.Tool {
	t := tool.New("ld", "gcc-ld")
	t.InputTools = []string{"cc"}
	return t
}

func staticTool() *tool.Tool {
	t := tool.New("static", "ar")
	t.InputTools = []string{"cc"}
	return t
}

func TestTransformExecutableLinksCompiledSources(t *testing.T) {
	a := graph.NewArena()
	s := scope.New(nil)
	s.AddTool(ccTool())
	s.AddTool(ldTool())

	dir := ospath.NewDirectory("/proj")
	srcID := a.New(graph.KindSource, "main.c", dir)
	exeID := a.New(graph.KindExecutable, "app", dir)
	a.MustGet(exeID).Items = []graph.ID{srcID}
	s.AddItem(exeID)

	ts := newTestSet(t)
	require.NoError(t, TransformScope(a, s, nil, ts))

	build, ok := ts.GetTransform(exeID)
	require.True(t, ok)
	assert.Equal(t, "gcc-ld", build.Tool.Name)
}

func TestTransformMemoizesSharedDependency(t *testing.T) {
	a := graph.NewArena()
	s := scope.New(nil)
	s.AddTool(ccTool())
	s.AddTool(ldTool())

	dir := ospath.NewDirectory("/proj")
	sharedSrc := a.New(graph.KindSource, "shared.c", dir)
	cs1 := a.New(graph.KindCompileSet, "cs1", dir)
	a.MustGet(cs1).Items = []graph.ID{sharedSrc}
	exeID := a.New(graph.KindExecutable, "app", dir)
	a.MustGet(exeID).Items = []graph.ID{cs1}
	s.AddItem(exeID)

	ts := newTestSet(t)
	require.NoError(t, TransformScope(a, s, nil, ts))

	b1, _ := ts.GetTransform(sharedSrc)
	b2, _ := ts.GetTransform(sharedSrc)
	assert.Same(t, b1, b2)
}

func TestTransformLibraryDefaultsToStatic(t *testing.T) {
	a := graph.NewArena()
	s := scope.New(nil)
	s.AddTool(ccTool())
	s.AddTool(staticTool())

	dir := ospath.NewDirectory("/proj")
	srcID := a.New(graph.KindSource, "lib.c", dir)
	libID := a.New(graph.KindLibrary, "mylib", dir)
	a.MustGet(libID).Items = []graph.ID{srcID}
	s.AddItem(libID)

	ts := newTestSet(t)
	require.NoError(t, TransformScope(a, s, nil, ts))

	build, ok := ts.GetTransform(libID)
	require.True(t, ok)
	assert.Equal(t, "ar", build.Tool.Name)
}

func TestTransformExecutableChildIsOrderOnly(t *testing.T) {
	a := graph.NewArena()
	s := scope.New(nil)
	s.AddTool(ccTool())
	s.AddTool(ldTool())

	dir := ospath.NewDirectory("/proj")
	helperSrc := a.New(graph.KindSource, "helper.c", dir)
	helperExe := a.New(graph.KindExecutable, "helper", dir)
	a.MustGet(helperExe).Items = []graph.ID{helperSrc}

	mainSrc := a.New(graph.KindSource, "main.c", dir)
	mainExe := a.New(graph.KindExecutable, "app", dir)
	a.MustGet(mainExe).Items = []graph.ID{mainSrc, helperExe}
	s.AddItem(mainExe)

	ts := newTestSet(t)
	require.NoError(t, TransformScope(a, s, nil, ts))

	build, ok := ts.GetTransform(mainExe)
	require.True(t, ok)
	helperBuild, _ := ts.GetTransform(helperExe)
	orderDeps := build.ExtractDependencies(graph.Order)
	require.Len(t, orderDeps, 1)
	assert.Same(t, helperBuild, orderDeps[0])
}

func TestTransformExecutableCollectsLibsAndLibdirsFromLibraryChild(t *testing.T) {
	a := graph.NewArena()
	s := scope.New(nil)
	s.AddTool(ccTool())
	s.AddTool(ldTool())
	s.AddTool(staticTool())

	dir := ospath.NewDirectory("/proj")
	libSrc := a.New(graph.KindSource, "lib.c", dir)
	libID := a.New(graph.KindLibrary, "la", dir)
	a.MustGet(libID).Items = []graph.ID{libSrc}

	mainSrc := a.New(graph.KindSource, "main.c", dir)
	exeID := a.New(graph.KindExecutable, "app", dir)
	a.MustGet(exeID).Items = []graph.ID{mainSrc, libID}
	s.AddItem(exeID)

	ts := newTestSet(t)
	require.NoError(t, TransformScope(a, s, nil, ts))

	build, ok := ts.GetTransform(exeID)
	require.True(t, ok)

	libs, ok := build.Variables.Lookup("libs")
	require.True(t, ok)
	assert.Contains(t, libs.Values(), "la")

	libdirs, ok := build.Variables.Lookup("libdirs")
	require.True(t, ok)
	assert.Contains(t, libdirs.Values(), ts.LibDir.FullPath())
}

func TestTransformOptionalSourceOnlyActiveForMatchingSystem(t *testing.T) {
	a := graph.NewArena()
	s := scope.New(nil)
	s.AddTool(ccTool())

	dir := ospath.NewDirectory("/proj")
	srcID := a.New(graph.KindSource, "epoll.c", dir)
	optID := a.New(graph.KindOptionalSource, "epoll.c", dir)
	a.MustGet(optID).Items = []graph.ID{srcID}
	a.MustGet(optID).ConditionSystem = "Linux"
	s.AddItem(optID)

	ts := newTestSet(t)
	ts.System = "Darwin"
	require.NoError(t, TransformScope(a, s, nil, ts))

	build, ok := ts.GetTransform(optID)
	require.True(t, ok)
	assert.Nil(t, build.Tool)

	ts2 := newTestSet(t)
	ts2.System = "Linux"
	a2 := graph.NewArena()
	s2 := scope.New(nil)
	s2.AddTool(ccTool())
	srcID2 := a2.New(graph.KindSource, "epoll.c", dir)
	optID2 := a2.New(graph.KindOptionalSource, "epoll.c", dir)
	a2.MustGet(optID2).Items = []graph.ID{srcID2}
	a2.MustGet(optID2).ConditionSystem = "Linux"
	s2.AddItem(optID2)
	require.NoError(t, TransformScope(a2, s2, nil, ts2))

	build2, ok := ts2.GetTransform(optID2)
	require.True(t, ok)
	require.NotNil(t, build2.Tool)
	assert.Equal(t, "gcc", build2.Tool.Name)
}
