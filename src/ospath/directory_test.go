package ospath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCdAndFullPath(t *testing.T) {
	d := NewDirectory("/home/user/project")
	d.Cd("src/core")
	assert.Equal(t, "/home/user/project/src/core", d.FullPath())
}

func TestCdUpErrorsAtRoot(t *testing.T) {
	d := NewDirectory("/home/user/project")
	require.Error(t, d.CdUp())
}

func TestCdUpPopsOneElement(t *testing.T) {
	d := NewDirectory("/home/user/project")
	d.Cd("a/b")
	require.NoError(t, d.CdUp())
	assert.Equal(t, "/home/user/project/a", d.FullPath())
}

func TestReroot(t *testing.T) {
	d := NewDirectory("/src/project")
	d.Cd("lib/widgets")
	rerooted := d.Reroot("/build/artifacts")
	assert.Equal(t, "/build/artifacts/lib/widgets", rerooted.FullPath())
	assert.Equal(t, "/src/project/lib/widgets", d.FullPath())
}

func TestCombinePathDotDot(t *testing.T) {
	d := NewDirectory("/a/b/c")
	p, err := d.CombinePath("../x")
	require.NoError(t, err)
	assert.Equal(t, "/a/b/x", p)
}

func TestCombinePathEscapesRoot(t *testing.T) {
	d := NewDirectory("/a")
	_, err := d.CombinePath("../../x")
	assert.Error(t, err)
}

func TestRelPath(t *testing.T) {
	d := NewDirectory("/home/user/project")
	assert.Equal(t, "", d.RelPath())
	d.Cd("src/core")
	assert.Equal(t, "src/core", d.RelPath())
}

func TestPushdPopd(t *testing.T) {
	d1 := NewDirectory("/one")
	d2 := NewDirectory("/two")
	Pushd(d1)
	defer func() { _ = Popd() }()
	Pushd(d2)
	assert.Equal(t, d2, Current())
	require.NoError(t, Popd())
	assert.Equal(t, d1, Current())
}

func TestPopdEmptyErrors(t *testing.T) {
	for Current() != nil {
		_ = Popd()
	}
	assert.Error(t, Popd())
}

func TestExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "main.c"), []byte("x"), 0o644))

	d := NewDirectory(tmp)
	assert.True(t, d.Exists("main.c"))
	assert.False(t, d.Exists("missing.c"))
}
