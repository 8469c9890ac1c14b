package hostapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kdt3rd/constructor/src/ospath"
	"github.com/kdt3rd/constructor/src/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemDefinesAddsPerSystemOverlayOnly(t *testing.T) {
	scope.Push()
	defer scope.Pop()

	h := New()
	h.SystemDefines("Linux", "HAVE_LINUX", "HAVE_EPOLL")

	v, ok := scope.Current().Variables.Lookup("defines")
	assert.True(t, ok)
	assert.Equal(t, "cc", v.ToolTag)
	assert.Equal(t, "${defines} HAVE_LINUX HAVE_EPOLL", v.ValueForSystem("Linux"))
	assert.Equal(t, "${defines}", v.ValueForSystem("Darwin"))
}

func TestAddSourceRegistersInCurrentScope(t *testing.T) {
	scope.Push()
	defer scope.Pop()

	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "main.c"), []byte("int main(){}"), 0o644))

	h := New()
	dir := ospath.NewDirectory(tmp)
	id, err := h.AddSource(dir, "main.c")
	require.NoError(t, err)

	assert.Contains(t, scope.Current().Items, id)
}

func TestAddSourceRejectsMissingFile(t *testing.T) {
	scope.Push()
	defer scope.Pop()

	h := New()
	dir := ospath.NewDirectory(t.TempDir())
	_, err := h.AddSource(dir, "missing.c")
	assert.Error(t, err)
}
