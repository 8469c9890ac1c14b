package pkgconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePC(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.pc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseBasicFields(t *testing.T) {
	path := writePC(t, "prefix=/usr\n"+
		"Name: widget\n"+
		"Description: a widget library\n"+
		"Version: 1.2.3\n"+
		"Libs: -L${prefix}/lib -lwidget\n"+
		"Cflags: -I${prefix}/include\n")
	pc, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "widget", pc.Name)
	assert.Equal(t, "1.2.3", pc.Version)
	assert.Equal(t, "-L/usr/lib -lwidget", pc.Libs)
	assert.Equal(t, "-I/usr/include", pc.Cflags)
}

func TestParseCommentEscaping(t *testing.T) {
	path := writePC(t, "Name: widget\n"+
		"Description: cost is \\#5 not a comment # this part is\n")
	pc, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "cost is #5 not a comment", pc.Description)
}

func TestParseLineContinuation(t *testing.T) {
	path := writePC(t, "Name: widget\n"+
		"Libs: -lwidget \\\n-lextra\n")
	pc, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "-lwidget -lextra", pc.Libs)
}

func TestParseDuplicateTagKeepsFirst(t *testing.T) {
	path := writePC(t, "Name: widget\nVersion: 1.0\nVersion: 2.0\n")
	pc, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", pc.Version)
}

func TestParseRequires(t *testing.T) {
	path := writePC(t, "Name: widget\nRequires: gadget >= 1.0, sprocket\n")
	pc, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, pc.Requires, 2)
	assert.Equal(t, "gadget", pc.Requires[0].Name)
	assert.Equal(t, GreaterEqual, pc.Requires[0].Op)
	assert.Equal(t, "1.0", pc.Requires[0].Ver)
	assert.Equal(t, "sprocket", pc.Requires[1].Name)
	assert.Equal(t, Any, pc.Requires[1].Op)
}

func TestBuildVarsRealFileOmitsLibdirs(t *testing.T) {
	path := writePC(t, "Name: widget\nLibs: -lwidget\n")
	pc, err := Parse(path)
	require.NoError(t, err)
	vars := pc.BuildVars()
	_, ok := vars.Lookup("libdirs")
	assert.False(t, ok)
}

// TestBuildVarsExtraLocalVarsDeterministicOrder checks that multiple
// unrecognized local vars always land in the result VariableSet's Names()
// in the same sorted order, rather than Go's randomized map iteration
// order.
func TestBuildVarsExtraLocalVarsDeterministicOrder(t *testing.T) {
	path := writePC(t, "Name: widget\n"+
		"zeta=z\n"+
		"alpha=a\n"+
		"middle=m\n")
	pc, err := Parse(path)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		vars := pc.BuildVars()
		var extras []string
		for _, name := range vars.Names() {
			switch name {
			case "alpha", "middle", "zeta":
				extras = append(extras, name)
			}
		}
		assert.Equal(t, []string{"alpha", "middle", "zeta"}, extras)
	}
}
