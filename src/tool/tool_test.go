package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnableLanguageUnknown(t *testing.T) {
	tl := New("cc", "gcc")
	tl.Options["language"] = &OptionGroup{Name: "language", Choices: map[string][]string{"c": {"-xc"}}}
	assert.Error(t, tl.EnableLanguage("rust"))
}

func TestEnableLanguageConflict(t *testing.T) {
	tl := New("cc", "gcc")
	tl.Options["language"] = &OptionGroup{Name: "language", Choices: map[string][]string{
		"c":   {"-xc"},
		"c++": {"-xc++"},
	}}
	require.NoError(t, tl.EnableLanguage("c"))
	assert.Error(t, tl.EnableLanguage("c++"))
}

func TestLanguageFallsBackToDefault(t *testing.T) {
	tl := New("cc", "gcc")
	tl.Options["language"] = &OptionGroup{Name: "language", Default: "c", Choices: map[string][]string{"c": {"-xc"}}}
	assert.Equal(t, "c", tl.Language())
}

func TestLanguageFallsBackToLexicographicallySmallestChoice(t *testing.T) {
	tl := New("cc", "gcc")
	tl.Options["language"] = &OptionGroup{Name: "language", Choices: map[string][]string{
		"objc":    {"-xobjective-c"},
		"c":       {"-xc"},
		"c++":     {"-xc++"},
		"fortran": {"-xf95"},
	}}
	for i := 0; i < 20; i++ {
		assert.Equal(t, "c", tl.Language())
	}
}

func TestHandlesExtension(t *testing.T) {
	tl := New("cc", "gcc")
	tl.Extensions = []string{".c"}
	tl.AltExtensions = []string{".i"}
	assert.True(t, tl.HandlesExtension(".c"))
	assert.True(t, tl.HandlesExtension(".i"))
	assert.False(t, tl.HandlesExtension(".cpp"))
}

func TestHandlesTools(t *testing.T) {
	tl := New("ld", "ld")
	tl.InputTools = []string{"cc", "cxx"}
	assert.True(t, tl.HandlesTools(map[string]bool{"cc": true}))
	assert.False(t, tl.HandlesTools(map[string]bool{"cc": true, "asm": true}))
}
