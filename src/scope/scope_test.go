package scope

import (
	"testing"

	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/tool"
	"github.com/stretchr/testify/assert"
)

func TestAddToolReplacesSameTag(t *testing.T) {
	s := New(nil)
	s.AddTool(tool.New("cc", "gcc"))
	s.AddTool(tool.New("cc", "clang"))
	assert.Len(t, s.Tools, 1)
	assert.Equal(t, "clang", s.Tools[0].Name)
	assert.Equal(t, "clang", s.TagMap["cc"][0].Name)
}

func TestCheckAdoptTrueWhenUnchanged(t *testing.T) {
	parent := New(nil)
	child := parent.PushChild()
	assert.True(t, parent.checkAdopt(child))
}

func TestCheckAdoptFalseWhenVariablesChanged(t *testing.T) {
	parent := New(nil)
	child := parent.PushChild()
	child.Variables.Get("cflags").Add("-O2")
	assert.False(t, parent.checkAdopt(child))
}

func TestPopAdoptsItemsWhenUnchanged(t *testing.T) {
	parent := New(nil)
	child := parent.PushChild()
	child.AddItem(graph.ID(7))
	parent.Pop(child)
	assert.Equal(t, []graph.ID{7}, parent.Items)
	assert.Empty(t, parent.SubScopes)
}

func TestPopKeepsSubScopeWhenChanged(t *testing.T) {
	parent := New(nil)
	child := parent.PushChild()
	child.Variables.Get("cflags").Add("-O2")
	parent.Pop(child)
	assert.Len(t, parent.SubScopes, 1)
}
