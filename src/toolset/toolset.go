// Package toolset groups tools under a name so a scope can switch between,
// say, a debug and a release compiler chain by enabling one toolset.
package toolset

import "github.com/kdt3rd/constructor/src/tool"

// Toolset is a named collection of tools, plus the library/pkg-config
// search paths that apply while it is active.
type Toolset struct {
	Name      string
	Tools     []*tool.Tool
	LibDirs   []string
	PkgPaths  []string
}

// New creates an empty Toolset.
func New(name string) *Toolset {
	return &Toolset{Name: name}
}

// Tags returns the set of tags carried by the toolset's tools.
func (ts *Toolset) Tags() map[string]bool {
	out := make(map[string]bool, len(ts.Tools))
	for _, t := range ts.Tools {
		out[t.Tag] = true
	}
	return out
}

// ToolForTag returns the toolset's tool for tag, if any.
func (ts *Toolset) ToolForTag(tag string) (*tool.Tool, bool) {
	for _, t := range ts.Tools {
		if t.Tag == tag {
			return t, true
		}
	}
	return nil, false
}

// ReplaceByTag inserts t into the toolset, replacing any existing tool that
// shares t's tag. This is the same rule Scope.AddTool and Scope.UseToolSet
// apply to their own tool lists.
func ReplaceByTag(tools []*tool.Tool, t *tool.Tool) []*tool.Tool {
	out := make([]*tool.Tool, 0, len(tools)+1)
	replaced := false
	for _, existing := range tools {
		if existing.Tag == t.Tag {
			out = append(out, t)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, t)
	}
	return out
}
