// Package scope implements the nested lexical scopes that accumulate
// variables, tools, items, and pools while a project file is being
// processed, plus the Configuration overlay that lets a build define several
// named variants (debug/release, and so on) without re-declaring everything.
package scope

import (
	"reflect"

	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/pool"
	"github.com/kdt3rd/constructor/src/tool"
	"github.com/kdt3rd/constructor/src/toolset"
	"github.com/kdt3rd/constructor/src/variable"
)

// Scope is one lexical scope in the project-file tree.
type Scope struct {
	Parent *Scope

	Variables *variable.Set
	Options   *variable.Set

	SubScopes []*Scope
	Items     []graph.ID

	Tools  []*tool.Tool
	TagMap map[string][]*tool.Tool

	EnabledToolsets []*toolset.Toolset
	ExtensionMap    map[string]*tool.Tool

	Pools map[string]*pool.Pool
}

// New creates an empty Scope, optionally nested under parent.
func New(parent *Scope) *Scope {
	return &Scope{
		Parent:       parent,
		Variables:    variable.NewSet(),
		Options:      variable.NewSet(),
		TagMap:       make(map[string][]*tool.Tool),
		ExtensionMap: make(map[string]*tool.Tool),
		Pools:        make(map[string]*pool.Pool),
	}
}

// AddItem appends item to the scope's item list, deduplicated like a set.
func (s *Scope) AddItem(item graph.ID) {
	for _, existing := range s.Items {
		if existing == item {
			return
		}
	}
	s.Items = append(s.Items, item)
}

// AddTool replaces any existing tool sharing t's tag in both Tools and
// TagMap, otherwise appends it.
func (s *Scope) AddTool(t *tool.Tool) {
	s.Tools = toolset.ReplaceByTag(s.Tools, t)
	s.TagMap[t.Tag] = toolset.ReplaceByTag(s.TagMap[t.Tag], t)
}

// UseToolSet enables ts, replacing any currently enabled toolset that
// shares a tag with one of ts's tools.
func (s *Scope) UseToolSet(ts *toolset.Toolset) {
	tags := ts.Tags()
	filtered := s.EnabledToolsets[:0:0]
	for _, existing := range s.EnabledToolsets {
		conflict := false
		for tag := range existing.Tags() {
			if tags[tag] {
				conflict = true
				break
			}
		}
		if !conflict {
			filtered = append(filtered, existing)
		}
	}
	s.EnabledToolsets = append(filtered, ts)
}

// PushChild creates and returns a new child scope.
func (s *Scope) PushChild() *Scope {
	child := New(s)
	return child
}

// Pop folds child back into s, adopting it (absorbing its items/tools and
// splicing its sub-scopes directly into s) when child changed none of the
// state that would make that unsafe, and keeping it as a distinct sub-scope
// otherwise.
func (s *Scope) Pop(child *Scope) {
	if s.checkAdopt(child) {
		for _, item := range child.Items {
			s.AddItem(item)
		}
		for _, t := range child.Tools {
			s.AddTool(t)
		}
		s.SubScopes = append(s.SubScopes, child.SubScopes...)
		return
	}
	s.SubScopes = append(s.SubScopes, child)
}

// checkAdopt reports whether child may be merged directly into its parent:
// only true if child left variables, options, enabled toolsets, extension
// map, and pools exactly as the parent had them. Pop pulls the child's added
// items and tools back in only when this reports true.
func (s *Scope) checkAdopt(child *Scope) bool {
	if !variableSetsEqual(s.Variables, child.Variables) {
		return false
	}
	if !variableSetsEqual(s.Options, child.Options) {
		return false
	}
	if !reflect.DeepEqual(s.EnabledToolsets, child.EnabledToolsets) {
		return false
	}
	if len(s.ExtensionMap) != len(child.ExtensionMap) {
		return false
	}
	for k, v := range s.ExtensionMap {
		if child.ExtensionMap[k] != v {
			return false
		}
	}
	if len(s.Pools) != len(child.Pools) {
		return false
	}
	for k, v := range s.Pools {
		if child.Pools[k] != v {
			return false
		}
	}
	return true
}

func variableSetsEqual(a, b *variable.Set) bool {
	an, bn := a.Names(), b.Names()
	if len(an) != len(bn) {
		return false
	}
	for _, name := range an {
		av, _ := a.Lookup(name)
		bv, ok := b.Lookup(name)
		if !ok {
			return false
		}
		if !reflect.DeepEqual(av.Values(), bv.Values()) {
			return false
		}
	}
	return true
}
