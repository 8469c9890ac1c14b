// Package transform implements the Transform pass: lowering a Scope's Item
// graph into a BuildItem graph suitable for a downstream Ninja/Make-style
// generator. Building that downstream generator is out of scope; this
// package stops at producing the resolved, tool-bound BuildItem graph.
package transform

import (
	"sort"

	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/ospath"
	"github.com/kdt3rd/constructor/src/tool"
	"github.com/kdt3rd/constructor/src/variable"
)

// BuildItem is a fully resolved leaf of the post-transform graph: one
// concrete tool invocation (or pass-through file) with its own variables
// and dependency edges onto other BuildItems.
type BuildItem struct {
	Name          string
	Dir           *ospath.Directory
	OutputDir     *ospath.Directory
	UseName       bool
	TopLevel      bool
	DefaultTarget bool
	Dependent     bool
	PseudoName    string

	Tool      *tool.Tool
	Variables *variable.Set

	deps map[*BuildItem]graph.DependencyType
}

// NewBuildItem creates a BuildItem.
func NewBuildItem(name string, dir *ospath.Directory) *BuildItem {
	return &BuildItem{
		Name:      name,
		Dir:       dir,
		UseName:   true,
		Variables: variable.NewSet(),
		deps:      make(map[*BuildItem]graph.DependencyType),
	}
}

// MarkAsDependent records that something else in the graph now depends on
// this BuildItem.
func (b *BuildItem) MarkAsDependent() {
	b.Dependent = true
}

// AddDependency adds (or strengthens) an edge from b to other, using the
// same strength-monotonic rule as graph.Arena.AddDependency.
func (b *BuildItem) AddDependency(dt graph.DependencyType, other *BuildItem) {
	if cur, ok := b.deps[other]; ok {
		if dt < cur {
			b.deps[other] = dt
		}
		return
	}
	b.deps[other] = dt
}

// ExtractDependencies returns b's dependencies of exactly dt, sorted by
// (name, directory) whatever the type, Chain included.
func (b *BuildItem) ExtractDependencies(dt graph.DependencyType) []*BuildItem {
	var out []*BuildItem
	for dep, edt := range b.deps {
		if edt == dt {
			out = append(out, dep)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Dir.FullPath() < out[j].Dir.FullPath()
	})
	return out
}

// AddToVariable merges other's values into b's variable named name.
func (b *BuildItem) AddToVariable(name string, other *variable.Variable) {
	b.Variables.Get(name).Add(other.Values()...)
}
