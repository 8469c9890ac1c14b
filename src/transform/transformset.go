package transform

import (
	"fmt"
	"strings"

	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/ospath"
	"github.com/kdt3rd/constructor/src/tool"
	"github.com/kdt3rd/constructor/src/variable"
)

// Set accumulates the resolved tools, variables, and BuildItems that result
// from transforming one Scope (and, by recursion, its children).
type Set struct {
	OutputDir   *ospath.Directory
	BinDir      *ospath.Directory
	LibDir      *ospath.Directory
	ArtifactDir *ospath.Directory

	// System is the target system OptionalSource/ExternLibrarySet
	// conditions and the pkg-config fallback probe resolve against; it
	// comes from the active Configuration's override, falling back to
	// the host runtime's own system.
	System string

	Tools []*tool.Tool
	Vars  *variable.Set

	Children []*Set

	transformMap map[graph.ID]*BuildItem
}

// NewSet creates a TransformSet rooted at outputDir, deriving and creating
// its bin/, lib/, and artifacts/ sub-directories.
func NewSet(outputDir *ospath.Directory) (*Set, error) {
	ts := &Set{
		OutputDir:    outputDir,
		BinDir:       outputDir.Clone(),
		Vars:         variable.NewSet(),
		transformMap: make(map[graph.ID]*BuildItem),
	}
	ts.BinDir.Cd("bin")
	ts.LibDir = outputDir.Clone()
	ts.LibDir.Cd("lib")
	ts.ArtifactDir = outputDir.Clone()
	ts.ArtifactDir.Cd("artifacts")
	for _, d := range []*ospath.Directory{ts.BinDir, ts.LibDir, ts.ArtifactDir} {
		if err := d.Mkpath(); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

// NewChild creates a TransformSet for a nested scope, sharing the parent's
// output directories.
func (ts *Set) NewChild() *Set {
	child := &Set{
		OutputDir:    ts.OutputDir,
		BinDir:       ts.BinDir,
		LibDir:       ts.LibDir,
		ArtifactDir:  ts.ArtifactDir,
		System:       ts.System,
		Vars:         variable.NewSet(),
		transformMap: make(map[graph.ID]*BuildItem),
	}
	ts.Children = append(ts.Children, child)
	return child
}

// GetTransform returns the memoized BuildItem for item, if the item graph
// node has already been transformed in this TransformSet. Parent and child
// Sets are not consulted.
func (ts *Set) GetTransform(item graph.ID) (*BuildItem, bool) {
	b, ok := ts.transformMap[item]
	return b, ok
}

// RecordTransform memoizes item's resulting BuildItem.
func (ts *Set) RecordTransform(item graph.ID, b *BuildItem) {
	ts.transformMap[item] = b
}

// AddTool appends t, replacing any existing tool sharing its tag.
func (ts *Set) AddTool(t *tool.Tool) {
	existing := ts.Tools[:0:0]
	replaced := false
	for _, e := range ts.Tools {
		if e.Tag == t.Tag {
			existing = append(existing, t)
			replaced = true
			continue
		}
		existing = append(existing, e)
	}
	if !replaced {
		existing = append(existing, t)
	}
	ts.Tools = existing
}

// FindTool returns the first tool handling file extension ext.
func (ts *Set) FindTool(ext string) (*tool.Tool, bool) {
	for _, t := range ts.Tools {
		if t.HandlesExtension(ext) {
			return t, true
		}
	}
	return nil, false
}

// FindToolByTag prefers a tool tagged tag handling ext, falling back to
// FindTool.
func (ts *Set) FindToolByTag(tag, ext string) (*tool.Tool, bool) {
	for _, t := range ts.Tools {
		if t.Tag == tag && t.HandlesExtension(ext) {
			return t, true
		}
	}
	return ts.FindTool(ext)
}

// FindToolForSet finds the linker/archiver tool whose tag starts with
// tagPrefix (e.g. "ld" or "static") and which accepts every tag in tags as
// input.
func (ts *Set) FindToolForSet(tagPrefix string, tags map[string]bool) (*tool.Tool, bool) {
	for _, t := range ts.Tools {
		if !strings.HasPrefix(t.Tag, tagPrefix) {
			continue
		}
		if t.HandlesTools(tags) {
			return t, true
		}
	}
	return nil, false
}

// GetVarValue renders the single value of a variable, or "" if unset.
func (ts *Set) GetVarValue(name string) string {
	v, ok := ts.Vars.Lookup(name)
	if !ok {
		return ""
	}
	return v.Value()
}

func errUnresolvedTag(tag string, count int) error {
	if count == 0 {
		return fmt.Errorf("transform: several tools registered for tag %q and no active toolset picks one", tag)
	}
	return fmt.Errorf("transform: active toolsets pick %d conflicting tools for tag %q", count, tag)
}
