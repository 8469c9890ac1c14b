package transform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/tool"
)

// transformSource binds a single source file to the tool that handles its
// extension, then applies that tool's chain rule: for every output
// extension it declares, the output name is lowered again under the
// artifact dir (so foo.y -> foo.c -> foo.o), each later stage gaining an
// Explicit dependency on the one it was produced from. The BuildItem
// returned is the terminal stage of that chain - the one whose extension
// no tool claims - mirroring CompileSet::applyTransform.
func (c ctx) transformSource(it *graph.Item) (*BuildItem, error) {
	ret := NewBuildItem(it.Name, it.Dir)
	ret.UseName = it.UseName
	ret.PseudoName = it.PseudoName
	ret.OutputDir = c.ts.ArtifactDir
	ret.Variables = it.Variables.Clone()

	ext := filepath.Ext(it.Name)
	t, ok := c.resolveTool(it, ext)
	if !ok {
		return nil, fmt.Errorf("transform: no tool handles extension %q for source %s", ext, it.Name)
	}
	ret.Tool = t

	return c.applyChainOutputs(ret)
}

// applyChainOutputs recurses into stage's tool's declared output
// extensions, creating one BuildItem per intermediate stage rerooted under
// the artifact dir, and returns the chain's terminal BuildItem: the stage
// whose extension no tool in the TransformSet claims. Each stage depends
// (Explicit) on the one immediately before it in the chain.
func (c ctx) applyChainOutputs(stage *BuildItem) (*BuildItem, error) {
	if stage.Tool == nil || len(stage.Tool.OutputExts) == 0 {
		return stage, nil
	}

	terminal := stage
	for _, outExt := range stage.Tool.OutputExts {
		next := NewBuildItem(replaceExt(stage.Name, outExt), stage.OutputDir)
		next.OutputDir = c.ts.ArtifactDir
		if t, ok := c.ts.FindTool(outExt); ok {
			next.Tool = t
		}
		next.AddDependency(graph.Explicit, stage)

		resolved, err := c.applyChainOutputs(next)
		if err != nil {
			return nil, err
		}
		terminal = resolved
	}
	return terminal, nil
}

// replaceExt swaps name's current extension for ext (which must include its
// own leading dot).
func replaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// resolveTool applies an item's own tool overrides (a specific extension
// override first, then a blanket force-all) before falling back to the
// TransformSet's tag/extension lookup.
func (c ctx) resolveTool(it *graph.Item, ext string) (*tool.Tool, bool) {
	name := it.ForceToolExt[ext]
	if name == "" {
		name = it.ForceToolAll
	}
	if name != "" {
		for _, t := range c.ts.Tools {
			if t.Name == name {
				return t, true
			}
		}
		return nil, false
	}
	return c.ts.FindTool(ext)
}
