package transform

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/kdt3rd/constructor/src/cli/logging"
	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/tool"
)

// transformCodeGenerator reroots the source directory under the artifact
// directory, materializes the file/item prefix, suffix, and indent side
// files under ".codegen/" (named "<tag>_<generator-name>", matching the
// original), assembles the resulting "codegen_info" command-token variable,
// and wires a plain (untransformed) pass-through BuildItem for every real
// input file, since inputs to this generator are embedded, not compiled.
func (c ctx) transformCodeGenerator(it *graph.Item) (*BuildItem, error) {
	artifactDir := it.Dir.Reroot(c.ts.ArtifactDir.FullPath())
	ret := NewBuildItem(it.Name, artifactDir)
	ret.Variables = it.Variables.Clone()
	ret.OutputDir = c.ts.ArtifactDir

	t, ok := lookupTool(c.ts.Tools, "codegen_binary_cstring")
	if !ok {
		return nil, fmt.Errorf("transform: code generator %q requires the codegen_binary_cstring tool to be registered", it.Name)
	}
	ret.Tool = t

	codegenVar := ret.Variables.Get("codegen_info")
	if it.DoCommas {
		codegenVar.Add("-comma")
	}

	entries := []struct {
		tag   string
		lines string
	}{
		{"file_prefix", it.FilePrefix},
		{"file_suffix", it.FileSuffix},
		{"item_prefix", it.ItemPrefix},
		{"item_suffix", it.ItemSuffix},
		{"item_indent", it.ItemIndent},
	}
	codegenDir := c.ts.ArtifactDir.Clone()
	codegenDir.Cd(".codegen")
	if err := codegenDir.Mkpath(); err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.lines == "" {
			continue
		}
		fileName := fmt.Sprintf("%s_%s", e.tag, it.Name)
		if err := codegenDir.UpdateIfDifferent(fileName, []byte(e.lines)); err != nil {
			return nil, err
		}
		full, err := codegenDir.CombinePath(fileName)
		if err != nil {
			return nil, err
		}
		sideFile := NewBuildItem(fileName, codegenDir)
		ret.AddDependency(graph.Implicit, sideFile)
		codegenVar.Add("-"+e.tag, full)
	}

	totalBytes := uint64(0)
	for _, childID := range it.Items {
		child := c.arena.MustGet(childID)
		plain := NewBuildItem(child.Name, child.Dir)
		ret.AddDependency(graph.Explicit, plain)
		totalBytes += uint64(len(child.FileContents))
	}
	logging.Log.Debugf("code generator %q will embed %s across %d inputs", it.Name, humanize.Bytes(totalBytes), len(it.Items))

	return ret, nil
}

func lookupTool(tools []*tool.Tool, name string) (*tool.Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
