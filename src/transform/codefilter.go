package transform

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/graph"
)

// transformCodeFilter binds every child source to a single filtering tool
// (the one named by the item's ForceTool setting; it is an error if none is
// set or no registered tool has that name; extensions play no part), producing one
// grouping BuildItem analogous to CompileSet but for text-rewriting tools
// rather than compilers.
func (c ctx) transformCodeFilter(it *graph.Item) (*BuildItem, error) {
	ret := NewBuildItem(it.Name, it.Dir)
	ret.UseName = it.UseName
	ret.PseudoName = it.PseudoName
	ret.OutputDir = c.ts.ArtifactDir
	ret.Variables = it.Variables.Clone()

	name := it.ForceToolAll
	if name == "" {
		return nil, fmt.Errorf("transform: code filter %q has no tool bound (set ForceTool)", it.Name)
	}
	for _, childID := range it.Items {
		childBuild, err := c.transformItem(childID)
		if err != nil {
			return nil, err
		}
		childBuild.MarkAsDependent()
		ret.AddDependency(graph.Explicit, childBuild)
	}

	for _, tl := range c.ts.Tools {
		if tl.Name == name {
			ret.Tool = tl
			break
		}
	}
	if ret.Tool == nil {
		return nil, fmt.Errorf("transform: code filter %q: tool %q not registered", it.Name, name)
	}
	return ret, nil
}
