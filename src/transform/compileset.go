package transform

import (
	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/variable"
)

// transformCompileSet transforms every child source item and links them
// together with Explicit dependency edges onto a single grouping BuildItem,
// so later stages (Executable, Library) see one node per CompileSet rather
// than having to re-walk its children.
func (c ctx) transformCompileSet(it *graph.Item) (*BuildItem, error) {
	ret := NewBuildItem(it.Name, it.Dir)
	ret.UseName = it.UseName
	ret.PseudoName = it.PseudoName
	ret.Variables = it.Variables.Clone()

	for _, childID := range it.Items {
		childBuild, err := c.transformItem(childID)
		if err != nil {
			return nil, err
		}
		childBuild.MarkAsDependent()
		ret.AddDependency(graph.Explicit, childBuild)
	}
	return ret, nil
}

// propagateCFlags pushes flags gathered from a CompileSet-owning Item's
// Library/PackageConfig children onto every one of its Explicit (compile
// step) dependencies, so the per-source cflags a linker-level dependency
// implies reach the actual compile invocation rather than staying stranded
// on the link-level BuildItem.
func (c ctx) propagateCFlags(ret *BuildItem, flags *variable.Variable) {
	for _, compItem := range ret.ExtractDependencies(graph.Explicit) {
		compItem.AddToVariable("cflags", flags)
	}
}
