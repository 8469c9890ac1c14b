package transform

import "github.com/kdt3rd/constructor/src/graph"

// transformCreateFile materializes its literal contents immediately (this
// pass is allowed file-system side effects for generated inputs, the same
// way CodeGenerator writes its side-files during transform rather than
// deferring to a downstream build step), producing an inert pass-through
// BuildItem with no tool.
func (c ctx) transformCreateFile(it *graph.Item) (*BuildItem, error) {
	if err := it.Dir.UpdateIfDifferent(it.Name, []byte(it.FileContents)); err != nil {
		return nil, err
	}
	ret := NewBuildItem(it.Name, it.Dir)
	ret.UseName = it.UseName
	ret.PseudoName = it.PseudoName
	return ret, nil
}
