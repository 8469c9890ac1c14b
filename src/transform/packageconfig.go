package transform

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/graph"
)

// transformPackageConfig surfaces a resolved pkg-config result's variables
// onto a BuildItem. The Requires/Requires.private edges it carries were
// already added as Explicit graph dependencies when the package was
// resolved (see src/hostapi), so copyDependenciesToBuild picks them up
// without this function needing to re-walk them.
func (c ctx) transformPackageConfig(it *graph.Item) (*BuildItem, error) {
	if it.Resolved == nil {
		return nil, fmt.Errorf("transform: package config item %q was never resolved", it.Name)
	}
	ret := NewBuildItem(it.Name, it.Dir)
	ret.UseName = false
	ret.PseudoName = it.PseudoName
	ret.Variables = it.Resolved.BuildVars()
	return ret, nil
}
