package transform

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/pkgconfig"
)

// transformExternLibrarySet resolves a set of pre-built, externally
// supplied libraries (neither pkg-config-described as a dependency nor
// built by this graph) against the TransformSet's target system, merging
// in whichever of pkg-config/fallback-probe found each one. Like
// OptionalSource, it is inert when ConditionSystem doesn't match. Unlike
// OptionalSource, resolution is all-or-nothing: if any library in the set
// fails to resolve, the whole set contributes nothing, and that is a hard
// error only when the set is Required.
func (c ctx) transformExternLibrarySet(it *graph.Item) (*BuildItem, error) {
	ret := NewBuildItem(it.Name, it.Dir)
	ret.UseName = false

	matches := it.ConditionSystem == "" || it.ConditionSystem == c.ts.System
	if !matches {
		return ret, nil
	}

	set := pkgconfig.Get(pkgconfig.SystemFromName(c.ts.System))
	ok := true
	for i, lib := range it.ExternLibs {
		op := pkgconfig.Any
		ver := ""
		if i < len(it.ExternLibOps) {
			op = it.ExternLibOps[i]
		}
		if i < len(it.ExternLibVers) {
			ver = it.ExternLibVers[i]
		}
		pc, found := set.Find(lib, op, ver)
		if !found {
			ok = false
			continue
		}
		vars := pc.BuildVars()
		for _, name := range vars.Names() {
			v, _ := vars.Lookup(name)
			ret.AddToVariable(name, v)
		}
	}

	if !ok {
		if it.Required {
			return nil, fmt.Errorf("transform: unable to resolve external libraries for required library set %q", it.Name)
		}
		return NewBuildItem(it.Name, it.Dir), nil
	}

	if len(it.Defines) > 0 {
		ret.Variables.Get("defines").Add(it.Defines...)
	}
	return ret, nil
}
