package transform

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/pkgconfig"
	"github.com/kdt3rd/constructor/src/scope"
)

// ctx bundles the arguments every per-Kind transform function needs, so
// adding a field doesn't ripple through every signature.
type ctx struct {
	arena *graph.Arena
	ts    *Set
}

// TransformScope runs the Transform pass over s (and, recursively, its
// sub-scopes) into ts. conf may be nil for an unconfigured build.
func TransformScope(a *graph.Arena, s *scope.Scope, conf *scope.Configuration, ts *Set) error {
	if ts.System == "" {
		if conf != nil && conf.System != "" {
			ts.System = conf.System
		} else {
			ts.System = pkgconfig.HostSystemName()
		}
	}

	for _, sub := range s.SubScopes {
		child := ts.NewChild()
		if err := TransformScope(a, sub, conf, child); err != nil {
			return err
		}
	}

	active := s.EnabledToolsets
	if conf != nil {
		active = conf.ModifyActive(active)
	}
	for _, t := range active {
		ts.Vars.Get("libdirs").Add(t.LibDirs...)
		ts.Vars.Get("pkgpaths").Add(t.PkgPaths...)
	}

	for tag, tools := range s.TagMap {
		switch len(tools) {
		case 0:
			continue
		case 1:
			ts.AddTool(tools[0])
		default:
			matched := 0
			var pick = tools[0]
			for _, t := range tools {
				for _, candidate := range active {
					if found, ok := candidate.ToolForTag(tag); ok && found.Name == t.Name {
						matched++
						pick = t
					}
				}
			}
			if matched != 1 {
				return errUnresolvedTag(tag, matched)
			}
			ts.AddTool(pick)
		}
	}

	mergedVars := s.Variables
	if conf != nil {
		mergedVars = conf.MergedVariables(mergedVars)
	}
	ts.Vars = ts.Vars.Merge(mergedVars)

	c := ctx{arena: a, ts: ts}
	for _, itemID := range s.Items {
		if _, err := c.transformItem(itemID); err != nil {
			return err
		}
	}
	for _, itemID := range s.Items {
		if err := c.copyDependenciesToBuild(itemID); err != nil {
			return err
		}
	}
	return nil
}

// transformItem dispatches on the item's Kind, memoizing the result in the
// TransformSet's transform map so a shared dependency is only ever
// transformed once.
func (c ctx) transformItem(id graph.ID) (*BuildItem, error) {
	if b, ok := c.ts.GetTransform(id); ok {
		return b, nil
	}
	it := c.arena.MustGet(id)
	var (
		b   *BuildItem
		err error
	)
	switch it.Kind {
	case graph.KindSource:
		b, err = c.transformSource(it)
	case graph.KindCompileSet:
		b, err = c.transformCompileSet(it)
	case graph.KindExecutable:
		b, err = c.transformExecutable(it)
	case graph.KindLibrary:
		b, err = c.transformLibrary(it)
	case graph.KindCodeGenerator:
		b, err = c.transformCodeGenerator(it)
	case graph.KindCodeFilter:
		b, err = c.transformCodeFilter(it)
	case graph.KindCreateFile:
		b, err = c.transformCreateFile(it)
	case graph.KindOptionalSource:
		b, err = c.transformOptionalSource(it)
	case graph.KindExternLibrarySet:
		b, err = c.transformExternLibrarySet(it)
	case graph.KindPackageConfig:
		b, err = c.transformPackageConfig(it)
	default:
		return nil, fmt.Errorf("transform: unhandled item kind %v", it.Kind)
	}
	if err != nil {
		return nil, err
	}
	c.ts.RecordTransform(id, b)
	return b, nil
}

// copyDependenciesToBuild mirrors the item graph's own Explicit/Implicit/
// Order edges onto the BuildItem graph, transforming (and thereby
// memoizing) whatever they point at along the way.
func (c ctx) copyDependenciesToBuild(id graph.ID) error {
	b, ok := c.ts.GetTransform(id)
	if !ok {
		return nil
	}
	for _, dt := range []graph.DependencyType{graph.Explicit, graph.Implicit, graph.Order} {
		for _, depID := range c.arena.ExtractDependencies(id, dt) {
			depBuild, err := c.transformItem(depID)
			if err != nil {
				return err
			}
			b.AddDependency(dt, depBuild)
		}
	}
	return nil
}
