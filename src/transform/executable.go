package transform

import (
	"fmt"
	"strings"

	"github.com/kdt3rd/constructor/src/cli/logging"
	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/variable"
)

// transformExecutable implements the Executable child-dispatch algorithm:
// Library/PackageConfig children contribute an Implicit link edge plus their
// cflags/ldflags/libs/libdirs, and a Library child additionally contributes
// its own name to "libs" and its built output directory to "libdirs";
// sibling Executable children are only Order-constrained (an exe can't link
// another exe); everything else is a compile-chain child, walked by
// followChains to discover which tool tags feed the link step.
func (c ctx) transformExecutable(it *graph.Item) (*BuildItem, error) {
	ret := NewBuildItem(it.Name, it.Dir)
	ret.UseName = it.UseName
	ret.PseudoName = it.PseudoName
	ret.OutputDir = c.ts.BinDir
	ret.TopLevel = it.IsTopLevel
	ret.DefaultTarget = it.DefaultTarget

	outflags := variable.New("cflags")
	tags := make(map[string]bool)
	var chains []*BuildItem

	for _, childID := range it.Items {
		child := c.arena.MustGet(childID)
		xi, err := c.transformItem(childID)
		if err != nil {
			return nil, err
		}
		xi.MarkAsDependent()

		switch child.Kind {
		case graph.KindLibrary, graph.KindPackageConfig:
			ret.AddDependency(graph.Implicit, xi)
			if cflags, ok := xi.Variables.Lookup("cflags"); ok {
				outflags.AddIfMissing(cflags.Values()...)
			}
			if ldflags, ok := xi.Variables.Lookup("ldflags"); ok {
				ret.AddToVariable("ldflags", ldflags)
			}
			if child.Kind == graph.KindLibrary {
				ret.Variables.Get("libs").Add(child.Name)
				ret.Variables.Get("libdirs").Add(xi.OutputDir.FullPath())
			}
			if libs, ok := xi.Variables.Lookup("libs"); ok {
				ret.AddToVariable("libs", libs)
			}
			if libdirs, ok := xi.Variables.Lookup("libdirs"); ok {
				ret.AddToVariable("libdirs", libdirs)
			}
		case graph.KindExecutable:
			logging.Log.Debugf("executable %q will be built before %q because of declared dependency", child.Name, it.Name)
			ret.AddDependency(graph.Order, xi)
		default:
			chains = append(chains, xi)
		}
	}

	c.followChains(chains, tags, ret)

	if !outflags.Empty() {
		c.propagateCFlags(ret, outflags)
	}

	t, ok := c.ts.FindToolForSet("ld", tags)
	if !ok {
		return nil, fmt.Errorf("transform: unable to find link tool for executable %q handling tags %s", it.Name, joinTags(tags))
	}
	ret.Tool = t
	return ret, nil
}

func joinTags(tags map[string]bool) string {
	names := make([]string, 0, len(tags))
	for t := range tags {
		names = append(names, t)
	}
	return strings.Join(names, ", ")
}

// followChains adds an Explicit edge from ret to every compile-chain child
// and collects the tool tags produced anywhere in that child's own Explicit
// dependency closure, so the caller can pick a link tool that accepts all
// of them.
func (c ctx) followChains(chains []*BuildItem, tags map[string]bool, ret *BuildItem) {
	for _, xi := range chains {
		ret.AddDependency(graph.Explicit, xi)
		c.collectTags(xi, tags, make(map[*BuildItem]bool))
	}
}

func (c ctx) collectTags(b *BuildItem, tags map[string]bool, visited map[*BuildItem]bool) {
	if visited[b] {
		return
	}
	visited[b] = true
	if b.Tool != nil {
		tags[b.Tool.Tag] = true
	}
	for _, dep := range b.ExtractDependencies(graph.Explicit) {
		c.collectTags(dep, tags, visited)
	}
}
