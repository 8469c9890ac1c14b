package transform

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/cli/logging"
	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/variable"
)

// transformLibrary is Executable's sibling algorithm, with two additions:
// it also tracks outlibs/outlibdirs (so a linking executable can see every
// library transitively pulled in), and it must additionally resolve which
// kind of library (static or dynamic) it is building before it can pick a
// tool.
func (c ctx) transformLibrary(it *graph.Item) (*BuildItem, error) {
	ret := NewBuildItem(it.Name, it.Dir)
	ret.UseName = false
	ret.PseudoName = it.PseudoName
	ret.OutputDir = c.ts.LibDir
	ret.TopLevel = true
	ret.DefaultTarget = true

	outlibs := variable.New("libs")
	outlibdirs := variable.New("libdirs")
	outflags := variable.New("cflags")
	outldflags := variable.New("ldflags")
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
			outldflags.Add(valuesOf(xi, "ldflags")...)
			if child.Kind == graph.KindLibrary {
				outlibs.AddIfMissing(child.Name)
			}
			outlibs.Add(valuesOf(xi, "libs")...)
			outlibdirs.AddIfMissing(valuesOf(xi, "libdirs")...)
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

	libType := it.LibraryType
	if libType == "" {
		libType = c.ts.GetVarValue("default_library_type")
	}
	if libType == "" {
		libType = "static"
		logging.Log.Debugf("no library type declared for %q, defaulting to static", it.Name)
	}

	t, ok := c.ts.FindToolForSet(libType, tags)
	if !ok {
		return nil, fmt.Errorf("transform: unable to find library tool to handle library type %q for %q", libType, it.Name)
	}
	ret.Tool = t

	if libType == "static" {
		if !outlibs.Empty() {
			outlibs.RemoveDuplicatesKeepLast()
			ret.AddToVariable("libs", outlibs)
		}
		if !outlibdirs.Empty() {
			ret.AddToVariable("libdirs", outlibdirs)
		}
		if !outldflags.Empty() {
			ret.AddToVariable("ldflags", outldflags)
		}
	}

	return ret, nil
}

func valuesOf(b *BuildItem, name string) []string {
	v, ok := b.Variables.Lookup(name)
	if !ok {
		return nil
	}
	return v.Values()
}
