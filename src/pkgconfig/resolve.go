package pkgconfig

import (
	"sort"
	"strings"

	"github.com/kdt3rd/constructor/src/variable"
)

// BuildVars renders the variables a transformed BuildItem needs for this
// package: own Cflags plus any "cflags" local var, own Libs plus any
// "ldflags" local var, and Version. A result synthesized by the fallback
// probe (PackageFile empty) additionally surfaces "libdirs"/"includes";
// a real ".pc"-backed result does not.
func (pc *PackageConfig) BuildVars() *variable.Set {
	set := variable.NewSet()

	cflags := set.Get("cflags")
	cflags.Add(strings.Fields(pc.Cflags)...)
	if v, ok := pc.LocalVars["cflags"]; ok {
		cflags.Add(strings.Fields(v)...)
	}

	ldflags := set.Get("ldflags")
	ldflags.Add(strings.Fields(pc.Libs)...)
	if v, ok := pc.LocalVars["ldflags"]; ok {
		ldflags.Add(v)
	}

	if pc.Version != "" {
		set.Get("version").Add(pc.Version)
	}
	if pc.LibsPrivate != "" {
		set.Get("libs.static").Add(strings.Fields(pc.LibsPrivate)...)
	}

	if pc.PackageFile == "" {
		if v, ok := pc.LocalVars["libdirs"]; ok {
			set.Get("libdirs").Add(v)
		}
		if v, ok := pc.LocalVars["includes"]; ok {
			set.Get("includes").Add(v)
		}
	}

	extraNames := make([]string, 0, len(pc.LocalVars))
	for name := range pc.LocalVars {
		switch name {
		case "cflags", "ldflags", "libdirs", "includes":
			continue
		default:
			extraNames = append(extraNames, name)
		}
	}
	sort.Strings(extraNames)
	for _, name := range extraNames {
		set.Get(name).Add(pc.LocalVars[name])
	}
	return set
}

// AllRequires returns Requires followed by Requires.private, the order the
// original resolves them in when adding EXPLICIT dependencies.
func (pc *PackageConfig) AllRequires() []Requirement {
	out := append([]Requirement(nil), pc.Requires...)
	return append(out, pc.RequiresPrivate...)
}
