// Package hostapi is the binding surface an external script runtime calls
// into to build up the item graph: create items, wire dependencies, push
// and pop scopes, and register tools and toolsets. The script language
// itself is an out-of-scope external collaborator; this package is
// deliberately just the narrow Go surface it would call, not an interpreter
// or reflection-based binder.
package hostapi

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/graph"
	"github.com/kdt3rd/constructor/src/ospath"
	"github.com/kdt3rd/constructor/src/pkgconfig"
	"github.com/kdt3rd/constructor/src/pool"
	"github.com/kdt3rd/constructor/src/scope"
	"github.com/kdt3rd/constructor/src/tool"
	"github.com/kdt3rd/constructor/src/toolset"
)

// Host holds the item arena a script engine needs to drive a single
// project file. The scope stack its methods push, pop and populate is the
// process-wide one kept by package scope, not a field of Host.
type Host struct {
	Arena *graph.Arena
}

// New creates a Host with a fresh Arena.
func New() *Host {
	return &Host{Arena: graph.NewArena()}
}

// PushScope opens a new nested scope.
func (h *Host) PushScope() *scope.Scope {
	return scope.Push()
}

// PopScope closes the current scope, folding it into its parent per
// Scope.Pop's adoption rule.
func (h *Host) PopScope() {
	scope.Pop()
}

// AddSource creates a Source item for name under dir and adds it to the
// current scope. name must already exist in dir, matching the original's
// addItem(string) contract; a missing file is a Missing-input error, not a
// dangling Source item.
func (h *Host) AddSource(dir *ospath.Directory, name string) (graph.ID, error) {
	if !dir.Exists(name) {
		return 0, fmt.Errorf("hostapi: file %q does not exist in directory %q", name, dir.FullPath())
	}
	id := h.Arena.New(graph.KindSource, name, dir)
	scope.Current().AddItem(id)
	return id, nil
}

// AddCompileSet creates a CompileSet grouping the given child items.
func (h *Host) AddCompileSet(dir *ospath.Directory, name string, children []graph.ID) graph.ID {
	id := h.Arena.New(graph.KindCompileSet, name, dir)
	it := h.Arena.MustGet(id)
	it.Items = append(it.Items, children...)
	scope.Current().AddItem(id)
	return id
}

// AddExecutable creates an Executable item depending on children.
func (h *Host) AddExecutable(dir *ospath.Directory, name string, children []graph.ID) graph.ID {
	id := h.Arena.New(graph.KindExecutable, name, dir)
	it := h.Arena.MustGet(id)
	it.Items = append(it.Items, children...)
	scope.Current().AddItem(id)
	return id
}

// AddLibrary creates a Library item depending on children. libraryType is
// "static", "dynamic", or "" to defer to the scope default.
func (h *Host) AddLibrary(dir *ospath.Directory, name string, children []graph.ID, libraryType string) graph.ID {
	id := h.Arena.New(graph.KindLibrary, name, dir)
	it := h.Arena.MustGet(id)
	it.Items = append(it.Items, children...)
	it.LibraryType = libraryType
	scope.Current().AddItem(id)
	return id
}

// AddCodeGenerator creates a CodeGenerator item embedding children via the
// binary-to-C-string back end.
func (h *Host) AddCodeGenerator(dir *ospath.Directory, name string, children []graph.ID, doCommas bool) graph.ID {
	id := h.Arena.New(graph.KindCodeGenerator, name, dir)
	it := h.Arena.MustGet(id)
	it.Items = append(it.Items, children...)
	it.DoCommas = doCommas
	scope.Current().AddItem(id)
	return id
}

// AddCreateFile creates a CreateFile item that writes contents verbatim.
func (h *Host) AddCreateFile(dir *ospath.Directory, name, contents string) graph.ID {
	id := h.Arena.New(graph.KindCreateFile, name, dir)
	it := h.Arena.MustGet(id)
	it.FileContents = contents
	scope.Current().AddItem(id)
	return id
}

// AddOptionalSource creates an OptionalSource item wrapping child, active
// only when the build's target system matches conditionSystem (empty
// means always active).
func (h *Host) AddOptionalSource(dir *ospath.Directory, name string, child graph.ID, conditionSystem string) graph.ID {
	id := h.Arena.New(graph.KindOptionalSource, name, dir)
	it := h.Arena.MustGet(id)
	it.Items = []graph.ID{child}
	it.ConditionSystem = conditionSystem
	scope.Current().AddItem(id)
	return id
}

// ExternLib names one pre-built library an ExternLibrarySet resolves via
// pkg-config/fallback probe at transform time.
type ExternLib struct {
	Name string
	Op   pkgconfig.CompareOp
	Ver  string
}

// AddExternLibrarySet creates an ExternLibrarySet item naming pre-built
// libraries this graph does not itself build, active only when the build's
// target system matches conditionSystem (empty means always active).
// required controls whether a resolution miss is a hard transform error or
// a silent skip of the whole set; defines lists preprocessor defines added
// only once every library in the set resolves.
func (h *Host) AddExternLibrarySet(dir *ospath.Directory, name string, conditionSystem string, libs []ExternLib, required bool, defines []string) graph.ID {
	id := h.Arena.New(graph.KindExternLibrarySet, name, dir)
	it := h.Arena.MustGet(id)
	it.ConditionSystem = conditionSystem
	it.Required = required
	it.Defines = defines
	for _, l := range libs {
		it.ExternLibs = append(it.ExternLibs, l.Name)
		it.ExternLibOps = append(it.ExternLibOps, l.Op)
		it.ExternLibVers = append(it.ExternLibVers, l.Ver)
	}
	scope.Current().AddItem(id)
	return id
}

// SystemDefines adds defines to the current scope's "defines" variable,
// but only active when the active Configuration targets system. Mirrors
// the original's system_defines binding: the variable is tagged for the
// "cc" tool and inherits from its parent scope the same way a plain
// defines() call does.
func (h *Host) SystemDefines(system string, defines ...string) {
	s := scope.Current()
	v := s.Variables.Get("defines")
	if s.Parent != nil {
		v.Inherit = true
	}
	v.ToolTag = "cc"
	v.AddPerSystem(system, defines)
}

// SetTopLevel marks item as a top-level target (or not).
func (h *Host) SetTopLevel(item graph.ID, b bool) {
	h.Arena.MustGet(item).SetTopLevel(b)
}

// SetDefaultTarget controls whether item builds without being named
// explicitly.
func (h *Host) SetDefaultTarget(item graph.ID, b bool) {
	h.Arena.MustGet(item).SetDefaultTarget(b)
}

// SetUseNameForInput controls whether item's own name is used as the input
// token passed to its tool.
func (h *Host) SetUseNameForInput(item graph.ID, b bool) {
	h.Arena.MustGet(item).SetUseNameAsInput(b)
}

// SetPseudoTarget gives item an alternate generator-facing name.
func (h *Host) SetPseudoTarget(item graph.ID, name string) {
	h.Arena.MustGet(item).SetPseudoTarget(name)
}

// IncludeArtifactDir adds item's generated-artifact directories (mirroring
// the current source directory and its parent) to its include path.
func (h *Host) IncludeArtifactDir(item graph.ID) {
	h.Arena.MustGet(item).IncludeArtifactDir(ospath.Current())
}

// AddDependency declares an explicit dependency edge between two items
// already in the arena.
func (h *Host) AddDependency(from, to graph.ID, dt graph.DependencyType) error {
	return h.Arena.AddDependency(from, to, dt)
}

// FindPackage resolves name via the given pkgconfig.Set (one per target
// system), creating a PackageConfig item for it and adding Explicit
// dependencies for everything it Requires, recursively. required controls
// whether a miss is an error or a silent skip.
func (h *Host) FindPackage(set *pkgconfig.Set, dir *ospath.Directory, name string, op pkgconfig.CompareOp, ver string, required bool) (graph.ID, error) {
	pc, ok := set.Find(name, op, ver)
	if !ok {
		if required {
			verClause := ""
			if op != pkgconfig.Any {
				verClause = fmt.Sprintf(", version %v %s", op, ver)
			}
			return 0, fmt.Errorf("unable to find required package '%s'%s - please ensure it is installed or the package config search path is set appropriately", name, verClause)
		}
		return 0, nil
	}

	id := h.Arena.New(graph.KindPackageConfig, name, dir)
	it := h.Arena.MustGet(id)
	it.Resolved = pc
	it.UseName = false
	scope.Current().AddItem(id)

	for _, req := range pc.AllRequires() {
		depID, err := h.FindPackage(set, dir, req.Name, req.Op, req.Ver, true)
		if err != nil {
			return 0, err
		}
		if depID != 0 {
			if err := h.Arena.AddDependency(id, depID, graph.Explicit); err != nil {
				return 0, err
			}
		}
	}
	return id, nil
}

// AddTool registers t in the current scope.
func (h *Host) AddTool(t *tool.Tool) {
	scope.Current().AddTool(t)
}

// UseToolSet enables ts in the current scope.
func (h *Host) UseToolSet(ts *toolset.Toolset) {
	scope.Current().UseToolSet(ts)
}

// AddPool registers a named concurrency pool in the current scope.
func (h *Host) AddPool(name string, capacity int) *pool.Pool {
	p := pool.New(name, capacity)
	scope.Current().Pools[name] = p
	return p
}

// OpenConfiguration opens a new named Configuration.
func (h *Host) OpenConfiguration(name string) (*scope.Configuration, error) {
	return scope.NewConfiguration(name)
}

// CloseConfiguration finishes the given Configuration's pseudo-scope.
func (h *Host) CloseConfiguration(c *scope.Configuration) {
	c.Finish()
}

// DefaultConfiguration marks a previously opened configuration as the one
// that applies when no configuration is named explicitly.
func (h *Host) DefaultConfiguration(name string) (*scope.Configuration, error) {
	return scope.DefaultConfiguration(name)
}
