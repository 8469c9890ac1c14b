// Package graph implements the build graph's abstract Item and its ten
// variants, wired together by typed, strength-ordered dependency edges.
// Items are allocated from an Arena and referenced by integer ID rather than
// by shared pointer, per the arena-by-ID design note: a single process can
// run many independent builds without items from one leaking references
// into another.
package graph

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/ospath"
	"github.com/kdt3rd/constructor/src/pkgconfig"
	"github.com/kdt3rd/constructor/src/variable"
)

// Kind distinguishes the ten concrete Item variants. Go favors a tagged
// union with a type switch over virtual dispatch for a closed set like
// this one.
type Kind int

// The ten concrete Item variants.
const (
	KindSource Kind = iota
	KindCompileSet
	KindExecutable
	KindLibrary
	KindCodeGenerator
	KindCodeFilter
	KindCreateFile
	KindOptionalSource
	KindExternLibrarySet
	KindPackageConfig
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "Source"
	case KindCompileSet:
		return "CompileSet"
	case KindExecutable:
		return "Executable"
	case KindLibrary:
		return "Library"
	case KindCodeGenerator:
		return "CodeGenerator"
	case KindCodeFilter:
		return "CodeFilter"
	case KindCreateFile:
		return "CreateFile"
	case KindOptionalSource:
		return "OptionalSource"
	case KindExternLibrarySet:
		return "ExternLibrarySet"
	case KindPackageConfig:
		return "PackageConfig"
	default:
		return "Unknown"
	}
}

// ID identifies an Item within its Arena.
type ID int

// Item is a node in the build graph. It carries the fields relevant across
// all ten variants; fields meaningful only to one or two variants are
// grouped below and left zero-valued otherwise.
type Item struct {
	ID   ID
	Kind Kind
	Name string
	Dir  *ospath.Directory

	Variables *variable.Set

	ForceToolAll        string
	ForceToolExt        map[string]string
	OverrideToolOptions map[string]string

	IsTopLevel    bool
	UseName       bool
	DefaultTarget bool
	PseudoName    string

	deps map[ID]DependencyType

	// CompileSet / Executable / Library / CodeGenerator / CodeFilter
	Items []ID // child items, in declaration order

	// Library
	LibraryType string // "static" or "dynamic", empty defers to scope default

	// CodeGenerator
	GeneratorTool string
	DoCommas      bool
	FilePrefix    string
	FileSuffix    string
	ItemPrefix    string
	ItemSuffix    string
	ItemIndent    string

	// CreateFile
	FileContents string

	// OptionalSource: ConditionSystem, if non-empty, names the only system
	// this item's child is active under; empty means always active.
	ConditionSystem string

	// ExternLibrarySet: each entry names a pre-built library to resolve
	// via pkg-config/fallback probe at transform time; Required controls
	// whether a miss is a hard error or a silent skip, and Defines lists
	// preprocessor defines to add when every library resolves.
	ExternLibs    []string
	ExternLibVers []string
	ExternLibOps  []pkgconfig.CompareOp
	Required      bool
	Defines       []string

	// PackageConfig
	PackageName      string
	PackageVersion   string
	PackageVersionOp pkgconfig.CompareOp
	Resolved         *pkgconfig.PackageConfig

	arena *Arena
}

func newItem(a *Arena, kind Kind, name string, dir *ospath.Directory) *Item {
	return &Item{
		Kind:          kind,
		Name:          name,
		Dir:           dir,
		Variables:     variable.NewSet(),
		ForceToolExt:  make(map[string]string),
		UseName:       true,
		DefaultTarget: true,
		deps:          make(map[ID]DependencyType),
		arena:         a,
	}
}

// ForceTool forces every extension of this item to use the named tool.
func (it *Item) ForceTool(name string) {
	it.ForceToolAll = name
}

// ForceToolForExt forces a specific extension to use the named tool.
func (it *Item) ForceToolForExt(ext, name string) {
	it.ForceToolExt[ext] = name
}

// OverrideToolOption overrides a single named tool option for this item.
func (it *Item) OverrideToolOption(option, value string) {
	if it.OverrideToolOptions == nil {
		it.OverrideToolOptions = make(map[string]string)
	}
	it.OverrideToolOptions[option] = value
}

// SetTopLevel marks (or unmarks) this item as a top-level target.
func (it *Item) SetTopLevel(b bool) {
	it.IsTopLevel = b
}

// SetDefaultTarget controls whether this item is built without being named
// explicitly, relevant only once it is top-level.
func (it *Item) SetDefaultTarget(b bool) {
	it.DefaultTarget = b
}

// SetUseNameAsInput controls whether this item's own name (rather than a
// generated one) is used as the input token passed to its tool.
func (it *Item) SetUseNameAsInput(b bool) {
	it.UseName = b
}

// SetPseudoTarget gives this item an alternate name used purely for
// generator-facing target bookkeeping (e.g. a phony aggregate target),
// distinct from the name used to resolve its file on disk.
func (it *Item) SetPseudoTarget(name string) {
	it.PseudoName = name
}

// IncludeArtifactDir adds the generated-artifact directories mirroring the
// current and parent source directory (relative to the project root) to
// this item's "includes" variable, so code that #includes a sibling
// codegen'd header can find it. cur is the process-wide current directory
// at the time of the call (the directory the project file doing the
// including is being parsed from), matching the original's use of
// Directory::current() rather than the item's own source directory.
func (it *Item) IncludeArtifactDir(cur *ospath.Directory) {
	if cur == nil {
		cur = it.Dir
	}
	v := it.Variables.Get("includes")
	v.Inherit = true
	v.ToolTag = "cc"

	parent := cur.Clone()
	if err := parent.CdUp(); err != nil {
		v.Add(artifactIncludePath(cur.RelPath()))
		return
	}

	v.Add(artifactIncludePath(parent.RelPath()), artifactIncludePath(cur.RelPath()))
}

func artifactIncludePath(rel string) string {
	if rel == "" {
		return "$builddir/artifacts"
	}
	return "$builddir/artifacts/" + rel
}

// Errorf formats an error tagged with the item's name, matching how the
// original reported item-scoped failures.
func (it *Item) Errorf(format string, args ...interface{}) error {
	return fmt.Errorf("item %s: %s", it.Name, fmt.Sprintf(format, args...))
}
