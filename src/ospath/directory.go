// Package ospath models the filesystem paths the build graph is rooted
// against: an absolute base directory plus a relative "current" tail that
// can be pushed, popped, and rerooted independently of the base.
package ospath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Directory tracks an absolute root plus a relative sub-path beneath it.
// The root and the sub-path are kept separate so that Reroot can graft the
// same relative tail onto a different absolute base (used when mirroring a
// source tree under an artifact tree).
type Directory struct {
	root    []string
	subDirs []string
}

// NewDirectory builds a Directory rooted at an absolute path.
func NewDirectory(root string) *Directory {
	root = filepath.Clean(root)
	return &Directory{root: splitPath(root)}
}

func splitPath(p string) []string {
	p = filepath.ToSlash(p)
	parts := strings.Split(strings.Trim(p, "/"), "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Cd descends into name, which may itself contain separators.
func (d *Directory) Cd(name string) {
	d.subDirs = append(d.subDirs, splitPath(name)...)
}

// CdUp pops the last path element off the relative tail.
func (d *Directory) CdUp() error {
	if len(d.subDirs) == 0 {
		return fmt.Errorf("ospath: cannot cd up, already at root of %s", d.FullPath())
	}
	d.subDirs = d.subDirs[:len(d.subDirs)-1]
	return nil
}

// Reroot returns a new Directory with the same relative tail grafted onto a
// different absolute base.
func (d *Directory) Reroot(newRoot string) *Directory {
	nd := NewDirectory(newRoot)
	nd.subDirs = append([]string(nil), d.subDirs...)
	return nd
}

// Clone returns an independent copy of d.
func (d *Directory) Clone() *Directory {
	return &Directory{
		root:    append([]string(nil), d.root...),
		subDirs: append([]string(nil), d.subDirs...),
	}
}

// FullPath renders the absolute path (root + relative tail).
func (d *Directory) FullPath() string {
	all := append(append([]string(nil), d.root...), d.subDirs...)
	return "/" + strings.Join(all, "/")
}

// CombinePath resolves name (which may contain "." and "..") against the
// current full path, without touching the filesystem.
func (d *Directory) CombinePath(name string) (string, error) {
	parts := append(append([]string(nil), d.root...), d.subDirs...)
	for _, part := range splitPath(name) {
		switch part {
		case ".":
			continue
		case "..":
			if len(parts) == 0 {
				return "", fmt.Errorf("ospath: %q escapes root", name)
			}
			parts = parts[:len(parts)-1]
		default:
			parts = append(parts, part)
		}
	}
	return "/" + strings.Join(parts, "/"), nil
}

// Exists reports whether name (resolved against the current directory via
// CombinePath) exists on disk.
func (d *Directory) Exists(name string) bool {
	full, err := d.CombinePath(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// Mkpath creates every intermediate directory of the current full path,
// tolerating EEXIST exactly like a plain mkdir -p.
func (d *Directory) Mkpath() error {
	if err := os.MkdirAll(d.FullPath(), 0o755); err != nil && !os.IsExist(err) {
		return fmt.Errorf("ospath: mkpath %s: %w", d.FullPath(), err)
	}
	return nil
}

// UpdateIfDifferent writes data to name under the current directory only if
// the existing content differs, keeping mtimes stable for unchanged output.
func (d *Directory) UpdateIfDifferent(name string, data []byte) error {
	full, err := d.CombinePath(name)
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(full); err == nil && string(existing) == string(data) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("ospath: mkdir for %s: %w", full, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("ospath: write %s: %w", full, err)
	}
	return nil
}

// RelPath renders the relative tail accumulated by Cd/CdUp (without the
// absolute root), in "/"-joined form, empty if the tail is empty.
func (d *Directory) RelPath() string {
	return strings.Join(d.subDirs, "/")
}

// MakeFilename joins name onto the current full path with a plain
// separator, unlike CombinePath it does not interpret "." or ".." in name.
func (d *Directory) MakeFilename(name string) string {
	return d.FullPath() + "/" + name
}

// RelFilename joins name onto RelPath the same plain way MakeFilename joins
// it onto FullPath.
func (d *Directory) RelFilename(name string) string {
	return d.RelPath() + "/" + name
}

// Find returns the MakeFilename-joined path of the first name in names
// that Exists under d, and false if none do.
func (d *Directory) Find(names []string) (string, bool) {
	for _, n := range names {
		if d.Exists(n) {
			return d.MakeFilename(n), true
		}
	}
	return "", false
}

// Base returns the final path element of the relative tail, or of the root
// if the tail is empty.
func (d *Directory) Base() string {
	if len(d.subDirs) > 0 {
		return d.subDirs[len(d.subDirs)-1]
	}
	if len(d.root) > 0 {
		return d.root[len(d.root)-1]
	}
	return "/"
}

var (
	liveMu   sync.Mutex
	liveDirs []*Directory
)

// Pushd pushes dir onto the process-wide current-directory stack.
func Pushd(dir *Directory) {
	liveMu.Lock()
	defer liveMu.Unlock()
	liveDirs = append(liveDirs, dir)
}

// Popd pops the most recently pushed directory. It is an error to call Popd
// with nothing on the stack.
func Popd() error {
	liveMu.Lock()
	defer liveMu.Unlock()
	if len(liveDirs) == 0 {
		return fmt.Errorf("ospath: popd with empty directory stack")
	}
	liveDirs = liveDirs[:len(liveDirs)-1]
	return nil
}

// Current returns the top of the directory stack, or nil if it is empty.
func Current() *Directory {
	liveMu.Lock()
	defer liveMu.Unlock()
	if len(liveDirs) == 0 {
		return nil
	}
	return liveDirs[len(liveDirs)-1]
}
