package pkgconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/kdt3rd/constructor/src/cli/logging"
)

// System identifies the target OS a PackageSet resolves libraries for; it
// governs which fallback probe (framework, import-lib, or shared-object)
// applies when no ".pc" file is found.
type System int

// Recognized systems.
const (
	Linux System = iota
	Darwin
	Windows
)

// Set is a per-system cache of discovered ".pc" files and resolved
// PackageConfigs. The directory scan that builds the name->path index runs
// once, lazily, on first use and is never repeated.
type Set struct {
	system     System
	searchDirs []string

	mu       sync.Mutex
	index    map[string]string // name -> .pc path, first-found wins
	scanned  bool
	resolved map[string]*PackageConfig
}

var (
	setsMu sync.Mutex
	sets   = map[System]*Set{}
)

// Get returns the process-wide Set for sys, creating it (and seeding its
// search paths from the environment) on first use.
func Get(sys System) *Set {
	setsMu.Lock()
	defer setsMu.Unlock()
	if s, ok := sets[sys]; ok {
		return s
	}
	s := &Set{system: sys, resolved: make(map[string]*PackageConfig)}
	s.seedSearchDirs()
	sets[sys] = s
	return s
}

// HostSystem maps runtime.GOOS onto a System.
func HostSystem() System {
	switch runtime.GOOS {
	case "darwin":
		return Darwin
	case "windows":
		return Windows
	default:
		return Linux
	}
}

// String renders sys the way a project file's system="..." condition names
// it.
func (sys System) String() string {
	switch sys {
	case Darwin:
		return "Darwin"
	case Windows:
		return "Windows"
	default:
		return "Linux"
	}
}

// HostSystemName is HostSystem rendered as its condition-matching name.
func HostSystemName() string {
	return HostSystem().String()
}

// SystemFromName parses a condition-matching system name back into a
// System, defaulting to the host system for an empty or unrecognized name.
func SystemFromName(name string) System {
	switch name {
	case "Darwin":
		return Darwin
	case "Windows":
		return Windows
	case "Linux":
		return Linux
	default:
		return HostSystem()
	}
}

func (s *Set) seedSearchDirs() {
	if path, ok := os.LookupEnv("PKG_CONFIG_PATH"); ok && path != "" {
		s.searchDirs = append(s.searchDirs, splitPathList(path)...)
	}
	if libdir, ok := os.LookupEnv("PKG_CONFIG_LIBDIR"); ok && libdir != "" {
		s.searchDirs = append(s.searchDirs, splitPathList(libdir)...)
	} else {
		s.searchDirs = append(s.searchDirs, "/usr/lib/pkgconfig", "/usr/local/lib/pkgconfig")
	}
}

func splitPathList(v string) []string {
	sep := ":"
	if runtime.GOOS == "windows" {
		sep = ";"
	}
	var out []string
	for _, p := range strings.Split(v, sep) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Set) scan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scanned {
		return
	}
	s.scanned = true
	s.index = make(map[string]string)
	for _, dir := range s.searchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".pc") {
				continue
			}
			name := strings.TrimSuffix(e.Name(), ".pc")
			if _, seen := s.index[name]; seen {
				continue
			}
			s.index[name] = filepath.Join(dir, e.Name())
		}
	}
}

// Find resolves name against op/ver (pass Any/"" for an unconstrained
// lookup), first via a ".pc" file and, failing that, via a filesystem
// probe for common library layouts. It returns nil, false if nothing
// satisfies the request.
func (s *Set) Find(name string, op CompareOp, ver string) (*PackageConfig, bool) {
	s.scan()

	s.mu.Lock()
	if pc, ok := s.resolved[name]; ok {
		s.mu.Unlock()
		return gateVersion(pc, op, ver)
	}
	path, found := s.index[name]
	s.mu.Unlock()

	var pc *PackageConfig
	if found {
		parsed, err := Parse(path)
		if err != nil {
			logging.Log.Warningf("pkgconfig: %v", err)
		} else {
			pc = parsed
		}
	}
	if pc == nil {
		pc = s.probeFallback(name)
	}
	if pc == nil {
		return nil, false
	}

	s.mu.Lock()
	s.resolved[name] = pc
	s.mu.Unlock()

	return gateVersion(pc, op, ver)
}

func gateVersion(pc *PackageConfig, op CompareOp, ver string) (*PackageConfig, bool) {
	if op == Any || ver == "" {
		return pc, true
	}
	if !Satisfies(op, pc.Version, ver) {
		logging.Log.Warningf("pkgconfig: %s version %s does not satisfy request", pc.Name, pc.Version)
		return nil, false
	}
	return pc, true
}

var systemLibDirs = []string{"/lib", "/usr/lib", "/usr/local/lib"}

func isSystemLibDir(dir string) bool {
	for _, d := range systemLibDirs {
		if dir == d {
			return true
		}
	}
	return false
}

// probeFallback looks for a library on disk when no ".pc" file describes
// it, synthesizing a minimal PackageConfig with Libs/Cflags-equivalent
// local vars ("ldflags", "libdirs", "includes") set directly.
func (s *Set) probeFallback(name string) *PackageConfig {
	candidates := s.probeCandidates(name)
	for _, c := range candidates {
		if info, err := os.Stat(c.path); err == nil {
			return s.makeLibraryReference(name, c, info.IsDir())
		}
	}
	return nil
}

type probeCandidate struct {
	path        string
	isFramework bool
}

func (s *Set) probeCandidates(name string) []probeCandidate {
	var out []probeCandidate
	switch s.system {
	case Darwin:
		for _, dir := range append(append([]string{}, s.searchDirs...), systemLibDirs...) {
			out = append(out, probeCandidate{path: filepath.Join(dir, name+".framework"), isFramework: true})
		}
		for _, dir := range systemLibDirs {
			out = append(out, probeCandidate{path: filepath.Join(dir, "lib"+name+".dylib")})
			out = append(out, probeCandidate{path: filepath.Join(dir, "lib"+name+".a")})
		}
	case Windows:
		for _, dir := range systemLibDirs {
			out = append(out, probeCandidate{path: filepath.Join(dir, name+".lib")})
			out = append(out, probeCandidate{path: filepath.Join(dir, name+".a")})
			out = append(out, probeCandidate{path: filepath.Join(dir, "lib"+name+".dll.a")})
			out = append(out, probeCandidate{path: filepath.Join(dir, "lib"+name+".a")})
		}
	default:
		for _, dir := range systemLibDirs {
			out = append(out, probeCandidate{path: filepath.Join(dir, "lib"+name+".so")})
			out = append(out, probeCandidate{path: filepath.Join(dir, "lib"+name+".a")})
		}
	}
	if strings.HasPrefix(name, "lib") {
		out = append(out, s.probeCandidates(strings.TrimPrefix(name, "lib"))...)
	}
	return out
}

func (s *Set) makeLibraryReference(name string, c probeCandidate, isDir bool) *PackageConfig {
	pc := newPackageConfig()
	pc.Name = name
	basepath := filepath.Dir(c.path)

	if c.isFramework {
		pc.LocalVars["includes"] = fmt.Sprintf("-F %s", name)
		pc.LocalVars["ldflags"] = fmt.Sprintf("-framework %s", name)
		return pc
	}

	pc.LocalVars["ldflags"] = "-l" + name
	if !isSystemLibDir(basepath) {
		pc.LocalVars["libdirs"] = basepath
		if incl := filepath.Join(filepath.Dir(basepath), "include"); dirExists(incl) {
			pc.LocalVars["includes"] = incl
		}
	}
	return pc
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
