// Package pkgconfig resolves pkg-config-compatible ".pc" files (and, failing
// that, a filesystem probe for common library layouts) into the flags an
// Item needs to compile and link against a named package.
package pkgconfig

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kdt3rd/constructor/src/cli/logging"
	"github.com/kdt3rd/constructor/src/variable"
)

// Requirement is one parsed entry of a Requires/Requires.private line.
type Requirement struct {
	Name string
	Op   CompareOp
	Ver  string
}

// PackageConfig holds the parsed contents of one ".pc" file (or a
// synthesized stand-in built by the fallback filesystem probe).
type PackageConfig struct {
	Name            string
	Description     string
	URL             string
	Version         string
	Libs            string
	LibsPrivate     string
	Cflags          string
	Requires        []Requirement
	RequiresPrivate []Requirement
	Conflicts       string

	LocalVars map[string]string

	// PackageFile is the ".pc" path this was parsed from, empty for a
	// fallback-probe synthetic result. Only synthetic results surface
	// libdirs/includes onto the transformed BuildItem.
	PackageFile string
}

func newPackageConfig() *PackageConfig {
	return &PackageConfig{LocalVars: make(map[string]string)}
}

// Parse reads and parses a ".pc" file from path.
func Parse(path string) (*PackageConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pkgconfig: open %s: %w", path, err)
	}
	defer f.Close()

	pc := newPackageConfig()
	pc.PackageFile = path

	lines, err := joinContinuations(f)
	if err != nil {
		return nil, err
	}

	seenColon := map[string]bool{}
	seenEquals := map[string]bool{}

	for _, raw := range lines {
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, sep, value, ok := extractNameAndValue(line)
		if !ok {
			continue
		}
		lookup := localVarLookup(pc.LocalVars)
		value = variable.Substitute(value, true, lookup)

		if sep == '=' {
			if seenEquals[name] {
				logging.Log.Warningf("pkgconfig: duplicate variable %q in %s, keeping first", name, path)
				continue
			}
			seenEquals[name] = true
			pc.LocalVars[name] = value
			continue
		}

		key := normalizeTag(name)
		if seenColon[key] {
			logging.Log.Warningf("pkgconfig: duplicate tag %q in %s, keeping first", key, path)
			continue
		}
		seenColon[key] = true

		switch key {
		case "Name":
			pc.Name = value
		case "Description":
			pc.Description = value
		case "URL":
			pc.URL = value
		case "Version":
			pc.Version = value
		case "Libs":
			pc.Libs = value
		case "Libs.private":
			pc.LibsPrivate = value
		case "Requires":
			pc.Requires = parseRequires(value)
		case "Requires.private":
			pc.RequiresPrivate = parseRequires(value)
		case "CFlags":
			pc.Cflags = value
		case "Conflicts":
			pc.Conflicts = value
		default:
			logging.Log.Warningf("pkgconfig: unrecognized tag %q in %s, keeping as local var", name, path)
			pc.LocalVars[name] = value
		}
	}
	return pc, nil
}

func normalizeTag(name string) string {
	if strings.EqualFold(name, "cflags") {
		return "CFlags"
	}
	return name
}

type localVarLookup map[string]string

func (l localVarLookup) Lookup(name string) (string, bool) {
	v, ok := l[name]
	return v, ok
}

// joinContinuations reads all lines, merging a line ending in an unescaped
// backslash with the next.
func joinContinuations(f *os.File) ([]string, error) {
	var lines []string
	var cur strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		if strings.HasSuffix(text, "\\") {
			cur.WriteString(strings.TrimSuffix(text, "\\"))
			continue
		}
		cur.WriteString(text)
		lines = append(lines, cur.String())
		cur.Reset()
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pkgconfig: read: %w", err)
	}
	return lines, nil
}

// stripComment truncates line at the first unescaped '#', and unescapes
// any "\#" into a literal '#'.
func stripComment(line string) string {
	var out strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i+1 < len(line) && line[i+1] == '#' {
			out.WriteByte('#')
			i++
			continue
		}
		if line[i] == '#' {
			break
		}
		out.WriteByte(line[i])
	}
	return out.String()
}

// extractNameAndValue splits "name<sep>value" where sep is ':' or '='.
// The name consists of alnum/'_'/'.' characters.
func extractNameAndValue(line string) (name string, sep byte, value string, ok bool) {
	i := 0
	for i < len(line) && (isalnum(line[i]) || line[i] == '_' || line[i] == '.') {
		i++
	}
	if i == 0 {
		return "", 0, "", false
	}
	name = line[:i]
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i >= len(line) || (line[i] != ':' && line[i] != '=') {
		return "", 0, "", false
	}
	sep = line[i]
	i++
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	value = line[i:]
	return name, sep, value, true
}

// parseRequires tokenizes a Requires/Requires.private value via a
// looking -> inName -> lookingOp -> inOp -> lookingVer -> inVersion state
// machine; entries are separated by commas and/or whitespace.
func parseRequires(value string) []Requirement {
	const (
		looking = iota
		inName
		lookingOp
		inOp
		lookingVer
		inVersion
	)
	var reqs []Requirement
	state := looking
	var name, opStr, ver strings.Builder

	flush := func() {
		if name.Len() == 0 {
			return
		}
		op := Any
		switch opStr.String() {
		case "=":
			op = Equal
		case "!=":
			op = NotEqual
		case "<":
			op = Less
		case "<=":
			op = LessEqual
		case ">":
			op = Greater
		case ">=":
			op = GreaterEqual
		}
		reqs = append(reqs, Requirement{Name: name.String(), Op: op, Ver: ver.String()})
		name.Reset()
		opStr.Reset()
		ver.Reset()
	}

	isSep := func(b byte) bool { return b == ',' || b == ' ' || b == '\t' }

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch state {
		case looking:
			if isSep(c) {
				continue
			}
			name.WriteByte(c)
			state = inName
		case inName:
			if isSep(c) {
				state = lookingOp
				continue
			}
			if isOpChar(c) {
				opStr.WriteByte(c)
				state = inOp
				continue
			}
			name.WriteByte(c)
		case lookingOp:
			if isSep(c) {
				continue
			}
			if isOpChar(c) {
				opStr.WriteByte(c)
				state = inOp
				continue
			}
			flush()
			name.WriteByte(c)
			state = inName
		case inOp:
			if isOpChar(c) {
				opStr.WriteByte(c)
				continue
			}
			state = lookingVer
			fallthrough
		case lookingVer:
			if isSep(c) {
				continue
			}
			ver.WriteByte(c)
			state = inVersion
		case inVersion:
			if isSep(c) {
				flush()
				state = looking
				continue
			}
			ver.WriteByte(c)
		}
	}
	flush()
	return reqs
}

func isOpChar(b byte) bool {
	return b == '=' || b == '!' || b == '<' || b == '>'
}
