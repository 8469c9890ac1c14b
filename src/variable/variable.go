// Package variable implements the named, ordered string-list values that
// flow through tools, items, and scopes (compiler flags, search paths,
// library names, and so on).
package variable

import (
	"os"
	"strings"
)

// Variable is a named ordered list of string values. When Inherit is set,
// rendering prefixes the list with a reference to a same-named shell/make
// variable so downstream tooling can extend rather than replace it. ToolTag,
// when non-empty, associates the variable with a tool tag (e.g. "cc") the
// way `system_defines` marks the "defines" variable so it is only spliced
// into that tool's command line. EnvSeeded records whether the variable's
// initial contents came from the process environment.
type Variable struct {
	Name      string
	Inherit   bool
	ToolTag   string
	EnvSeeded bool

	values  []string
	overlay map[string][]string
}

// New creates an empty variable.
func New(name string) *Variable {
	return &Variable{Name: name}
}

// NewFromEnv creates a variable seeded from an environment variable, split
// on whitespace, if it is set.
func NewFromEnv(name, envName string) *Variable {
	v := New(name)
	if val, ok := os.LookupEnv(envName); ok && val != "" {
		v.EnvSeeded = true
		v.Add(strings.Fields(val)...)
	}
	return v
}

// AddPerSystem appends vals to the per-system overlay for system: values
// that only apply when rendered via ValueForSystem(system).
func (v *Variable) AddPerSystem(system string, vals []string) {
	if v.overlay == nil {
		v.overlay = make(map[string][]string)
	}
	for _, val := range vals {
		if val != "" {
			v.overlay[system] = append(v.overlay[system], val)
		}
	}
}

// Add appends non-empty values to the list.
func (v *Variable) Add(vals ...string) {
	for _, val := range vals {
		if val != "" {
			v.values = append(v.values, val)
		}
	}
}

// AddIfMissing appends values not already present in the list.
func (v *Variable) AddIfMissing(vals ...string) {
	for _, val := range vals {
		if val == "" || v.contains(val) {
			continue
		}
		v.values = append(v.values, val)
	}
}

func (v *Variable) contains(val string) bool {
	for _, existing := range v.values {
		if existing == val {
			return true
		}
	}
	return false
}

// Reset clears the variable and sets it to vals.
func (v *Variable) Reset(vals ...string) {
	v.values = nil
	v.Add(vals...)
}

// Values returns the underlying value list.
func (v *Variable) Values() []string {
	return v.values
}

// Empty reports whether the variable has no values.
func (v *Variable) Empty() bool {
	return len(v.values) == 0
}

// Value renders the variable: "${name}" followed by the space-joined
// non-empty values, if Inherit is set; otherwise just the space-joined
// values.
func (v *Variable) Value() string {
	var parts []string
	if v.Inherit {
		parts = append(parts, "${"+v.Name+"}")
	}
	parts = append(parts, v.values...)
	return strings.Join(parts, " ")
}

// ValueForSystem renders like Value, then appends any per-system overlay
// values registered for system (via AddPerSystem / system_defines).
func (v *Variable) ValueForSystem(system string) string {
	ret := v.Value()
	overlay := v.overlay[system]
	if len(overlay) == 0 {
		return ret
	}
	parts := append([]string{}, overlay...)
	if ret == "" {
		return strings.Join(parts, " ")
	}
	return ret + " " + strings.Join(parts, " ")
}

// PrependedValue prepends prefix to every value that does not already start
// with prefix or with "$" (a variable reference, left alone so substitution
// still resolves it later).
func (v *Variable) PrependedValue(prefix string) []string {
	out := make([]string, len(v.values))
	for i, val := range v.values {
		if strings.HasPrefix(val, prefix) || strings.HasPrefix(val, "$") {
			out[i] = val
		} else {
			out[i] = prefix + val
		}
	}
	return out
}

// RemoveDuplicatesKeepLast deduplicates the value list, keeping each value's
// last occurrence and preserving the relative order of the kept entries.
func (v *Variable) RemoveDuplicatesKeepLast() {
	seen := make(map[string]int, len(v.values))
	for i, val := range v.values {
		seen[val] = i
	}
	out := make([]string, 0, len(seen))
	for i, val := range v.values {
		if seen[val] == i {
			out = append(out, val)
		}
	}
	v.values = out
}

// Clone returns an independent copy of v.
func (v *Variable) Clone() *Variable {
	clone := &Variable{
		Name:      v.Name,
		Inherit:   v.Inherit,
		ToolTag:   v.ToolTag,
		EnvSeeded: v.EnvSeeded,
		values:    append([]string(nil), v.values...),
	}
	if v.overlay != nil {
		clone.overlay = make(map[string][]string, len(v.overlay))
		for k, vals := range v.overlay {
			clone.overlay[k] = append([]string(nil), vals...)
		}
	}
	return clone
}
