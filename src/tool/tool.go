// Package tool models a single named, tagged command template: what file
// extensions it accepts, what it produces, and the option groups (such as
// source language) that pick among alternate command lines.
package tool

import (
	"fmt"
	"sort"

	"github.com/kdt3rd/constructor/src/variable"
)

// OptionGroup is a named set of mutually exclusive choices (for example the
// "language" group choosing between "c", "c++", and so on), each mapping to
// its own command token list.
type OptionGroup struct {
	Name    string
	Choices map[string][]string
	Default string
}

// Tool is a single tagged command template.
type Tool struct {
	Tag         string
	Name        string
	Description string

	// Exe is either a literal executable path or, for self-hosted code
	// generators, the name of an Item that builds the executable.
	Exe       string
	ExeIsItem bool

	Extensions    []string
	AltExtensions []string
	OutputExts    []string
	InputTools    []string

	Options        map[string]*OptionGroup
	OptionDefaults map[string]string

	Cmd []string

	enabledLanguage string
}

// New creates an empty Tool with tag and name set.
func New(tag, name string) *Tool {
	return &Tool{
		Tag:            tag,
		Name:           name,
		Options:        make(map[string]*OptionGroup),
		OptionDefaults: make(map[string]string),
	}
}

// EnableLanguage selects the active choice within the "language" option
// group. Only one language may be enabled per tool.
func (t *Tool) EnableLanguage(name string) error {
	group, ok := t.Options["language"]
	if !ok {
		return fmt.Errorf("tool %s: no language option group declared", t.Name)
	}
	if _, ok := group.Choices[name]; !ok {
		return fmt.Errorf("tool %s: unknown language %q", t.Name, name)
	}
	if t.enabledLanguage != "" && t.enabledLanguage != name {
		return fmt.Errorf("tool %s: only 1 language per tool is currently implemented", t.Name)
	}
	t.enabledLanguage = name
	return nil
}

// Language returns the active language choice, falling back to the option
// group's configured default and then, lacking that, its lexicographically
// smallest choice name — the same choice original_source/src/Tool.cpp's
// `std::map<std::string, ...>`-backed OptionSet deterministically returns
// from `begin()` when nothing else has picked one.
func (t *Tool) Language() string {
	if t.enabledLanguage != "" {
		return t.enabledLanguage
	}
	group, ok := t.Options["language"]
	if !ok {
		return ""
	}
	if t.OptionDefaults["language"] != "" {
		return t.OptionDefaults["language"]
	}
	if group.Default != "" {
		return group.Default
	}
	if len(group.Choices) == 0 {
		return ""
	}
	names := make([]string, 0, len(group.Choices))
	for name := range group.Choices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}

// HandlesExtension reports whether ext (including the leading dot) is one of
// the tool's input or alternate extensions.
func (t *Tool) HandlesExtension(ext string) bool {
	for _, e := range t.Extensions {
		if e == ext {
			return true
		}
	}
	for _, e := range t.AltExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// HandlesTools reports whether the tool accepts every tag in tags as input,
// letting a linker or archiver be picked by the full set of tags feeding it
// rather than just one.
func (t *Tool) HandlesTools(tags map[string]bool) bool {
	accepted := make(map[string]bool, len(t.InputTools))
	for _, it := range t.InputTools {
		accepted[it] = true
	}
	for tag := range tags {
		if !accepted[tag] {
			return false
		}
	}
	return true
}

// Command renders the tool's command line, substituting any "${var}"
// references against vars.
func (t *Tool) Command(vars *variable.Set) []string {
	tokens := t.Cmd
	if lang := t.Language(); lang != "" {
		if group, ok := t.Options["language"]; ok {
			if choice, ok := group.Choices[lang]; ok {
				tokens = append(append([]string(nil), tokens...), choice...)
			}
		}
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = variable.Substitute(tok, true, setLookup{vars})
	}
	return out
}

type setLookup struct{ s *variable.Set }

func (s setLookup) Lookup(name string) (string, bool) {
	if s.s == nil {
		return "", false
	}
	v, ok := s.s.Lookup(name)
	if !ok {
		return "", false
	}
	return v.Value(), true
}
