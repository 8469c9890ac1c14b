package scope

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/toolset"
	"github.com/kdt3rd/constructor/src/variable"
)

// Configuration names one build variant (e.g. "debug", "release"). Its
// pseudoScope overlays the enclosing scope during the configuration's own
// definition, and ModifyActive lets it replace toolsets by tag the same way
// Scope.UseToolSet does, without touching the real scope until the
// configuration is made active. System, if set, overrides the host system
// the Transform pass resolves OptionalSource/ExternLibrarySet conditions
// and the pkg-config fallback probe against; SkipOnError lets the external
// driver continue with other configurations after this one's transform
// fails, per spec section 7's "Recovery" note.
type Configuration struct {
	Name        string
	System      string
	SkipOnError bool
	isDefault   bool
	pseudoScope *Scope
}

var (
	lastConfig *Configuration
)

// NewConfiguration opens a new named configuration, nested as a pseudo-scope
// under the current scope, and makes it the "last" configuration until
// another is opened (finishing it does not change that). Returns an error if name duplicates
// an already-opened configuration.
func NewConfiguration(name string) (*Configuration, error) {
	mu.Lock()
	for _, existing := range allConfigs {
		if existing.Name == name {
			mu.Unlock()
			return nil, fmt.Errorf("scope: duplicate configuration %q", name)
		}
	}
	mu.Unlock()

	c := &Configuration{Name: name, pseudoScope: Current().PushChild()}
	pushConfiguration(c)
	registerConfiguration(c)
	lastConfig = c
	return c, nil
}

// Finish closes the configuration's definition scope.
func (c *Configuration) Finish() {
	popConfiguration()
}

// LastConfiguration returns the most recently opened Configuration, or nil
// if none has ever been opened (the "last() called with no configurations"
// state error is surfaced by the caller checking for nil).
func LastConfiguration() *Configuration {
	return lastConfig
}

// SetSystem overrides the system this configuration targets; empty leaves
// it deferring to the host's own runtime system.
func (c *Configuration) SetSystem(system string) {
	c.System = system
}

// SetSkipOnError marks this configuration so a driver running multiple
// configurations may continue past a failed transform of this one.
func (c *Configuration) SetSkipOnError(b bool) {
	c.SkipOnError = b
}

// MakeDefault marks c as the build's default configuration; until this is
// called, mutations continue to land in c's pseudo-scope rather than the
// real enclosing scope.
func (c *Configuration) MakeDefault() {
	c.isDefault = true
	setDefaultConfiguration(c)
}

// DefaultConfiguration looks up a previously opened configuration by name
// and marks it default, matching the host API's default_configuration(name)
// binding. It errors if no configuration with that name was ever opened.
func DefaultConfiguration(name string) (*Configuration, error) {
	mu.Lock()
	var found *Configuration
	for _, c := range allConfigs {
		if c.Name == name {
			found = c
			break
		}
	}
	mu.Unlock()
	if found == nil {
		return nil, fmt.Errorf("scope: default_configuration: no configuration named %q", name)
	}
	found.MakeDefault()
	return found, nil
}

// CheckDefault reports an error if default_configuration has never been
// called, matching the original's checkDefault state-error.
func CheckDefault() error {
	mu.Lock()
	defer mu.Unlock()
	if defaultCfg == nil {
		return fmt.Errorf("scope: no default configuration has been set")
	}
	return nil
}

// Default returns the configuration marked default, or nil if none has
// been set yet.
func Default() *Configuration {
	mu.Lock()
	defer mu.Unlock()
	return defaultCfg
}

// PseudoScope returns the overlay scope definitions accumulate into while
// this configuration is being defined.
func (c *Configuration) PseudoScope() *Scope {
	return c.pseudoScope
}

// ModifyActive applies the pseudo-scope's own replace-by-tag rule to an
// externally supplied toolset list, exactly like Scope.UseToolSet but
// without mutating the pseudo-scope's own EnabledToolsets field.
func (c *Configuration) ModifyActive(active []*toolset.Toolset) []*toolset.Toolset {
	out := append([]*toolset.Toolset(nil), active...)
	for _, ts := range c.pseudoScope.EnabledToolsets {
		tags := ts.Tags()
		filtered := out[:0:0]
		for _, existing := range out {
			conflict := false
			for tag := range existing.Tags() {
				if tags[tag] {
					conflict = true
					break
				}
			}
			if !conflict {
				filtered = append(filtered, existing)
			}
		}
		out = append(filtered, ts)
	}
	return out
}

// MergedVariables merges the pseudo-scope's variables on top of base, the
// pseudo-scope winning on name collision.
func (c *Configuration) MergedVariables(base *variable.Set) *variable.Set {
	return base.Merge(c.pseudoScope.Variables)
}

// MergedOptions merges the pseudo-scope's options on top of base.
func (c *Configuration) MergedOptions(base *variable.Set) *variable.Set {
	return base.Merge(c.pseudoScope.Options)
}
