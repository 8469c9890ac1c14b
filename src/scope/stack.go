package scope

import "sync"

var (
	mu         sync.Mutex
	root       = New(nil)
	stack      = []*Scope{root}
	configs    []*Configuration
	allConfigs []*Configuration
	defaultCfg *Configuration
)

// Root returns the process-wide root scope.
func Root() *Scope {
	mu.Lock()
	defer mu.Unlock()
	return root
}

// Push creates a new child of the current top-of-stack scope and pushes it.
func Push() *Scope {
	mu.Lock()
	defer mu.Unlock()
	top := stack[len(stack)-1]
	child := top.PushChild()
	stack = append(stack, child)
	return child
}

// Pop pops the top scope and folds it into its parent via Scope.Pop/
// checkAdopt.
func Pop() {
	mu.Lock()
	defer mu.Unlock()
	if len(stack) < 2 {
		return
	}
	child := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	parent := stack[len(stack)-1]
	parent.Pop(child)
}

// Current returns the scope mutations should target right now: the
// top-of-stack scope, unless a Configuration has been opened but not yet
// made the default one, in which case its pseudo-scope receives the
// mutations instead (configuration-definition-time changes must not leak
// into the enclosing scope).
func Current() *Scope {
	mu.Lock()
	defer mu.Unlock()
	if len(configs) > 0 {
		last := configs[len(configs)-1]
		if !last.isDefault {
			return last.pseudoScope
		}
	}
	return stack[len(stack)-1]
}

func pushConfiguration(c *Configuration) {
	mu.Lock()
	defer mu.Unlock()
	configs = append(configs, c)
}

func popConfiguration() {
	mu.Lock()
	defer mu.Unlock()
	if len(configs) == 0 {
		return
	}
	configs = configs[:len(configs)-1]
}

func registerConfiguration(c *Configuration) {
	mu.Lock()
	defer mu.Unlock()
	allConfigs = append(allConfigs, c)
}

func setDefaultConfiguration(c *Configuration) {
	mu.Lock()
	defer mu.Unlock()
	defaultCfg = c
}
