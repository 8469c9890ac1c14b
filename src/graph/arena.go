package graph

import (
	"fmt"

	"github.com/kdt3rd/constructor/src/ospath"
)

// Arena owns every Item created for one build invocation, keyed by a
// monotonically increasing ID starting at 1 (0 is never a valid ID, so the
// zero value of ID reads naturally as "unset").
type Arena struct {
	items  map[ID]*Item
	nextID ID
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{items: make(map[ID]*Item), nextID: 1}
}

// New allocates a new Item of the given kind in the arena.
func (a *Arena) New(kind Kind, name string, dir *ospath.Directory) ID {
	it := newItem(a, kind, name, dir)
	it.ID = a.nextID
	a.items[it.ID] = it
	a.nextID++
	return it.ID
}

// Get returns the item for id and whether it exists.
func (a *Arena) Get(id ID) (*Item, bool) {
	it, ok := a.items[id]
	return it, ok
}

// MustGet returns the item for id, panicking if the arena never allocated
// it — this would indicate corrupt internal state, not a user error.
func (a *Arena) MustGet(id ID) *Item {
	it, ok := a.items[id]
	if !ok {
		panic(fmt.Sprintf("graph: arena has no item with id %d", id))
	}
	return it
}

// AddChild appends child to parent's ordered item list, deduplicating
// against an existing entry exactly like Scope.AddItem's set semantics.
func (a *Arena) AddChild(parent, child ID) {
	p := a.MustGet(parent)
	for _, existing := range p.Items {
		if existing == child {
			return
		}
	}
	p.Items = append(p.Items, child)
}
