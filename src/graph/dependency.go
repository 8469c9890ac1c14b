package graph

import "sort"

// DependencyType totally orders edge strength: CHAIN is strongest (the
// chain-closure rules apply to it), EXPLICIT and IMPLICIT are plain build
// edges of decreasing significance, and ORDER only constrains scheduling
// order without implying any data dependency.
type DependencyType int

// The four dependency strengths, weakest ordinal last.
const (
	Chain DependencyType = iota
	Explicit
	Implicit
	Order
)

// AddDependency records that it depends on other with the given strength.
// It refuses to create a cycle (other must not already (transitively)
// depend on it), and when an edge to other already exists it keeps the
// stronger (lower-ordinal) of the two types rather than overwriting.
func (a *Arena) AddDependency(it, other ID, dt DependencyType) error {
	if it == other {
		return itemByID(a, it).Errorf("cannot depend on itself")
	}
	if a.HasDependency(other, it) {
		return itemByID(a, it).Errorf("adding a dependency on %s would create a cycle", itemByID(a, other).Name)
	}
	node := itemByID(a, it)
	if cur, ok := node.deps[other]; ok {
		if dt < cur {
			node.deps[other] = dt
		}
		return nil
	}
	node.deps[other] = dt
	return nil
}

func itemByID(a *Arena, id ID) *Item {
	it, _ := a.Get(id)
	return it
}

// HasDependency reports whether it transitively depends on target, via a
// plain depth-first search over every edge regardless of type.
func (a *Arena) HasDependency(it, target ID) bool {
	visited := make(map[ID]bool)
	var visit func(ID) bool
	visit = func(cur ID) bool {
		if visited[cur] {
			return false
		}
		visited[cur] = true
		node := itemByID(a, cur)
		if node == nil {
			return false
		}
		for dep := range node.deps {
			if dep == target {
				return true
			}
			if visit(dep) {
				return true
			}
		}
		return false
	}
	return visit(it)
}

// ExtractDependencies returns its dependencies of exactly dt.
//
// For Chain, it performs a depth-first walk collecting every Chain-typed
// neighbor transitively (recurseChain), then applies a nearest-first dedup:
// reverse the walk order, drop every occurrence of a duplicate after its
// first (scanning forward from each index), then reverse again. The net
// effect is that when the same chain item is reachable through more than
// one path, only its last occurrence in walk order survives.
//
// For every other type, it returns only its direct neighbors of that type,
// sorted by (name, directory).
func (a *Arena) ExtractDependencies(it ID, dt DependencyType) []ID {
	if dt == Chain {
		var walked []ID
		a.recurseChain(it, &walked)
		return dedupNearestFirst(walked)
	}

	node := itemByID(a, it)
	var direct []ID
	for dep, edt := range node.deps {
		if edt == dt {
			direct = append(direct, dep)
		}
	}
	sort.Slice(direct, func(i, j int) bool {
		ii, jj := itemByID(a, direct[i]), itemByID(a, direct[j])
		if ii.Name != jj.Name {
			return ii.Name < jj.Name
		}
		return ii.Dir.FullPath() < jj.Dir.FullPath()
	})
	return direct
}

func (a *Arena) recurseChain(it ID, out *[]ID) {
	node := itemByID(a, it)
	var neighbors []ID
	for dep, dt := range node.deps {
		if dt == Chain {
			neighbors = append(neighbors, dep)
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		ii, jj := itemByID(a, neighbors[i]), itemByID(a, neighbors[j])
		if ii.Name != jj.Name {
			return ii.Name < jj.Name
		}
		return ii.Dir.FullPath() < jj.Dir.FullPath()
	})
	for _, dep := range neighbors {
		*out = append(*out, dep)
		a.recurseChain(dep, out)
	}
}

// dedupNearestFirst runs a reverse/drop-later-dupes/reverse pass: after
// reversing, walking forward and deleting every later occurrence of a value
// already seen at an earlier index keeps the first-encountered (post-
// reverse, i.e. last-walked) occurrence.
func dedupNearestFirst(in []ID) []ID {
	rev := make([]ID, len(in))
	for i, v := range in {
		rev[len(in)-1-i] = v
	}
	for i := 0; i < len(rev); i++ {
		j := i + 1
		for j < len(rev) {
			if rev[j] == rev[i] {
				rev = append(rev[:j], rev[j+1:]...)
				continue
			}
			j++
		}
	}
	out := make([]ID, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}
