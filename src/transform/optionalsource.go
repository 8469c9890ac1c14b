package transform

import "github.com/kdt3rd/constructor/src/graph"

// transformOptionalSource transforms its single child only when
// ConditionSystem matches the TransformSet's target system (or is unset);
// otherwise it produces an inert BuildItem with no tool and no dependencies,
// so the rest of the graph can reference it unconditionally without
// special-casing whether the source was actually available.
func (c ctx) transformOptionalSource(it *graph.Item) (*BuildItem, error) {
	matches := it.ConditionSystem == "" || it.ConditionSystem == c.ts.System
	if !matches || len(it.Items) == 0 {
		ret := NewBuildItem(it.Name, it.Dir)
		ret.UseName = it.UseName
		return ret, nil
	}
	child, err := c.transformItem(it.Items[0])
	if err != nil {
		return nil, err
	}
	return child, nil
}
