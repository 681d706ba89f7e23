package language

// Walk visits every selection reachable from ss in pre-order. Nested selection
// sets of fields and inline fragments are descended after their parent;
// fragment spreads are leaves here, resolving them is the caller's business.
// Returning false from visit prunes descent below that selection.
func Walk(ss SelectionSet, visit func(Selection) bool) {
	for _, sel := range ss {
		if !visit(sel) {
			continue
		}
		switch n := sel.(type) {
		case *Field:
			Walk(n.SelectionSet, visit)
		case *InlineFragment:
			Walk(n.SelectionSet, visit)
		}
	}
}

// WalkValues visits v and every value nested under it in pre-order, list
// elements and object fields included.
func WalkValues(v *Value, visit func(*Value)) {
	if v == nil {
		return
	}
	visit(v)
	for _, c := range v.Children {
		WalkValues(c.Value, visit)
	}
}
