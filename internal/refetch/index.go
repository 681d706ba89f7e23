package refetch

import (
	language "github.com/BigsonLvrocha/relay/internal/language"
)

// fragmentIndex resolves spreads by name. Spreads stay weak references: the
// table is built once per compilation unit and looked up at each hop, no
// pointer from a spread to its target is ever stored.
type fragmentIndex map[string]*language.FragmentDefinition

// IndexFragments builds the name-indexed fragment table for a compilation
// unit, rejecting duplicate declarations.
func IndexFragments(doc *language.QueryDocument) (map[string]*language.FragmentDefinition, error) {
	idx, v := indexFragments(doc)
	if v != nil {
		return nil, v
	}
	return idx, nil
}

func indexFragments(doc *language.QueryDocument) (fragmentIndex, *Violation) {
	idx := make(fragmentIndex, len(doc.Fragments))
	for _, f := range doc.Fragments {
		if _, ok := idx[f.Name]; ok {
			return nil, violationDuplicateFragmentName(f.Name, f.Position)
		}
		idx[f.Name] = f
	}
	return idx, nil
}
