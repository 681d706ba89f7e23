package refetch

import (
	"fmt"

	language "github.com/BigsonLvrocha/relay/internal/language"
)

// IsRefetchable reports whether f is marked for standalone refetch.
func IsRefetchable(f *language.FragmentDefinition) bool {
	return f.Directives.ForName(refetchableDirective) != nil
}

// Transform rewrites the @refetchable fragment named fragmentName from doc
// into a standalone query document. doc is read, never written: the result
// shares untouched fragment nodes with the input and owns everything it
// changed, so transforming one fragment leaves the unit pristine for the
// next.
func Transform(doc *language.QueryDocument, fragmentName string) (*language.QueryDocument, error) {
	idx, vio := indexFragments(doc)
	if vio != nil {
		return nil, vio
	}
	fragment, ok := idx[fragmentName]
	if !ok {
		return nil, fmt.Errorf("fragment %q not found in document", fragmentName)
	}
	if fragment.Directives.ForName(refetchableDirective) == nil {
		return nil, fmt.Errorf("fragment %q is not marked @refetchable", fragmentName)
	}
	out, vio := transform(idx, fragment)
	if vio != nil {
		return nil, vio
	}
	return out, nil
}

// TransformAll transforms every @refetchable fragment in doc, in declaration
// order. A structural violation rejects the whole unit and yields no output;
// a violation scoped to one fragment skips only that fragment's output. All
// violations come back together as a ValidationError.
func TransformAll(doc *language.QueryDocument) ([]*language.QueryDocument, error) {
	idx, vio := indexFragments(doc)
	if vio != nil {
		return nil, vio
	}
	var outputs []*language.QueryDocument
	var failed ValidationError
	for _, fragment := range doc.Fragments {
		if fragment.Directives.ForName(refetchableDirective) == nil {
			continue
		}
		out, vio := transform(idx, fragment)
		if vio != nil {
			failed = append(failed, vio)
			if ClassOf(vio.Code) == StructuralError {
				return nil, failed
			}
			continue
		}
		outputs = append(outputs, out)
	}
	if len(failed) > 0 {
		return outputs, failed
	}
	return outputs, nil
}

func transform(idx fragmentIndex, fragment *language.FragmentDefinition) (*language.QueryDocument, *Violation) {
	queryName, vio := parseRefetchable(fragment)
	if vio != nil {
		return nil, vio
	}
	prop, vio := propagate(idx, fragment)
	if vio != nil {
		return nil, vio
	}
	return synthesize(fragment, queryName, prop)
}
