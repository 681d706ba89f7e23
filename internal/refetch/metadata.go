package refetch

import (
	language "github.com/BigsonLvrocha/relay/internal/language"
)

// QueryMetadata is what a synthesized operation carries so the runtime can
// trace it back to its originating fragment.
type QueryMetadata struct {
	FragmentName string
}

// FragmentMetadata is the refetch tuple carried by the transformed fragment:
// which query to issue and where under its root the fragment mounts.
// Identifier is empty for identifier-less roots.
type FragmentMetadata struct {
	QueryName  string
	Path       []string
	Identifier string
}

// QueryMetadataOf decodes the __refetchableQueryMetadata directive on op.
// The second result is false when the directive is absent or malformed.
func QueryMetadataOf(op *language.OperationDefinition) (QueryMetadata, bool) {
	d := op.Directives.ForName(queryMetadataDirective)
	if d == nil || len(d.Arguments) != 1 {
		return QueryMetadata{}, false
	}
	arg := d.Arguments[0]
	if arg.Name != fragmentNameArg || arg.Value == nil || arg.Value.Kind != language.StringValue {
		return QueryMetadata{}, false
	}
	return QueryMetadata{FragmentName: arg.Value.Raw}, true
}

// FragmentMetadataOf decodes the __refetchableMetadata directive on f.
func FragmentMetadataOf(f *language.FragmentDefinition) (FragmentMetadata, bool) {
	d := f.Directives.ForName(fragmentMetadataDirective)
	if d == nil || len(d.Arguments) != 1 {
		return FragmentMetadata{}, false
	}
	arg := d.Arguments[0]
	if arg.Name != fragmentMetadataDirective || arg.Value == nil ||
		arg.Value.Kind != language.ListValue || len(arg.Value.Children) != 3 {
		return FragmentMetadata{}, false
	}
	name := arg.Value.Children[0].Value
	path := arg.Value.Children[1].Value
	ident := arg.Value.Children[2].Value
	if name == nil || name.Kind != language.StringValue || path == nil || path.Kind != language.ListValue {
		return FragmentMetadata{}, false
	}
	meta := FragmentMetadata{QueryName: name.Raw, Path: []string{}}
	for _, c := range path.Children {
		if c.Value == nil || c.Value.Kind != language.StringValue {
			return FragmentMetadata{}, false
		}
		meta.Path = append(meta.Path, c.Value.Raw)
	}
	switch {
	case ident == nil:
		return FragmentMetadata{}, false
	case ident.Kind == language.NullValue:
	case ident.Kind == language.StringValue:
		meta.Identifier = ident.Raw
	default:
		return FragmentMetadata{}, false
	}
	return meta, true
}
