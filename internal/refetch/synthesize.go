package refetch

import (
	language "github.com/BigsonLvrocha/relay/internal/language"
)

// rootPattern maps a fragment's type condition to the field chain that
// mounts it under the query root, plus the identifying argument field for
// by-id patterns. Adding a root pattern is a table edit, not new control
// flow.
type rootPattern struct {
	path       []string
	identifier string
}

var rootPatterns = map[string]rootPattern{
	"Viewer": {path: []string{"viewer"}},
	"Query":  {},
}

// synthesize builds the output document for one refetchable fragment: the
// standalone query first, reached dependency fragments in discovery order,
// and the transformed fragment itself last. The input document and every
// fragment in it are left untouched.
func synthesize(fragment *language.FragmentDefinition, queryName string, prop *propagated) (*language.QueryDocument, *Violation) {
	pattern, ok := rootPatterns[fragment.TypeCondition]
	if !ok {
		return nil, violationUnrecognizedRefetchableRoot(fragment.Name, fragment.TypeCondition, fragment.Position)
	}

	varDefs := make(language.VariableDefinitionList, 0, len(prop.variables))
	for _, rv := range prop.variables {
		t, v := parseTypeReference(rv.Type, rv.pos)
		if v != nil {
			return nil, v
		}
		varDefs = append(varDefs, &language.VariableDefinition{
			Variable:     rv.Name,
			Type:         t,
			DefaultValue: rv.Default,
		})
	}

	spread := &language.FragmentSpread{Name: fragment.Name}
	if len(prop.rootDefs) > 0 {
		args := make(language.ArgumentList, 0, len(prop.rootDefs))
		for _, def := range prop.rootDefs {
			args = append(args, &language.Argument{
				Name:  def.Name,
				Value: &language.Value{Kind: language.Variable, Raw: def.Name},
			})
		}
		spread.Directives = language.DirectiveList{{Name: argumentsDirective, Arguments: args}}
	}

	selections := language.SelectionSet{spread}
	for i := len(pattern.path) - 1; i >= 0; i-- {
		selections = language.SelectionSet{&language.Field{
			Name:         pattern.path[i],
			SelectionSet: selections,
		}}
	}

	op := &language.OperationDefinition{
		Operation:           language.Query,
		Name:                queryName,
		VariableDefinitions: varDefs,
		Directives: language.DirectiveList{{
			Name: queryMetadataDirective,
			Arguments: language.ArgumentList{{
				Name:  fragmentNameArg,
				Value: &language.Value{Kind: language.StringValue, Raw: fragment.Name},
			}},
		}},
		SelectionSet: selections,
	}

	transformed := *fragment
	transformed.Directives = append(
		append(language.DirectiveList{}, fragment.Directives...),
		fragmentMetadataDirectiveNode(queryName, pattern),
	)

	fragments := make(language.FragmentDefinitionList, 0, len(prop.dependencies)+1)
	fragments = append(fragments, prop.dependencies...)
	fragments = append(fragments, &transformed)

	return &language.QueryDocument{
		Operations: language.OperationList{op},
		Fragments:  fragments,
	}, nil
}

// fragmentMetadataDirectiveNode encodes the runtime refetch metadata as a
// 3-tuple: query name, field path from the query root to the mount point,
// and the identifier field, null for identifier-less roots.
func fragmentMetadataDirectiveNode(queryName string, pattern rootPattern) *language.Directive {
	path := &language.Value{Kind: language.ListValue}
	for _, field := range pattern.path {
		path.Children = append(path.Children, &language.ChildValue{
			Value: &language.Value{Kind: language.StringValue, Raw: field},
		})
	}
	identifier := &language.Value{Kind: language.NullValue, Raw: "null"}
	if pattern.identifier != "" {
		identifier = &language.Value{Kind: language.StringValue, Raw: pattern.identifier}
	}
	tuple := &language.Value{Kind: language.ListValue, Children: language.ChildValueList{
		{Value: &language.Value{Kind: language.StringValue, Raw: queryName}},
		{Value: path},
		{Value: identifier},
	}}
	return &language.Directive{
		Name:      fragmentMetadataDirective,
		Arguments: language.ArgumentList{{Name: fragmentMetadataDirective, Value: tuple}},
	}
}
