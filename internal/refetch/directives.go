package refetch

import (
	"strings"

	language "github.com/BigsonLvrocha/relay/internal/language"
)

// Directive names the transform gives meaning to. Anything else passes
// through the pass untouched.
const (
	refetchableDirective         = "refetchable"
	argumentDefinitionsDirective = "argumentDefinitions"
	argumentsDirective           = "arguments"

	queryMetadataDirective    = "__refetchableQueryMetadata"
	fragmentMetadataDirective = "__refetchableMetadata"

	queryNameArg    = "queryName"
	fragmentNameArg = "fragmentName"
)

type directiveKind int

const (
	directiveOther directiveKind = iota
	directiveRefetchable
	directiveArgumentDefinitions
	directiveArguments
)

func classifyDirective(d *language.Directive) directiveKind {
	switch d.Name {
	case refetchableDirective:
		return directiveRefetchable
	case argumentDefinitionsDirective:
		return directiveArgumentDefinitions
	case argumentsDirective:
		return directiveArguments
	default:
		return directiveOther
	}
}

// argumentDefinition is one parsed @argumentDefinitions entry. The type is
// carried as the verbatim type-language string it was declared with.
type argumentDefinition struct {
	Name    string
	Type    string
	Default *language.Value
	pos     *language.Position
}

// parseArgumentDefinitions extracts the ordered argument definitions declared
// on fragment. A fragment without the directive declares none.
func parseArgumentDefinitions(fragment *language.FragmentDefinition) ([]argumentDefinition, *Violation) {
	d := fragment.Directives.ForName(argumentDefinitionsDirective)
	if d == nil {
		return nil, nil
	}
	defs := make([]argumentDefinition, 0, len(d.Arguments))
	for _, arg := range d.Arguments {
		if arg.Value == nil || arg.Value.Kind != language.ObjectValue {
			return nil, violationMalformedArgumentDefinitions(
				fragment.Name, "entry '"+arg.Name+"' must be an object with a 'type' key", arg.Position)
		}
		def := argumentDefinition{Name: arg.Name, pos: arg.Position}
		for _, child := range arg.Value.Children {
			switch child.Name {
			case "type":
				if child.Value.Kind != language.StringValue && child.Value.Kind != language.BlockValue {
					return nil, violationMalformedArgumentDefinitions(
						fragment.Name, "entry '"+arg.Name+"' has a non-string 'type'", child.Value.Position)
				}
				def.Type = strings.TrimSpace(child.Value.Raw)
			case "defaultValue":
				def.Default = child.Value
			default:
				return nil, violationMalformedArgumentDefinitions(
					fragment.Name, "entry '"+arg.Name+"' has unsupported key '"+child.Name+"'", child.Position)
			}
		}
		if def.Type == "" {
			return nil, violationMalformedArgumentDefinitions(
				fragment.Name, "entry '"+arg.Name+"' lacks a 'type' key", arg.Position)
		}
		if _, v := parseTypeReference(def.Type, arg.Position); v != nil {
			return nil, violationMalformedArgumentDefinitions(
				fragment.Name, "entry '"+arg.Name+"' declares unparseable type "+def.Type, arg.Position)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// parseRefetchable returns the queryName carried by the @refetchable
// directive, exact and unsanitized.
func parseRefetchable(fragment *language.FragmentDefinition) (string, *Violation) {
	d := fragment.Directives.ForName(refetchableDirective)
	if d == nil {
		return "", nil
	}
	if len(d.Arguments) != 1 {
		return "", violationMissingQueryName(fragment.Name, d.Position)
	}
	arg := d.Arguments[0]
	if arg.Name != queryNameArg || arg.Value == nil || arg.Value.Kind != language.StringValue {
		return "", violationMissingQueryName(fragment.Name, d.Position)
	}
	return arg.Value.Raw, nil
}

// spreadArguments returns the caller-side bindings an @arguments directive
// supplies on a spread. Whether each name exists on the target fragment is
// the propagation engine's call; the target may not have been visited yet.
func spreadArguments(spread *language.FragmentSpread) language.ArgumentList {
	d := spread.Directives.ForName(argumentsDirective)
	if d == nil {
		return nil
	}
	return d.Arguments
}

// parseTypeReference turns an opaque type-language string such as "[Int]!"
// into a structured type node. Used when declaring root variables.
func parseTypeReference(s string, pos *language.Position) (*language.Type, *Violation) {
	t, rest := scanTypeReference(strings.TrimSpace(s), pos)
	if t == nil || strings.TrimSpace(rest) != "" {
		return nil, violationWithPosition(CodeMalformedArgumentDefinitions,
			"unparseable type reference "+s, pos)
	}
	return t, nil
}

func scanTypeReference(s string, pos *language.Position) (*language.Type, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, s
	}
	var t *language.Type
	if s[0] == '[' {
		elem, rest := scanTypeReference(s[1:], pos)
		rest = strings.TrimSpace(rest)
		if elem == nil || rest == "" || rest[0] != ']' {
			return nil, s
		}
		t = &language.Type{Elem: elem, Position: pos}
		s = rest[1:]
	} else {
		i := 0
		for i < len(s) && (s[i] == '_' ||
			s[i] >= 'a' && s[i] <= 'z' ||
			s[i] >= 'A' && s[i] <= 'Z' ||
			s[i] >= '0' && s[i] <= '9') {
			i++
		}
		if i == 0 {
			return nil, s
		}
		t = &language.Type{NamedType: s[:i], Position: pos}
		s = s[i:]
	}
	if strings.HasPrefix(s, "!") {
		t.NonNull = true
		s = s[1:]
	}
	return t, s
}
