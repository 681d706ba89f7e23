// Package printer renders executable documents back to canonical source
// text. Output is deterministic for a given AST so it can be compared
// byte-for-byte against golden files.
package printer

import (
	"strconv"
	"strings"

	language "github.com/BigsonLvrocha/relay/internal/language"
)

const indentUnit = "  "

// Print renders doc: operations in document order, then fragments, one
// blank line between definitions, trailing newline normalized.
func Print(doc *language.QueryDocument) string {
	var b strings.Builder
	for _, op := range doc.Operations {
		renderOperation(&b, op)
		b.WriteString("\n")
	}
	for _, f := range doc.Fragments {
		renderFragment(&b, f)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Equal reports whether two documents render to the same canonical text.
// Positions and comments are not part of the comparison.
func Equal(a, b *language.QueryDocument) bool {
	return Print(a) == Print(b)
}

// ----- render helpers -----

func renderOperation(b *strings.Builder, op *language.OperationDefinition) {
	b.WriteString(string(op.Operation))
	if op.Name != "" {
		b.WriteString(" " + op.Name)
	}
	if len(op.VariableDefinitions) > 0 {
		b.WriteString("(")
		for i, vd := range op.VariableDefinitions {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("$" + vd.Variable + ": ")
			renderType(b, vd.Type)
			if vd.DefaultValue != nil {
				b.WriteString(" = ")
				renderValue(b, vd.DefaultValue)
			}
		}
		b.WriteString(")")
	}
	renderDirectives(b, op.Directives)
	b.WriteString(" ")
	renderSelectionSet(b, op.SelectionSet, "")
	b.WriteString("\n")
}

func renderFragment(b *strings.Builder, f *language.FragmentDefinition) {
	b.WriteString("fragment " + f.Name + " on " + f.TypeCondition)
	renderDirectives(b, f.Directives)
	b.WriteString(" ")
	renderSelectionSet(b, f.SelectionSet, "")
	b.WriteString("\n")
}

func renderSelectionSet(b *strings.Builder, ss language.SelectionSet, indent string) {
	b.WriteString("{\n")
	inner := indent + indentUnit
	for _, sel := range ss {
		b.WriteString(inner)
		switch n := sel.(type) {
		case *language.Field:
			renderField(b, n, inner)
		case *language.FragmentSpread:
			b.WriteString("..." + n.Name)
			renderDirectives(b, n.Directives)
		case *language.InlineFragment:
			b.WriteString("...")
			if n.TypeCondition != "" {
				b.WriteString(" on " + n.TypeCondition)
			}
			renderDirectives(b, n.Directives)
			b.WriteString(" ")
			renderSelectionSet(b, n.SelectionSet, inner)
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
}

func renderField(b *strings.Builder, f *language.Field, indent string) {
	if f.Alias != "" && f.Alias != f.Name {
		b.WriteString(f.Alias + ": ")
	}
	b.WriteString(f.Name)
	if len(f.Arguments) > 0 {
		b.WriteString("(")
		renderArguments(b, f.Arguments)
		b.WriteString(")")
	}
	renderDirectives(b, f.Directives)
	if len(f.SelectionSet) > 0 {
		b.WriteString(" ")
		renderSelectionSet(b, f.SelectionSet, indent)
	}
}

func renderDirectives(b *strings.Builder, ds language.DirectiveList) {
	for _, d := range ds {
		b.WriteString(" @" + d.Name)
		if len(d.Arguments) > 0 {
			b.WriteString("(")
			renderArguments(b, d.Arguments)
			b.WriteString(")")
		}
	}
}

func renderArguments(b *strings.Builder, args language.ArgumentList) {
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name + ": ")
		renderValue(b, a.Value)
	}
}

func renderValue(b *strings.Builder, v *language.Value) {
	if v == nil {
		b.WriteString("null")
		return
	}
	switch v.Kind {
	case language.Variable:
		b.WriteString("$" + v.Raw)
	case language.StringValue, language.BlockValue:
		b.WriteString(strconv.Quote(v.Raw))
	case language.ListValue:
		b.WriteString("[")
		for i, c := range v.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			renderValue(b, c.Value)
		}
		b.WriteString("]")
	case language.ObjectValue:
		b.WriteString("{")
		for i, c := range v.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name + ": ")
			renderValue(b, c.Value)
		}
		b.WriteString("}")
	default:
		// Int, Float, Boolean, Null and Enum literals print as scanned.
		b.WriteString(v.Raw)
	}
}

func renderType(b *strings.Builder, t *language.Type) {
	if t == nil {
		return
	}
	if t.NamedType != "" {
		b.WriteString(t.NamedType)
	} else {
		b.WriteString("[")
		renderType(b, t.Elem)
		b.WriteString("]")
	}
	if t.NonNull {
		b.WriteString("!")
	}
}
