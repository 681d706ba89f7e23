package language_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/BigsonLvrocha/relay/internal/language"
)

const walkSource = `fragment Card on User {
  id
  friends {
    ...Edge
    nodes {
      name
    }
  }
  ... on Admin {
    permissions
  }
}
`

func selectionName(sel language.Selection) string {
	switch n := sel.(type) {
	case *language.Field:
		return n.Name
	case *language.FragmentSpread:
		return "..." + n.Name
	case *language.InlineFragment:
		return "...on " + n.TypeCondition
	}
	return "?"
}

func TestWalkPreOrder(t *testing.T) {
	doc, err := language.ParseQuery("walk", walkSource)
	require.NoError(t, err)

	var got []string
	language.Walk(doc.Fragments[0].SelectionSet, func(sel language.Selection) bool {
		got = append(got, selectionName(sel))
		return true
	})
	require.Equal(t, []string{
		"id", "friends", "...Edge", "nodes", "name", "...on Admin", "permissions",
	}, got)
}

func TestWalkPrunes(t *testing.T) {
	doc, err := language.ParseQuery("walk", walkSource)
	require.NoError(t, err)

	var got []string
	language.Walk(doc.Fragments[0].SelectionSet, func(sel language.Selection) bool {
		name := selectionName(sel)
		got = append(got, name)
		return name != "friends"
	})
	require.Equal(t, []string{"id", "friends", "...on Admin", "permissions"}, got)
}

func TestWalkValues(t *testing.T) {
	doc, err := language.ParseQuery("values", `{
  field(arg: {list: [$a, 1], nested: {v: $b}})
}
`)
	require.NoError(t, err)

	field := doc.Operations[0].SelectionSet[0].(*language.Field)
	var vars []string
	language.WalkValues(field.Arguments[0].Value, func(v *language.Value) {
		if v.Kind == language.Variable {
			vars = append(vars, v.Raw)
		}
	})
	require.Equal(t, []string{"a", "b"}, vars)
}
