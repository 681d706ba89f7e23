package printer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/BigsonLvrocha/relay/internal/language"
	"github.com/BigsonLvrocha/relay/internal/printer"
)

// canonical is both the input and the expected output: printing a parse of
// canonical text must reproduce it byte for byte.
const canonical = `query Search($text: String!, $first: Int = 10) {
  search(text: $text, first: $first, filters: {safe: true, tags: ["a", "b"]}) @include(if: true) {
    ... on User {
      name
    }
    ...ResultCard
  }
}

fragment ResultCard on SearchResult {
  id
  thumb: picture(size: [32, 64]) {
    uri
  }
}
`

func TestPrintCanonical(t *testing.T) {
	doc, err := language.ParseQuery("canonical", canonical)
	require.NoError(t, err)
	require.Equal(t, canonical, printer.Print(doc))
}

func TestPrintIsIdempotent(t *testing.T) {
	messy := "query Search($text:String!,$first:Int=10){search(text:$text,first:$first," +
		"filters:{safe:true,tags:[\"a\",\"b\"]})@include(if:true){...on User{name}...ResultCard}}\n" +
		"fragment ResultCard on SearchResult{id,thumb:picture(size:[32,64]){uri}}"
	doc, err := language.ParseQuery("messy", messy)
	require.NoError(t, err)

	once := printer.Print(doc)
	require.Equal(t, canonical, once)

	reparsed, err := language.ParseQuery("reparsed", once)
	require.NoError(t, err)
	require.Equal(t, once, printer.Print(reparsed))
}

func TestEqual(t *testing.T) {
	a, err := language.ParseQuery("a", canonical)
	require.NoError(t, err)
	b, err := language.ParseQuery("b", canonical)
	require.NoError(t, err)
	require.True(t, printer.Equal(a, b))

	c, err := language.ParseQuery("c", "fragment Other on User {\n  id\n}\n")
	require.NoError(t, err)
	require.False(t, printer.Equal(a, c))
}

func TestPrintValueKinds(t *testing.T) {
	source := `fragment Values on Thing {
  field(i: 1, f: 1.5, s: "x", b: false, n: null, e: RED, v: $var, l: [1, $var], o: {k: "v", w: $var})
}
`
	doc, err := language.ParseQuery("values", source)
	require.NoError(t, err)
	require.Equal(t, source, printer.Print(doc))
}
