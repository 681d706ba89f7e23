package refetch

import (
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/BigsonLvrocha/relay/internal/language"
)

func TestParseTypeReference(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{in: "Int", want: "Int"},
		{in: "Int!", want: "Int!"},
		{in: "[Int]", want: "[Int]"},
		{in: "[Int!]!", want: "[Int!]!"},
		{in: " [ String ] ", want: "[String]"},
	} {
		typ, vio := parseTypeReference(tc.in, nil)
		require.Nil(t, vio, "type %q", tc.in)
		require.Equal(t, tc.want, renderTypeString(typ), "type %q", tc.in)
	}

	for _, bad := range []string{"", "[Int", "Int]", "[]", "Int Int", "!"} {
		_, vio := parseTypeReference(bad, nil)
		require.NotNil(t, vio, "type %q must not parse", bad)
	}
}

func renderTypeString(t *language.Type) string {
	if t == nil {
		return ""
	}
	s := t.NamedType
	if s == "" {
		s = "[" + renderTypeString(t.Elem) + "]"
	}
	if t.NonNull {
		s += "!"
	}
	return s
}
