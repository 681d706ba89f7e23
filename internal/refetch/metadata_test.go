package refetch_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/BigsonLvrocha/relay/internal/language"
	"github.com/BigsonLvrocha/relay/internal/printer"
	"github.com/BigsonLvrocha/relay/internal/refetch"
)

func TestMetadataRoundTrip(t *testing.T) {
	doc := mustParse(t, filepath.Join("testdata", "good", "refetchable_fragment.graphql"))

	out, err := refetch.Transform(doc, "RefetchableFragment")
	require.NoError(t, err)

	// Reparse the printed output so the round trip crosses the wire format,
	// not just the in-memory tree.
	reparsed, err := language.ParseQuery("out", printer.Print(out))
	require.NoError(t, err)

	qm, ok := refetch.QueryMetadataOf(reparsed.Operations[0])
	require.True(t, ok)
	require.Equal(t, "RefetchableFragment", qm.FragmentName)

	transformed := reparsed.Fragments.ForName("RefetchableFragment")
	require.NotNil(t, transformed)
	fm, ok := refetch.FragmentMetadataOf(transformed)
	require.True(t, ok)
	require.Equal(t, "RefetchableFragmentQuery", fm.QueryName)
	require.Equal(t, []string{"viewer"}, fm.Path)
	require.Empty(t, fm.Identifier)

	// The dependency fragment carries no refetch metadata.
	dep := reparsed.Fragments.ForName("ProfilePicture")
	require.NotNil(t, dep)
	_, ok = refetch.FragmentMetadataOf(dep)
	require.False(t, ok)
}

func TestQueryRootMetadataPathIsEmpty(t *testing.T) {
	doc := mustParse(t, filepath.Join("testdata", "good", "query_root_fragment.graphql"))

	out, err := refetch.Transform(doc, "SettingsPane")
	require.NoError(t, err)

	fm, ok := refetch.FragmentMetadataOf(out.Fragments[len(out.Fragments)-1])
	require.True(t, ok)
	require.Equal(t, "SettingsPaneRefetchQuery", fm.QueryName)
	require.Empty(t, fm.Path)
	require.Empty(t, fm.Identifier)
}
