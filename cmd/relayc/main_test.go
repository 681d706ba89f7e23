package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const viewerFixture = `fragment RefetchableFragment on Viewer
  @refetchable(queryName: "RefetchableFragmentQuery")
  @argumentDefinitions(size: {type: "[Int]"}) {
  ...ProfilePicture @arguments(size: $size)
}

fragment ProfilePicture on User @argumentDefinitions(size: {type: "[Int]"}) {
  picture(size: $size) {
    uri
  }
}
`

func captureOutput(t *testing.T, fn func() error) (stdout, stderr string, err error) {
	t.Helper()
	oldOut, oldErr := os.Stdout, os.Stderr
	defer func() {
		os.Stdout, os.Stderr = oldOut, oldErr
	}()

	outR, outW, _ := os.Pipe()
	errR, errW, _ := os.Pipe()
	os.Stdout, os.Stderr = outW, errW

	doneOut := make(chan struct{})
	var bufOut bytes.Buffer
	go func() { io.Copy(&bufOut, outR); close(doneOut) }()

	doneErr := make(chan struct{})
	var bufErr bytes.Buffer
	go func() { io.Copy(&bufErr, errR); close(doneErr) }()

	err = fn()
	outW.Close()
	errW.Close()
	<-doneOut
	<-doneErr
	stdout, stderr = bufOut.String(), bufErr.String()
	return
}

func TestHelp(t *testing.T) {
	out, _, err := captureOutput(t, func() error {
		return run([]string{"help", "compile"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "compile FLAGS")
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := captureOutput(t, func() error {
		return run([]string{"frobnicate"})
	})
	require.Error(t, err)
}

func TestCompileToStdout(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "viewer.graphql"), []byte(viewerFixture), 0o644))

	out, _, err := captureOutput(t, func() error {
		return run([]string{"compile", "-graphql.root", root})
	})
	require.NoError(t, err)
	require.Contains(t, out, "query RefetchableFragmentQuery($size: [Int])")
	require.Contains(t, out, "viewer {")
}

func TestCompileToDir(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "viewer.graphql"), []byte(viewerFixture), 0o644))

	_, _, err := captureOutput(t, func() error {
		return run([]string{"compile", "-graphql.root", root, "-out", outDir})
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "RefetchableFragmentQuery.graphql"))
	require.NoError(t, err)
	require.Contains(t, string(data), "@__refetchableQueryMetadata(fragmentName: \"RefetchableFragment\")")
}

func TestCompileReportsViolations(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.graphql"),
		[]byte("fragment NoName on Viewer @refetchable {\n  name\n}\n"), 0o644))

	_, stderr, err := captureOutput(t, func() error {
		return run([]string{"compile", "-graphql.root", root})
	})
	require.Error(t, err)
	require.Contains(t, stderr, "MissingQueryName")
}
