package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileSystemDiscovery enumerates .graphql compilation units under a root
// directory. Units are listed in lexicographic path order so compile output
// is stable across runs.
type FileSystemDiscovery struct {
	unitFilePaths map[string]string
	unitMetas     map[string]*UnitMetadata
}

// NewFileSystemDiscovery walks rootDir once and records every .graphql file
// as a compilation unit named by its root-relative path.
func NewFileSystemDiscovery(ctx context.Context, rootDir string) (*FileSystemDiscovery, error) {
	discovery := &FileSystemDiscovery{
		unitFilePaths: make(map[string]string),
		unitMetas:     make(map[string]*UnitMetadata),
	}

	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) != ".graphql" {
			return nil
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %q: %w", path, err)
		}
		name := strings.ReplaceAll(relPath, string(filepath.Separator), "/")

		discovery.unitFilePaths[name] = path
		discovery.unitMetas[name] = &UnitMetadata{
			Name:     name,
			FilePath: relPath,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk root directory %q: %w", rootDir, err)
	}
	return discovery, nil
}

// ListUnits implements Discovery.
func (d *FileSystemDiscovery) ListUnits(ctx context.Context) ([]*UnitMetadata, error) {
	units := make([]*UnitMetadata, 0, len(d.unitMetas))
	for _, u := range d.unitMetas {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}

// ReadUnitSource implements Discovery.
func (d *FileSystemDiscovery) ReadUnitSource(ctx context.Context, name string) (string, error) {
	fp, ok := d.unitFilePaths[name]
	if !ok {
		return "", fmt.Errorf("unit %q not found", name)
	}
	content, err := os.ReadFile(fp)
	if err != nil {
		return "", fmt.Errorf("failed to read unit %q: %w", name, err)
	}
	return string(content), nil
}

// Load is a convenience function that discovers rootDir and compiles it.
func Load(ctx context.Context, rootDir string) (*Result, error) {
	discovery, err := NewFileSystemDiscovery(ctx, rootDir)
	if err != nil {
		return nil, err
	}
	return Compile(ctx, discovery)
}
