package compiler

import (
	"context"
)

// UnitMetadata describes one compilation unit before its source is read.
type UnitMetadata struct {
	Name     string
	FilePath string
}

// Discovery enumerates the compilation units of a project and hands out
// their source text.
type Discovery interface {
	ListUnits(ctx context.Context) ([]*UnitMetadata, error)
	ReadUnitSource(ctx context.Context, name string) (string, error)
}
