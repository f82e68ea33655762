package ports

import (
	"context"

	"vibranium/internal/types"
)

// SourcePort discovers translatable sources within a project tree.
type SourcePort interface {
	ListIncludeDirs(root string) ([]string, error)
	ListSourceFiles(root string) ([]string, error)
}

// StageRunner invokes one external build tool. A non-zero exit code is
// reported through the result; the error is reserved for failures to run
// the tool at all.
type StageRunner interface {
	Run(ctx context.Context, dir string, tool string, args []string) (types.StageResult, error)
}
