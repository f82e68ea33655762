package app

import (
	"context"
	"sort"

	"vibranium/internal/core"
)

// List reports installed packages and, when the manifest is present, the
// declared dependencies. Both are sorted by name.
func (s Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	root, err := projectRoot(req.Root)
	if err != nil {
		return ListResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return ListResult{}, err
	}
	ledger, err := s.Ledger.Load(root)
	if err != nil {
		return ListResult{}, err
	}
	result := ListResult{}
	for _, record := range ledger {
		result.Packages = append(result.Packages, record)
	}
	sort.Slice(result.Packages, func(i, j int) bool {
		return result.Packages[i].Name < result.Packages[j].Name
	})
	if s.Manifest.Exists(root) {
		manifest, err := s.Manifest.Load(root)
		if err != nil {
			return ListResult{}, err
		}
		result.Dependencies = core.RequestsFromDependencies(manifest.Dependencies)
	}
	return result, nil
}
