package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"vibranium/internal/types"
)

// Init creates the project layout in req.Root. Existing files are left
// alone, so running it twice is harmless.
func (s Service) Init(ctx context.Context, req InitRequest) (InitResult, error) {
	root, err := projectRoot(req.Root)
	if err != nil {
		return InitResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return InitResult{}, err
	}
	report, err := s.Scaffold.Scaffold(root, types.DefaultManifest())
	if err != nil {
		return InitResult{}, err
	}
	for _, warning := range report.Warnings {
		log.Warn().Str("root", root).Msg(warning)
	}
	return InitResult{Root: root, Created: report.Created, Warnings: report.Warnings}, nil
}
