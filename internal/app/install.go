package app

import (
	"context"

	"vibranium/internal/core"
)

func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	root, err := projectRoot(req.Root)
	if err != nil {
		return InstallResult{}, err
	}
	report, err := s.coordinator().Install(ctx, root, req.Packages, req.Save)
	return InstallResult{Report: report}, err
}

func (s Service) Remove(ctx context.Context, req RemoveRequest) (RemoveResult, error) {
	root, err := projectRoot(req.Root)
	if err != nil {
		return RemoveResult{}, err
	}
	report, err := s.coordinator().Remove(ctx, root, req.Packages, req.Save)
	return RemoveResult{Report: report}, err
}

func (s Service) coordinator() core.InstallCoordinator {
	return core.NewInstallCoordinator(s.Manifest, s.Ledger, s.Registry, s.Store, s.Lock, s.PinVersions)
}
