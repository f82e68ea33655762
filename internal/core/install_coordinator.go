package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"vibranium/internal/ports"
	"vibranium/internal/types"
)

// InstallCoordinator reconciles requested packages against the ledger and
// the registry. Batches are fail-fast: the first registry failure aborts
// the batch, and packages installed before it stay installed.
type InstallCoordinator struct {
	Manifest ports.ManifestPort
	Ledger   ports.LedgerPort
	Registry ports.RegistryPort
	Store    ports.PackageStorePort
	Lock     ports.ProjectLockPort
	// PinVersions records the requested version in the ledger. When false
	// every install is recorded as "latest".
	PinVersions bool
}

func NewInstallCoordinator(manifest ports.ManifestPort, ledger ports.LedgerPort, registry ports.RegistryPort, store ports.PackageStorePort, lock ports.ProjectLockPort, pinVersions bool) InstallCoordinator {
	return InstallCoordinator{
		Manifest:    manifest,
		Ledger:      ledger,
		Registry:    registry,
		Store:       store,
		Lock:        lock,
		PinVersions: pinVersions,
	}
}

// Install installs specs ("name" or "name==version"). An empty list
// installs every dependency declared in the manifest.
func (c InstallCoordinator) Install(ctx context.Context, root string, specs []string, save bool) (types.InstallReport, error) {
	report := types.InstallReport{}
	requests, err := c.installRequests(root, specs)
	if err != nil {
		return report, err
	}
	if save && !c.Manifest.Exists(root) {
		return report, types.NewNotInitializedError(root)
	}

	release, err := c.Lock.Acquire(root)
	if err != nil {
		return report, err
	}
	defer release()

	ledger, err := c.Ledger.Load(root)
	if err != nil {
		return report, err
	}
	log.Info().Int("packages", len(requests)).Msg("installing packages")

	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		assert.NotEmpty(ctx, req.Name, "package request name must be set")

		existing, ok := ledger[req.Name]
		if ok && existing.Version == req.Version {
			log.Info().Str("package", req.Name).Str("version", req.Version).Msg("package already present")
			report.Packages = append(report.Packages, types.PackageInstall{
				Request: req,
				Outcome: types.InstallOutcomeAlreadyPresent,
				Record:  existing,
			})
			continue
		}
		if ok {
			log.Info().
				Str("package", req.Name).
				Str("from", existing.Version).
				Str("to", req.Version).
				Str("change", string(classifyVersionChange(existing.Version, req.Version))).
				Msg("replacing installed package")
		}

		record, err := c.installOne(ctx, root, req)
		if err != nil {
			return report, err
		}
		ledger[req.Name] = record
		if save {
			if err := c.Manifest.SetDependency(root, req.Name, req.Version); err != nil {
				return report, err
			}
		}
		log.Info().Str("package", req.Name).Str("version", req.Version).Msg("install success")
		report.Packages = append(report.Packages, types.PackageInstall{
			Request: req,
			Outcome: types.InstallOutcomeInstalled,
			Record:  record,
		})
	}
	return report, nil
}

func (c InstallCoordinator) installOne(ctx context.Context, root string, req types.PackageRequest) (types.InstalledPackageRecord, error) {
	content, err := c.Registry.Fetch(ctx, req.Name, req.Version)
	if err != nil {
		return types.InstalledPackageRecord{}, err
	}
	path, err := c.Store.Write(root, req.Name, content)
	if err != nil {
		return types.InstalledPackageRecord{}, err
	}
	record := types.InstalledPackageRecord{
		Name:        req.Name,
		Version:     c.recordedVersion(req),
		StoragePath: path,
	}
	if err := c.Ledger.Upsert(root, record); err != nil {
		return types.InstalledPackageRecord{}, err
	}
	return record, nil
}

func (c InstallCoordinator) recordedVersion(req types.PackageRequest) string {
	if c.PinVersions {
		return req.Version
	}
	return types.VersionLatest
}

func (c InstallCoordinator) installRequests(root string, specs []string) ([]types.PackageRequest, error) {
	if len(specs) > 0 {
		return ParsePackageRequests(specs)
	}
	manifest, err := c.Manifest.Load(root)
	if err != nil {
		return nil, err
	}
	return RequestsFromDependencies(manifest.Dependencies), nil
}

// Remove deletes installed packages and their stored content. Names that
// are not installed are reported, not treated as failures. With save the
// manifest dependency is dropped as well.
func (c InstallCoordinator) Remove(ctx context.Context, root string, specs []string, save bool) (types.RemoveReport, error) {
	report := types.RemoveReport{}
	if len(specs) == 0 {
		return report, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one package is required")
	}
	requests, err := ParsePackageRequests(specs)
	if err != nil {
		return report, err
	}
	if save && !c.Manifest.Exists(root) {
		return report, types.NewNotInitializedError(root)
	}

	release, err := c.Lock.Acquire(root)
	if err != nil {
		return report, err
	}
	defer release()

	ledger, err := c.Ledger.Load(root)
	if err != nil {
		return report, err
	}
	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome := types.RemoveOutcomeNotInstalled
		if record, ok := ledger[req.Name]; ok {
			if err := c.Store.Remove(root, record.StoragePath); err != nil {
				return report, err
			}
			if err := c.Ledger.Delete(root, req.Name); err != nil {
				return report, err
			}
			delete(ledger, req.Name)
			outcome = types.RemoveOutcomeRemoved
			log.Info().Str("package", req.Name).Msg("package removed")
		} else {
			log.Warn().Str("package", req.Name).Msg("package is not installed")
		}
		if save {
			if err := c.Manifest.RemoveDependency(root, req.Name); err != nil {
				return report, err
			}
		}
		report.Packages = append(report.Packages, types.PackageRemoval{Name: req.Name, Outcome: outcome})
	}
	return report, nil
}
