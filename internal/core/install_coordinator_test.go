package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibranium/internal/types"
)

const testRoot = "/project"

type installFixture struct {
	manifest *memoryManifest
	ledger   *memoryLedger
	registry *fakeRegistry
	store    *memoryStore
	lock     *countingLock
}

func newInstallFixture(records ...types.InstalledPackageRecord) *installFixture {
	manifest := newMemoryManifest()
	manifest.manifests[testRoot] = types.DefaultManifest()
	return &installFixture{
		manifest: manifest,
		ledger:   newMemoryLedger(records...),
		registry: &fakeRegistry{packages: map[string]string{
			"std==1.0":     "std v1",
			"std==2.0":     "std v2",
			"std==latest":  "std latest",
			"math==latest": "math latest",
			"io==0.3":      "io v0.3",
		}},
		store: newMemoryStore(),
		lock:  &countingLock{},
	}
}

func (f *installFixture) coordinator(pin bool) InstallCoordinator {
	return NewInstallCoordinator(f.manifest, f.ledger, f.registry, f.store, f.lock, pin)
}

func stdPath(name string) string {
	return filepath.Join(types.LedgerDirName, name+types.SourceExtension)
}

func TestInstallFromManifestDependencies(t *testing.T) {
	f := newInstallFixture()
	f.manifest.manifests[testRoot] = types.ProjectManifest{
		Entrypoint:   "main.wacc",
		OutputDir:    "out",
		Dependencies: map[string]string{"std": "1.0"},
	}

	report, err := f.coordinator(false).Install(t.Context(), testRoot, nil, false)
	require.NoError(t, err)

	if diff := cmp.Diff([]registryCall{{Name: "std", Version: "1.0"}}, f.registry.calls); diff != "" {
		t.Fatalf("unexpected registry calls (-want +got):\n%s", diff)
	}
	expected := types.Ledger{
		"std": {Name: "std", Version: "latest", StoragePath: stdPath("std")},
	}
	if diff := cmp.Diff(expected, f.ledger.records); diff != "" {
		t.Fatalf("unexpected ledger (-want +got):\n%s", diff)
	}
	assert.Equal(t, "std v1", f.store.files[stdPath("std")])
	assert.Equal(t, 1, report.Count(types.InstallOutcomeInstalled))
	assert.Equal(t, 1, f.lock.acquired)
	assert.Equal(t, 1, f.lock.released)
}

func TestInstallKeepsExistingRecords(t *testing.T) {
	existing := types.InstalledPackageRecord{Name: "io", Version: "latest", StoragePath: stdPath("io")}
	f := newInstallFixture(existing)

	_, err := f.coordinator(false).Install(t.Context(), testRoot, []string{"std", "math"}, false)
	require.NoError(t, err)

	expected := types.Ledger{
		"io":   existing,
		"std":  {Name: "std", Version: "latest", StoragePath: stdPath("std")},
		"math": {Name: "math", Version: "latest", StoragePath: stdPath("math")},
	}
	if diff := cmp.Diff(expected, f.ledger.records); diff != "" {
		t.Fatalf("unexpected ledger (-want +got):\n%s", diff)
	}
}

func TestInstallAlreadyPresentSkipsOnlyThatPackage(t *testing.T) {
	f := newInstallFixture(types.InstalledPackageRecord{Name: "std", Version: "latest", StoragePath: stdPath("std")})

	report, err := f.coordinator(false).Install(t.Context(), testRoot, []string{"std", "math"}, false)
	require.NoError(t, err)

	if diff := cmp.Diff([]registryCall{{Name: "math", Version: "latest"}}, f.registry.calls); diff != "" {
		t.Fatalf("unexpected registry calls (-want +got):\n%s", diff)
	}
	require.Len(t, report.Packages, 2)
	assert.Equal(t, types.InstallOutcomeAlreadyPresent, report.Packages[0].Outcome)
	assert.Equal(t, types.InstallOutcomeInstalled, report.Packages[1].Outcome)
	assert.Equal(t, 1, f.ledger.writes, "ledger untouched for the present package")
}

func TestInstallDifferentVersionFetches(t *testing.T) {
	f := newInstallFixture(types.InstalledPackageRecord{Name: "std", Version: "latest", StoragePath: stdPath("std")})

	_, err := f.coordinator(false).Install(t.Context(), testRoot, []string{"std==2.0"}, false)
	require.NoError(t, err)
	assert.Equal(t, []registryCall{{Name: "std", Version: "2.0"}}, f.registry.calls)
	assert.Equal(t, "std v2", f.store.files[stdPath("std")])
}

func TestInstallPinVersionsRecordsRequestedVersion(t *testing.T) {
	f := newInstallFixture()
	coordinator := f.coordinator(true)

	_, err := coordinator.Install(t.Context(), testRoot, []string{"std==1.0"}, false)
	require.NoError(t, err)
	assert.Equal(t, "1.0", f.ledger.records["std"].Version)

	report, err := coordinator.Install(t.Context(), testRoot, []string{"std==1.0"}, false)
	require.NoError(t, err)
	assert.Len(t, f.registry.calls, 1, "matching pinned version must not hit the registry")
	assert.Equal(t, 1, report.Count(types.InstallOutcomeAlreadyPresent))
}

func TestInstallNotFoundAbortsBatch(t *testing.T) {
	f := newInstallFixture()

	report, err := f.coordinator(false).Install(t.Context(), testRoot, []string{"foo==2.0", "std"}, false)
	require.Error(t, err)

	var toolErr *types.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, types.ErrorKindPackageNotFound, toolErr.Kind)
	assert.Equal(t, "foo", toolErr.Package)
	assert.Equal(t, "2.0", toolErr.Version)
	assert.Empty(t, f.ledger.records)
	assert.Equal(t, 0, f.ledger.writes)
	assert.Empty(t, report.Packages)
	assert.Len(t, f.registry.calls, 1, "batch stops at the failing package")
}

func TestInstallFailureKeepsEarlierPackages(t *testing.T) {
	f := newInstallFixture()
	f.registry.missing = map[string]bool{"io==0.3": true}

	report, err := f.coordinator(false).Install(t.Context(), testRoot, []string{"std", "io==0.3", "math"}, false)
	var toolErr *types.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, types.ErrorKindPackageMissing, toolErr.Kind)
	assert.Equal(t, "io", toolErr.Package)

	assert.Contains(t, f.ledger.records, "std")
	assert.NotContains(t, f.ledger.records, "math")
	assert.Equal(t, 1, report.Count(types.InstallOutcomeInstalled))
}

func TestInstallSaveWritesManifest(t *testing.T) {
	f := newInstallFixture()

	_, err := f.coordinator(false).Install(t.Context(), testRoot, []string{"io==0.3", "math"}, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"io": "0.3", "math": "latest"}, f.manifest.manifests[testRoot].Dependencies)
}

func TestInstallWithoutSaveLeavesManifest(t *testing.T) {
	f := newInstallFixture()

	_, err := f.coordinator(false).Install(t.Context(), testRoot, []string{"io==0.3"}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, f.manifest.saves)
	assert.Empty(t, f.manifest.manifests[testRoot].Dependencies)
}

func TestInstallLedgerMissing(t *testing.T) {
	f := newInstallFixture()
	f.ledger.present = false

	_, err := f.coordinator(false).Install(t.Context(), testRoot, []string{"std"}, false)
	var toolErr *types.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, types.ErrorKindLedgerMissing, toolErr.Kind)
	assert.Empty(t, f.registry.calls)
}

func TestInstallWithoutManifestNotInitialized(t *testing.T) {
	f := newInstallFixture()
	delete(f.manifest.manifests, testRoot)

	_, err := f.coordinator(false).Install(t.Context(), testRoot, nil, false)
	var toolErr *types.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, types.ErrorKindNotInitialized, toolErr.Kind)

	_, err = f.coordinator(false).Install(t.Context(), testRoot, []string{"std"}, true)
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, types.ErrorKindNotInitialized, toolErr.Kind)
	assert.Empty(t, f.registry.calls)
}

func TestInstallRejectsMalformedRequest(t *testing.T) {
	f := newInstallFixture()
	_, err := f.coordinator(false).Install(t.Context(), testRoot, []string{"std=="}, false)
	require.Error(t, err)
	assert.Empty(t, f.registry.calls)
}

func TestInstallCancelledContext(t *testing.T) {
	f := newInstallFixture()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := f.coordinator(false).Install(ctx, testRoot, []string{"std"}, false)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.registry.calls)
	assert.Equal(t, f.lock.acquired, f.lock.released)
}

func TestRemoveDeletesRecordAndContent(t *testing.T) {
	f := newInstallFixture()
	coordinator := f.coordinator(false)
	_, err := coordinator.Install(t.Context(), testRoot, []string{"std==1.0", "math"}, true)
	require.NoError(t, err)

	report, err := coordinator.Remove(t.Context(), testRoot, []string{"std", "ghost"}, true)
	require.NoError(t, err)

	expected := []types.PackageRemoval{
		{Name: "std", Outcome: types.RemoveOutcomeRemoved},
		{Name: "ghost", Outcome: types.RemoveOutcomeNotInstalled},
	}
	if diff := cmp.Diff(expected, report.Packages); diff != "" {
		t.Fatalf("unexpected removals (-want +got):\n%s", diff)
	}
	assert.NotContains(t, f.ledger.records, "std")
	assert.Contains(t, f.ledger.records, "math")
	assert.NotContains(t, f.store.files, stdPath("std"))
	assert.Equal(t, map[string]string{"math": "latest"}, f.manifest.manifests[testRoot].Dependencies)
}

func TestRemoveWithoutSaveKeepsManifest(t *testing.T) {
	f := newInstallFixture(types.InstalledPackageRecord{Name: "std", Version: "latest", StoragePath: stdPath("std")})
	f.manifest.manifests[testRoot] = types.ProjectManifest{OutputDir: "out", Dependencies: map[string]string{"std": "1.0"}}

	_, err := f.coordinator(false).Remove(t.Context(), testRoot, []string{"std==1.0"}, false)
	require.NoError(t, err)
	assert.Empty(t, f.ledger.records)
	assert.Equal(t, map[string]string{"std": "1.0"}, f.manifest.manifests[testRoot].Dependencies)
	assert.Equal(t, []string{stdPath("std")}, f.store.removed)
}

func TestRemoveRequiresPackages(t *testing.T) {
	f := newInstallFixture()
	_, err := f.coordinator(false).Remove(t.Context(), testRoot, nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one package")
}
