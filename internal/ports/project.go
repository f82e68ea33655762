package ports

import "vibranium/internal/types"

// ManifestPort reads and writes the project's declared configuration.
type ManifestPort interface {
	Exists(root string) bool
	Load(root string) (types.ProjectManifest, error)
	Save(root string, manifest types.ProjectManifest) error
	SetDependency(root string, name string, version string) error
	RemoveDependency(root string, name string) error
}

// LedgerPort reads and writes the record of installed packages.
type LedgerPort interface {
	Load(root string) (types.Ledger, error)
	Get(root string, name string) (types.InstalledPackageRecord, bool, error)
	Upsert(root string, record types.InstalledPackageRecord) error
	Delete(root string, name string) error
}

// PackageStorePort persists downloaded package content.
type PackageStorePort interface {
	// Write stores content for name and returns the path recorded in the
	// ledger, relative to root.
	Write(root string, name string, content []byte) (string, error)
	Remove(root string, storagePath string) error
}

// ProjectLockPort serialises mutating commands across processes.
type ProjectLockPort interface {
	Acquire(root string) (release func(), err error)
}

// ScaffoldPort creates the files of a new project.
type ScaffoldPort interface {
	Scaffold(root string, manifest types.ProjectManifest) (ScaffoldReport, error)
}

type ScaffoldReport struct {
	Created  []string
	Warnings []string
}
