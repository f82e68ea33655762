package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"vibranium/internal/ports"
	"vibranium/internal/shared"
	"vibranium/internal/types"
)

// PackageStoreAdapter keeps downloaded package sources inside the ledger
// directory, one file per package name.
type PackageStoreAdapter struct{}

func NewPackageStoreAdapter() PackageStoreAdapter {
	return PackageStoreAdapter{}
}

// StoragePath is the ledger-recorded location of a package, relative to
// the project root.
func StoragePath(name string) string {
	return filepath.Join(types.LedgerDirName, name+types.SourceExtension)
}

func (a PackageStoreAdapter) Write(root string, name string, content []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid package name: " + name)
	}
	rel := StoragePath(name)
	if err := shared.WriteFileAtomic(filepath.Join(root, rel), content, 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write package " + name).
			WithCause(err)
	}
	return rel, nil
}

func (a PackageStoreAdapter) Remove(root string, storagePath string) error {
	if storagePath == "" {
		return nil
	}
	path := storagePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove package file " + path).
			WithCause(err)
	}
	return nil
}

var _ ports.PackageStorePort = PackageStoreAdapter{}
