package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"vibranium/internal/ports"
	"vibranium/internal/types"
)

// ScaffoldAdapter lays out a new project. Existing files are never
// overwritten; each one found is reported as a warning instead.
type ScaffoldAdapter struct {
	Manifest ports.ManifestPort
}

func NewScaffoldAdapter(manifest ports.ManifestPort) ScaffoldAdapter {
	return ScaffoldAdapter{Manifest: manifest}
}

func (a ScaffoldAdapter) Scaffold(root string, manifest types.ProjectManifest) (ports.ScaffoldReport, error) {
	report := ports.ScaffoldReport{}
	if root == "" {
		return report, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project root is empty")
	}

	dir := LedgerDir(root)
	if dirExists(dir) {
		report.Warnings = append(report.Warnings, "the package directory has already been initialised")
	} else {
		if err := os.Mkdir(dir, 0o755); err != nil {
			return report, scaffoldError(dir, err)
		}
		report.Created = append(report.Created, types.LedgerDirName)
	}

	created, err := createIfMissing(LedgerPath(root), nil)
	if err != nil {
		return report, err
	}
	if created {
		report.Created = append(report.Created, filepath.Join(types.LedgerDirName, types.LedgerFileName))
	}

	entrypoint := manifest.Entrypoint
	if entrypoint == "" {
		entrypoint = types.DefaultEntrypoint
	}
	created, err = createIfMissing(filepath.Join(root, entrypoint), []byte(types.StubProgram))
	if err != nil {
		return report, err
	}
	if created {
		report.Created = append(report.Created, entrypoint)
	}

	if a.Manifest.Exists(root) {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%s already exists and was left unchanged", types.ManifestFileName))
		return report, nil
	}
	if err := a.Manifest.Save(root, manifest); err != nil {
		return report, err
	}
	report.Created = append(report.Created, types.ManifestFileName)
	return report, nil
}

func createIfMissing(path string, content []byte) (bool, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, scaffoldError(path, err)
	}
	defer file.Close()
	if _, err := file.Write(content); err != nil {
		return false, scaffoldError(path, err)
	}
	return true, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func scaffoldError(path string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to create " + path).
		WithCause(err)
}

var _ ports.ScaffoldPort = ScaffoldAdapter{}
