package adapters

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-ini/ini"

	"vibranium/internal/ports"
	"vibranium/internal/shared"
	"vibranium/internal/types"
)

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func ManifestPath(root string) string {
	return filepath.Join(root, types.ManifestFileName)
}

func (a ManifestFileAdapter) Exists(root string) bool {
	info, err := os.Stat(ManifestPath(root))
	return err == nil && !info.IsDir()
}

func (a ManifestFileAdapter) Load(root string) (types.ProjectManifest, error) {
	path := ManifestPath(root)
	if !a.Exists(root) {
		return types.ProjectManifest{}, types.NewNotInitializedError(root)
	}
	file, err := ini.Load(path)
	if err != nil {
		return types.ProjectManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse manifest " + path).
			WithCause(err)
	}
	manifest := types.ProjectManifest{Dependencies: map[string]string{}}
	if settings, err := file.GetSection(types.ManifestSectionSettings); err == nil {
		manifest.Entrypoint = settings.Key(types.ManifestKeyEntrypoint).String()
		manifest.OutputDir = settings.Key(types.ManifestKeyOutputDir).String()
	}
	if deps, err := file.GetSection(types.ManifestSectionDependencies); err == nil {
		for _, key := range deps.Keys() {
			manifest.Dependencies[key.Name()] = key.String()
		}
	}
	return manifest, nil
}

func (a ManifestFileAdapter) Save(root string, manifest types.ProjectManifest) error {
	file := ini.Empty()
	settings, err := file.NewSection(types.ManifestSectionSettings)
	if err != nil {
		return manifestEncodeError(err)
	}
	if _, err := settings.NewKey(types.ManifestKeyEntrypoint, manifest.Entrypoint); err != nil {
		return manifestEncodeError(err)
	}
	if _, err := settings.NewKey(types.ManifestKeyOutputDir, manifest.OutputDir); err != nil {
		return manifestEncodeError(err)
	}
	deps, err := file.NewSection(types.ManifestSectionDependencies)
	if err != nil {
		return manifestEncodeError(err)
	}
	names := make([]string, 0, len(manifest.Dependencies))
	for name := range manifest.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := deps.NewKey(name, manifest.Dependencies[name]); err != nil {
			return manifestEncodeError(err)
		}
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return manifestEncodeError(err)
	}
	if err := shared.WriteFileAtomic(ManifestPath(root), buf.Bytes(), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write manifest").
			WithCause(err)
	}
	return nil
}

func (a ManifestFileAdapter) SetDependency(root string, name string, version string) error {
	manifest, err := a.Load(root)
	if err != nil {
		return err
	}
	if manifest.Dependencies == nil {
		manifest.Dependencies = map[string]string{}
	}
	manifest.Dependencies[name] = version
	return a.Save(root, manifest)
}

func (a ManifestFileAdapter) RemoveDependency(root string, name string) error {
	manifest, err := a.Load(root)
	if err != nil {
		return err
	}
	if _, ok := manifest.Dependencies[name]; !ok {
		return nil
	}
	delete(manifest.Dependencies, name)
	return a.Save(root, manifest)
}

func manifestEncodeError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to encode manifest").
		WithCause(err)
}

var _ ports.ManifestPort = ManifestFileAdapter{}
