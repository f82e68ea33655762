package types

// ProjectManifest is the declared configuration of a project.
type ProjectManifest struct {
	Entrypoint   string
	OutputDir    string
	Dependencies map[string]string
}

// DefaultManifest returns the manifest written by init.
func DefaultManifest() ProjectManifest {
	return ProjectManifest{
		Entrypoint:   DefaultEntrypoint,
		OutputDir:    DefaultOutputDir,
		Dependencies: map[string]string{},
	}
}

type InstalledPackageRecord struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	StoragePath string `yaml:"path"`
}

// Ledger maps package names to their installed record. Keys are unique by
// construction, so the latest install of a name always wins.
type Ledger map[string]InstalledPackageRecord

type PackageRequest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

func (r PackageRequest) String() string {
	return r.Name + "==" + r.Version
}
