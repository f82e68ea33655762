package types

type PackageInstall struct {
	Request PackageRequest
	Outcome InstallOutcome
	Record  InstalledPackageRecord
}

type InstallReport struct {
	Packages []PackageInstall
}

// Count returns how many packages ended with the given outcome.
func (r InstallReport) Count(outcome InstallOutcome) int {
	n := 0
	for _, pkg := range r.Packages {
		if pkg.Outcome == outcome {
			n++
		}
	}
	return n
}

type PackageRemoval struct {
	Name    string
	Outcome RemoveOutcome
}

type RemoveReport struct {
	Packages []PackageRemoval
}

type BuildResult struct {
	OutputDir  string
	Executable string
	Sources    []string
	Objects    []string
}
