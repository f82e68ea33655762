package app

import "vibranium/internal/types"

type InitRequest struct {
	Root string
}

type InitResult struct {
	Root     string
	Created  []string
	Warnings []string
}

type InstallRequest struct {
	Root     string
	Packages []string
	Save     bool
}

type InstallResult struct {
	Report types.InstallReport
}

type RemoveRequest struct {
	Root     string
	Packages []string
	Save     bool
}

type RemoveResult struct {
	Report types.RemoveReport
}

type CompileRequest struct {
	Root string
	// ToolchainHome is the directory holding the stage scripts.
	ToolchainHome string
	Jobs          int
}

type CompileResult struct {
	Build types.BuildResult
}

type ListRequest struct {
	Root string
}

type ListResult struct {
	Packages     []types.InstalledPackageRecord `yaml:"packages"`
	Dependencies []types.PackageRequest          `yaml:"dependencies"`
}
