package app

import (
	"vibranium/internal/adapters"
	"vibranium/internal/ports"
	"vibranium/internal/types"
)

// Config carries the settings resolved by the CLI layer.
type Config struct {
	Registry    adapters.RegistryConfig
	PinVersions bool
	StageShell  string
	// Stages names the toolchain scripts, relative to the toolchain home.
	Stages types.StageTools
}

func DefaultConfig() Config {
	return Config{
		StageShell: adapters.DefaultStageShell,
		Stages: types.StageTools{
			Translate: types.DefaultTranslateScript,
			Assemble:  types.DefaultAssembleScript,
			Link:      types.DefaultLinkScript,
		},
	}
}

type Service struct {
	Manifest    ports.ManifestPort
	Ledger      ports.LedgerPort
	Store       ports.PackageStorePort
	Lock        ports.ProjectLockPort
	Registry    ports.RegistryPort
	Scaffold    ports.ScaffoldPort
	Sources     ports.SourcePort
	Runner      ports.StageRunner
	Stages      types.StageTools
	PinVersions bool
}

func NewService(cfg Config) Service {
	manifest := adapters.NewManifestFileAdapter()
	stages := cfg.Stages
	defaults := DefaultConfig().Stages
	if stages.Translate == "" {
		stages.Translate = defaults.Translate
	}
	if stages.Assemble == "" {
		stages.Assemble = defaults.Assemble
	}
	if stages.Link == "" {
		stages.Link = defaults.Link
	}
	return Service{
		Manifest:    manifest,
		Ledger:      adapters.NewLedgerFileAdapter(),
		Store:       adapters.NewPackageStoreAdapter(),
		Lock:        adapters.NewFlockProjectLock(),
		Registry:    adapters.NewRegistryHTTPAdapter(cfg.Registry),
		Scaffold:    adapters.NewScaffoldAdapter(manifest),
		Sources:     adapters.NewSourceDiscoveryAdapter(),
		Runner:      adapters.NewExecStageRunner(cfg.StageShell),
		Stages:      stages,
		PinVersions: cfg.PinVersions,
	}
}
