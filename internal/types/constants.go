package types

const (
	ManifestFileName = "vibranium.config"
	LedgerDirName    = ".installed_packages"
	LedgerFileName   = "package.directory"
	LockFileName     = ".lock"

	SourceExtension   = ".wacc"
	AssemblyExtension = ".s"
	ObjectExtension   = ".o"

	DefaultEntrypoint = "main" + SourceExtension
	DefaultOutputDir  = "out"
	ExecutableName    = "main"

	// VersionLatest is both the default requested version and the version
	// recorded in the ledger unless version pinning is enabled.
	VersionLatest = "latest"

	// StubProgram is the smallest valid program, written as the entrypoint
	// of a freshly initialised project.
	StubProgram = "begin\nskip\nend"
)

// Stage scripts looked up in the toolchain home.
const (
	DefaultTranslateScript = "compile.sh"
	DefaultAssembleScript  = "assemble.sh"
	DefaultLinkScript      = "link.sh"
)

// Registry response bodies that signal a failed lookup.
const (
	RegistrySentinelMissing  = "missing"
	RegistrySentinelNotFound = "not found"
)

const (
	ManifestSectionSettings     = "SETTINGS"
	ManifestSectionDependencies = "DEPENDENCIES"
	ManifestKeyEntrypoint       = "entrypoint"
	ManifestKeyOutputDir        = "output_dir"
	LedgerKeyVersion            = "version"
	LedgerKeyPath               = "path"
)
