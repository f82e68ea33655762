package types

type Stage string

const (
	StageTranslate Stage = "translate"
	StageAssemble  Stage = "assemble"
	StageLink      Stage = "link"
)

type InstallOutcome string

const (
	InstallOutcomeInstalled      InstallOutcome = "installed"
	InstallOutcomeAlreadyPresent InstallOutcome = "already-present"
)

type RemoveOutcome string

const (
	RemoveOutcomeRemoved      RemoveOutcome = "removed"
	RemoveOutcomeNotInstalled RemoveOutcome = "not-installed"
)

type ErrorKind string

const (
	ErrorKindNotInitialized  ErrorKind = "not_initialized"
	ErrorKindNotAProject     ErrorKind = "not_a_project"
	ErrorKindConfig          ErrorKind = "config_error"
	ErrorKindPackageMissing  ErrorKind = "package_missing"
	ErrorKindPackageNotFound ErrorKind = "package_not_found"
	ErrorKindStageFailed     ErrorKind = "stage_failed"
	ErrorKindLedgerMissing   ErrorKind = "ledger_missing"
)
