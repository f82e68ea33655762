package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ToolError is a failure the user can act on. It wraps the errbuilder error
// that carries the status code, so errors.As still finds the builder.
type ToolError struct {
	Kind     ErrorKind
	Package  string
	Version  string
	Stage    Stage
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func NewNotInitializedError(root string) *ToolError {
	return &ToolError{
		Kind: ErrorKindNotInitialized,
		Err: errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s is not a valid vibranium project (missing %s)", root, ManifestFileName)),
	}
}

func NewNotAProjectError(root string) *ToolError {
	return &ToolError{
		Kind: ErrorKindNotAProject,
		Err: errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("this is not a valid vibranium project: %s", root)),
	}
}

func NewConfigError(key string) *ToolError {
	return &ToolError{
		Kind: ErrorKindConfig,
		Err: errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("config doesn't define '%s'", key)),
	}
}

func NewLedgerMissingError(dir string) *ToolError {
	return &ToolError{
		Kind: ErrorKindLedgerMissing,
		Err: errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("cannot find package directory %s; has the project been initialised?", dir)),
	}
}

func NewPackageMissingError(name string, version string) *ToolError {
	return &ToolError{
		Kind:    ErrorKindPackageMissing,
		Package: name,
		Version: version,
		Err: errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("package %q has gone missing on the registry", name)),
	}
}

func NewPackageNotFoundError(name string, version string) *ToolError {
	return &ToolError{
		Kind:    ErrorKindPackageNotFound,
		Package: name,
		Version: version,
		Err: errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("package \"%s==%s\" couldn't be found", name, version)),
	}
}

// NewNothingToLinkError reports a link stage with no object files.
func NewNothingToLinkError(outputDir string) *ToolError {
	return &ToolError{
		Kind:  ErrorKindStageFailed,
		Stage: StageLink,
		Err: errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("link failed: no object files in %s", outputDir)),
	}
}

// NewStageFailedError reports a stage whose tool exited non-zero. A nil
// result means the tool could not be run and cause says why.
func NewStageFailedError(stage Stage, target string, result *StageResult, cause error) *ToolError {
	msg := fmt.Sprintf("%s failed", stage)
	if target != "" {
		msg = fmt.Sprintf("%s failed for %s", stage, target)
	}
	exitCode := 0
	if result != nil {
		exitCode = result.ExitCode
		msg = fmt.Sprintf("%s (exit %d)", msg, result.ExitCode)
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			msg = fmt.Sprintf("%s: %s", msg, stderr)
		}
	}
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return &ToolError{
		Kind:     ErrorKindStageFailed,
		Stage:    stage,
		ExitCode: exitCode,
		Err:      builder,
	}
}
