package adapters

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"vibranium/internal/ports"
	"vibranium/internal/shared"
	"vibranium/internal/types"
)

// DefaultStageShell interprets the toolchain scripts.
const DefaultStageShell = "sh"

// ExecStageRunner runs stage tools as child processes. When Shell is set
// the tool is treated as a script and passed to that interpreter.
type ExecStageRunner struct {
	Shell string
}

func NewExecStageRunner(shell string) ExecStageRunner {
	return ExecStageRunner{Shell: strings.TrimSpace(shell)}
}

func (r ExecStageRunner) Run(ctx context.Context, dir string, tool string, args []string) (types.StageResult, error) {
	if strings.TrimSpace(tool) == "" {
		return types.StageResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("stage tool is empty")
	}
	name := tool
	argv := args
	if r.Shell != "" {
		name = r.Shell
		argv = append([]string{tool}, args...)
	}
	cmd := exec.CommandContext(ctx, name, argv...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	log.Debug().Str("tool", name).Strs("args", argv).Msg("running stage tool")

	err := cmd.Run()
	result := types.StageResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	return result, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to run stage tool " + name).
		WithCause(shared.CommandError(stderr.Bytes(), err))
}

var _ ports.StageRunner = ExecStageRunner{}
