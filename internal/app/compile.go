package app

import (
	"context"
	"path/filepath"
	"strings"

	"vibranium/internal/core"
	"vibranium/internal/types"
)

// ToolchainHomeKey names the setting that locates the stage scripts.
const ToolchainHomeKey = "WACC_HOME"

func (s Service) Compile(ctx context.Context, req CompileRequest) (CompileResult, error) {
	root, err := projectRoot(req.Root)
	if err != nil {
		return CompileResult{}, err
	}
	home := strings.TrimSpace(req.ToolchainHome)
	if home == "" {
		return CompileResult{}, types.NewConfigError(ToolchainHomeKey)
	}
	pipeline := core.NewBuildPipeline(s.stageTools(home), s.Runner, s.Sources, s.Manifest, req.Jobs)
	result, err := pipeline.Run(ctx, root)
	return CompileResult{Build: result}, err
}

// stageTools resolves the stage scripts against the toolchain home.
// Absolute script paths are used as given.
func (s Service) stageTools(home string) types.StageTools {
	resolve := func(script string) string {
		if filepath.IsAbs(script) {
			return script
		}
		return filepath.Join(home, script)
	}
	return types.StageTools{
		Translate: resolve(s.Stages.Translate),
		Assemble:  resolve(s.Stages.Assemble),
		Link:      resolve(s.Stages.Link),
	}
}
