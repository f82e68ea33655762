package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"vibranium/internal/ports"
	"vibranium/internal/types"
)

// BuildPipeline translates, assembles and links a project into a single
// executable. Every stage aborts on the first failing invocation, and
// assembly files produced by the run are removed on every exit path.
type BuildPipeline struct {
	Tools    types.StageTools
	Runner   ports.StageRunner
	Sources  ports.SourcePort
	Manifest ports.ManifestPort
	// Jobs bounds concurrent translations. Values below 2 translate
	// sequentially.
	Jobs int
}

func NewBuildPipeline(tools types.StageTools, runner ports.StageRunner, sources ports.SourcePort, manifest ports.ManifestPort, jobs int) BuildPipeline {
	return BuildPipeline{
		Tools:    tools,
		Runner:   runner,
		Sources:  sources,
		Manifest: manifest,
		Jobs:     jobs,
	}
}

func (p BuildPipeline) Run(ctx context.Context, root string) (types.BuildResult, error) {
	result := types.BuildResult{}
	abs, err := filepath.Abs(root)
	if err != nil {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to resolve project root").
			WithCause(err)
	}
	assert.NotEmpty(ctx, abs, "project root must be resolved")

	outDir, err := p.validate(abs)
	if err != nil {
		return result, err
	}
	result.OutputDir = outDir
	if err := prepareOutputDir(outDir); err != nil {
		return result, err
	}

	includeDirs, err := p.Sources.ListIncludeDirs(abs)
	if err != nil {
		return result, err
	}
	sources, err := p.Sources.ListSourceFiles(abs)
	if err != nil {
		return result, err
	}
	result.Sources = sources

	before, err := assemblyFiles(abs)
	if err != nil {
		return result, err
	}
	tracked := &trackedOutputs{}
	defer func() {
		p.cleanup(abs, before, tracked)
	}()

	if err := p.translate(ctx, abs, sources, includeDirs, tracked); err != nil {
		return result, err
	}
	created, err := p.createdAssembly(abs, before, tracked)
	if err != nil {
		return result, err
	}
	if err := p.assemble(ctx, abs, outDir, created); err != nil {
		return result, err
	}
	// The linker must not see intermediate assembly in the project root.
	p.cleanup(abs, before, tracked)
	objects, executable, err := p.link(ctx, abs, outDir)
	if err != nil {
		return result, err
	}
	result.Objects = objects
	result.Executable = executable
	log.Info().Str("executable", executable).Msg("compile succeeded")
	return result, nil
}

func (p BuildPipeline) validate(root string) (string, error) {
	if !p.Manifest.Exists(root) {
		return "", types.NewNotAProjectError(root)
	}
	manifest, err := p.Manifest.Load(root)
	if err != nil {
		var toolErr *types.ToolError
		if errors.As(err, &toolErr) && toolErr.Kind == types.ErrorKindNotInitialized {
			return "", types.NewNotAProjectError(root)
		}
		return "", err
	}
	if strings.TrimSpace(manifest.OutputDir) == "" {
		return "", types.NewConfigError(types.ManifestKeyOutputDir)
	}
	outDir := manifest.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}
	outDir = filepath.Clean(outDir)
	rel, err := filepath.Rel(root, outDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output_dir must be a subdirectory of the project: " + manifest.OutputDir)
	}
	return outDir, nil
}

func prepareOutputDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to clear output directory").
			WithCause(err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return nil
}

func (p BuildPipeline) translate(ctx context.Context, root string, sources []string, includeDirs []string, tracked *trackedOutputs) error {
	if p.Jobs < 2 {
		for _, source := range sources {
			if err := p.translateOne(ctx, root, source, includeDirs); err != nil {
				return err
			}
		}
		return nil
	}

	// Concurrent translators share the working directory, so a directory
	// diff cannot attribute outputs; each invocation records its own.
	tracked.enable()
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(p.Jobs)
	for _, source := range sources {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tracked.add(assemblyPathFor(root, source))
			return p.translateOne(gctx, root, source, includeDirs)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (p BuildPipeline) translateOne(ctx context.Context, root string, source string, includeDirs []string) error {
	log.Info().Str("file", relPath(root, source)).Msg("compiling")
	args := append([]string{source}, includeDirs...)
	return p.runStage(ctx, root, types.StageTranslate, source, args)
}

func (p BuildPipeline) assemble(ctx context.Context, root string, outDir string, assembly []string) error {
	for _, file := range assembly {
		log.Info().Str("file", relPath(root, file)).Msg("assembling")
		object := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(file), types.AssemblyExtension)+types.ObjectExtension)
		if err := p.runStage(ctx, root, types.StageAssemble, file, []string{file, object}); err != nil {
			return err
		}
	}
	return nil
}

func (p BuildPipeline) link(ctx context.Context, root string, outDir string) ([]string, string, error) {
	objects, err := filesWithExtension(outDir, types.ObjectExtension)
	if err != nil {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list object files").
			WithCause(err)
	}
	if len(objects) == 0 {
		return nil, "", types.NewNothingToLinkError(outDir)
	}
	executable := filepath.Join(outDir, types.ExecutableName)
	log.Info().Int("objects", len(objects)).Msg("linking objects")
	args := append([]string{executable}, objects...)
	if err := p.runStage(ctx, root, types.StageLink, executable, args); err != nil {
		return nil, "", err
	}
	return objects, executable, nil
}

func (p BuildPipeline) runStage(ctx context.Context, root string, stage types.Stage, target string, args []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := p.Runner.Run(ctx, root, p.Tools.For(stage), args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return types.NewStageFailedError(stage, relPath(root, target), nil, err)
	}
	if !result.Succeeded() {
		log.Debug().Str("stage", string(stage)).Str("stdout", result.Stdout).Msg("stage output")
		return types.NewStageFailedError(stage, relPath(root, target), &result, nil)
	}
	return nil
}

func (p BuildPipeline) createdAssembly(root string, before map[string]struct{}, tracked *trackedOutputs) ([]string, error) {
	if tracked.enabled() {
		seen := map[string]struct{}{}
		var created []string
		for _, path := range tracked.paths() {
			if _, existed := before[path]; existed {
				continue
			}
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			if _, err := os.Stat(path); err == nil {
				created = append(created, path)
			}
		}
		sort.Strings(created)
		return created, nil
	}
	after, err := assemblyFiles(root)
	if err != nil {
		return nil, err
	}
	var created []string
	for path := range after {
		if _, existed := before[path]; !existed {
			created = append(created, path)
		}
	}
	sort.Strings(created)
	return created, nil
}

func (p BuildPipeline) cleanup(root string, before map[string]struct{}, tracked *trackedOutputs) {
	created, err := p.createdAssembly(root, before, tracked)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list assembly files for cleanup")
		return
	}
	for _, path := range created {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", path).Msg("failed to remove assembly file")
		}
	}
}

func assemblyFiles(root string) (map[string]struct{}, error) {
	matches, err := filesWithExtension(root, types.AssemblyExtension)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list assembly files").
			WithCause(err)
	}
	set := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		set[match] = struct{}{}
	}
	return set, nil
}

// filesWithExtension lists regular entries of dir ending in ext, sorted.
// Matching is by suffix so glob metacharacters in dir are taken literally.
func filesWithExtension(dir string, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// assemblyPathFor is where the translator writes the assembly for source.
func assemblyPathFor(root string, source string) string {
	stem := strings.TrimSuffix(filepath.Base(source), types.SourceExtension)
	return filepath.Join(root, stem+types.AssemblyExtension)
}

func relPath(root string, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

type trackedOutputs struct {
	mu     sync.Mutex
	on     bool
	output []string
}

func (t *trackedOutputs) enable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.on = true
}

func (t *trackedOutputs) enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}

func (t *trackedOutputs) add(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.output = append(t.output, path)
}

func (t *trackedOutputs) paths() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.output...)
}
