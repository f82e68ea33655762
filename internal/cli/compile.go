package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vibranium/internal/app"
)

type compileOptions struct {
	Jobs int
}

func newCompileCommand(root *RootConfig) *cobra.Command {
	opts := compileOptions{}
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Translate, assemble and link the project into an executable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd.Context(), cmd, root.Dir, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 1, "Concurrent translations")
	return cmd
}

func runCompile(ctx context.Context, cmd *cobra.Command, dir string, opts compileOptions) error {
	service := newAppService()
	result, err := service.Compile(ctx, app.CompileRequest{
		Root:          dir,
		ToolchainHome: viper.GetString("wacc_home"),
		Jobs:          resolveInt(cmd, opts.Jobs, "jobs", "jobs"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", result.Build.Executable)
	return nil
}
