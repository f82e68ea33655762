package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vibranium/internal/app"
)

func newInitCommand(root *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialise a project in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd, root.Dir)
		},
	}
}

func runInit(ctx context.Context, cmd *cobra.Command, dir string) error {
	service := newAppService()
	result, err := service.Init(ctx, app.InitRequest{Root: dir})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, path := range result.Created {
		fmt.Fprintf(out, "created: %s\n", path)
	}
	fmt.Fprintf(out, "initialised project: %s\n", result.Root)
	return nil
}
