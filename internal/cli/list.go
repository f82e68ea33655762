package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vibranium/internal/app"
)

type listOptions struct {
	Format string
}

func newListCommand(root *RootConfig) *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed packages and declared dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, root.Dir, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format (text|yaml)")
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, dir string, opts listOptions) error {
	if opts.Format != "text" && opts.Format != "yaml" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported list format: " + opts.Format)
	}
	service := newAppService()
	result, err := service.List(ctx, app.ListRequest{Root: dir})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.Format == "yaml" {
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode package list").
				WithCause(err)
		}
		return encoder.Close()
	}
	fmt.Fprintln(out, "installed packages:")
	for _, record := range result.Packages {
		fmt.Fprintf(out, "- %s %s (%s)\n", record.Name, record.Version, record.StoragePath)
	}
	fmt.Fprintln(out, "declared dependencies:")
	for _, dep := range result.Dependencies {
		fmt.Fprintf(out, "- %s\n", dep)
	}
	return nil
}
