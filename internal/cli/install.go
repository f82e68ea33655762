package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vibranium/internal/app"
	"vibranium/internal/types"
)

type installOptions struct {
	Save        bool
	Pin         bool
	RegistryURL string
}

func newInstallCommand(root *RootConfig) *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   "install [package[==version]...]",
		Short: "Install packages, or every manifest dependency when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), cmd, root.Dir, args, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Save, "save", "s", false, "Record the packages as manifest dependencies")
	cmd.Flags().BoolVar(&opts.Pin, "pin-versions", false, "Record the requested version in the package directory instead of latest")
	cmd.Flags().StringVar(&opts.RegistryURL, "registry-url", "", "Package registry base URL")
	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, dir string, args []string, opts installOptions) error {
	cfg := appConfig()
	cfg.Registry.BaseURL = resolveString(cmd, opts.RegistryURL, "registry_url", "registry-url")
	cfg.PinVersions = resolveBool(cmd, opts.Pin, "pin_versions", "pin-versions")
	service := app.NewService(cfg)
	result, err := service.Install(ctx, app.InstallRequest{
		Root:     dir,
		Packages: args,
		Save:     opts.Save,
	})
	out := cmd.OutOrStdout()
	for _, pkg := range result.Report.Packages {
		fmt.Fprintf(out, "%s: %s\n", pkg.Outcome, pkg.Request)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "installed %d, already present %d\n",
		result.Report.Count(types.InstallOutcomeInstalled),
		result.Report.Count(types.InstallOutcomeAlreadyPresent))
	return nil
}

type removeOptions struct {
	Save bool
}

func newRemoveCommand(root *RootConfig) *cobra.Command {
	opts := removeOptions{}
	cmd := &cobra.Command{
		Use:   "remove package...",
		Short: "Remove installed packages",
		Args:  requirePackages,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), cmd, root.Dir, args, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Save, "save", "s", false, "Drop the packages from the manifest dependencies")
	return cmd
}

func runRemove(ctx context.Context, cmd *cobra.Command, dir string, args []string, opts removeOptions) error {
	service := newAppService()
	result, err := service.Remove(ctx, app.RemoveRequest{
		Root:     dir,
		Packages: args,
		Save:     opts.Save,
	})
	out := cmd.OutOrStdout()
	for _, pkg := range result.Report.Packages {
		fmt.Fprintf(out, "%s: %s\n", pkg.Outcome, pkg.Name)
	}
	return err
}
