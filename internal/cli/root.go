package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vibranium/internal/adapters"
	"vibranium/internal/app"
	"vibranium/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "VIBRANIUM"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	Dir        string
}

func Execute() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		stop()
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "vibranium",
		Short:         "Package manager and build driver for WACC projects",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVarP(&cfg.Dir, "dir", "C", ".", "Project directory")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.AddCommand(newInitCommand(&cfg))
	cmd.AddCommand(newInstallCommand(&cfg))
	cmd.AddCommand(newRemoveCommand(&cfg))
	cmd.AddCommand(newCompileCommand(&cfg))
	cmd.AddCommand(newListCommand(&cfg))
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setConfigDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("vibranium")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/vibranium")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setConfigDefaults() {
	defaults := app.DefaultConfig()
	_ = viper.BindEnv("wacc_home", envPrefix+"_WACC_HOME", app.ToolchainHomeKey)
	viper.SetDefault("stage_shell", adapters.DefaultStageShell)
	viper.SetDefault("stages.translate", defaults.Stages.Translate)
	viper.SetDefault("stages.assemble", defaults.Stages.Assemble)
	viper.SetDefault("stages.link", defaults.Stages.Link)
	viper.SetDefault("pin_versions", false)
	viper.SetDefault("jobs", 1)
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// exitCodeForError maps failures to process exit codes. Tool errors the
// user can act on exit 1; malformed command-line input exits 2.
func exitCodeForError(err error) int {
	var toolErr *types.ToolError
	if errors.As(err, &toolErr) {
		return 1
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && errbuilder.CodeOf(builder) == errbuilder.CodeInvalidArgument {
		return 2
	}
	return 1
}

// errorMessage renders err for the terminal. Internal failures keep their
// cause, such as a refused registry connection.
func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) || strings.TrimSpace(builder.Msg) == "" {
		return err.Error()
	}
	if builder.Code == errbuilder.CodeInternal && builder.Cause != nil {
		if cause := builder.Cause.Error(); cause != "" && !strings.Contains(builder.Msg, cause) {
			return builder.Msg + ": " + cause
		}
	}
	return builder.Msg
}

func usageError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(err.Error())
}
