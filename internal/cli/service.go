package cli

import (
	"github.com/spf13/viper"

	"vibranium/internal/adapters"
	"vibranium/internal/app"
	"vibranium/internal/types"
)

func newAppService() app.Service {
	return app.NewService(appConfig())
}

// appConfig reads the service configuration from viper. Commands with
// their own overriding flags adjust the result before building a service.
func appConfig() app.Config {
	return app.Config{
		Registry: adapters.RegistryConfig{
			BaseURL:    viper.GetString("registry_url"),
			TimeoutSec: viper.GetInt("registry_timeout"),
		},
		PinVersions: viper.GetBool("pin_versions"),
		StageShell:  viper.GetString("stage_shell"),
		Stages: types.StageTools{
			Translate: viper.GetString("stages.translate"),
			Assemble:  viper.GetString("stages.assemble"),
			Link:      viper.GetString("stages.link"),
		},
	}
}
