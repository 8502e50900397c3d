package config

import (
	"github.com/spf13/viper"
)

type BoampConfig struct {
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
}

func (config BoampConfig) validate() error {
	return nil
}

func (config BoampConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("boamp.max_requests_per_second", "BOAMP_MAX_REQUESTS_PER_SECOND")
}
