package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type APIConfig struct {
	Address        string `mapstructure:"address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	PageSize       int    `mapstructure:"page_size"`
}

func (config APIConfig) validate() error {

	if config.Address == "" {
		return fmt.Errorf("missing variable: api address")
	}

	if config.PageSize <= 0 || config.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100")
	}

	return nil
}

func (config APIConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("api.address", "API_ADDRESS"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("api.metrics_address", "METRICS_ADDRESS"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
