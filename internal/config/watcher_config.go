package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type WatcherConfig struct {
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`
	ScoreThreshold int           `mapstructure:"score_threshold"`
	ReminderCron   string        `mapstructure:"reminder_cron"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

func (config WatcherConfig) validate() error {
	var missing []string

	if config.SweepInterval <= 0 {
		missing = append(missing, "sweep_interval")
	}
	if config.ReminderCron == "" {
		missing = append(missing, "reminder_cron")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required variables: %v", missing)
	}

	return nil
}

func (config WatcherConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("watcher.sweep_interval", "SWEEP_INTERVAL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("watcher.score_threshold", "SCORE_THRESHOLD"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
