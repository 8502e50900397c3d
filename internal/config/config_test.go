package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	t.Setenv("MODE", "test")
	t.Setenv("AI_KEY", "overrideKey")
	t.Setenv("AI_MODEL", "super_duper_model")
	t.Setenv("DB_CONNECTION_STRING", "newConnectionString")
	t.Setenv("API_ADDRESS", ":9999")
	t.Setenv("SWEEP_INTERVAL", "3h")
	t.Setenv("SCORE_THRESHOLD", "77")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Get()

	assert.Equal(t, "overrideKey", cfg.AI.Key)
	assert.Equal(t, "super_duper_model", cfg.AI.Model)
	assert.Equal(t, "newConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, ":9999", cfg.API.Address)
	assert.Equal(t, "3h0m0s", cfg.Watcher.SweepInterval.String())
	assert.Equal(t, 77, cfg.Watcher.ScoreThreshold)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
}

func Test_Config_FileValuesAreLoaded(t *testing.T) {

	t.Setenv("MODE", "test")
	t.Setenv("AI_KEY", "anyKey")
	t.Setenv("DB_CONNECTION_STRING", "file::memory:")
	os.Unsetenv("API_ADDRESS")
	os.Unsetenv("SCORE_THRESHOLD")

	cfg := Get()

	assert.NotEmpty(t, cfg.API.Address)
	assert.Greater(t, cfg.API.PageSize, 0)
	assert.NotEmpty(t, cfg.Watcher.ReminderCron)
}
