package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults applied when nothing is configured", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "charging-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, 8080, cfg.App.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, int64(10<<20), cfg.HTTP.MaxBodySize)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.False(t, cfg.Telemetry.Enabled)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins, "no cross-origin access by default")
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("CHARGING_APP_PORT", "9999")
		t.Setenv("CHARGING_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9999, cfg.App.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("port below allowed range is rejected", func(t *testing.T) {
		t.Setenv("CHARGING_APP_PORT", "80")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Port")
	})

	t.Run("invalid log level is rejected", func(t *testing.T) {
		t.Setenv("CHARGING_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestValidateProduction(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		return cfg
	}

	t.Run("valid production config passes", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("wildcard CORS origin rejected", func(t *testing.T) {
		cfg := base()
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})

	t.Run("open swagger rejected", func(t *testing.T) {
		cfg := base()
		cfg.Swagger.Enabled = true
		assert.Error(t, cfg.validate())

		cfg.Swagger.AllowedIPs = []string{"10.0.0.0/8"}
		assert.NoError(t, cfg.validate())
	})

	t.Run("insecure telemetry rejected", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Insecure = true
		assert.Error(t, cfg.validate())
	})

	t.Run("sampling ratio out of range rejected", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})
}

func TestAddr(t *testing.T) {
	app := AppConfig{Port: 8080}
	assert.Equal(t, ":8080", app.Addr())
}
