package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portaria-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, config.EnvDevelopment, cfg.App.Env)
	assert.Equal(t, config.StorageFile, cfg.Storage.Driver)
	assert.Equal(t, 500*time.Millisecond, cfg.List.Debounce())
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
	assert.False(t, cfg.DevBypass.Enabled)
}

func TestFromViper_BypassRechazadoEnProduccion(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", config.EnvProduction)
	v.Set("DEV_BYPASS_ENABLED", true)
	v.Set("DEV_BYPASS_EMAIL", "dev@local")
	v.Set("DEV_BYPASS_PASSWORD", "dev")

	_, err := config.FromViper(v)
	assert.Error(t, err, "el bypass de desarrollo nunca debe habilitarse en producción")
}

func TestFromViper_BypassSinCredenciales(t *testing.T) {
	v := viper.New()
	v.Set("DEV_BYPASS_ENABLED", true)

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "sqlite")

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "portaria", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/portaria?sslmode=disable", c.ConnectionString())
}
