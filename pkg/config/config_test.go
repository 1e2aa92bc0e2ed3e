package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-analytics/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("DATA_SOURCE", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DataSourcePostgres, cfg.App.DataSource)
	assert.Equal(t, 200, cfg.Analytics.PageSize)
	assert.Equal(t, 4, cfg.Analytics.BatchConcurrency)
	assert.Equal(t, "es-CO", cfg.Analytics.CurrencyLocale)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 90, cfg.HTTP.RequestTimeoutSeconds)
}

func TestLoad_FuenteAPI(t *testing.T) {
	t.Setenv("DATA_SOURCE", "API")
	t.Setenv("BACKEND_API_URL", "https://backend.local/api")
	t.Setenv("BACKEND_API_RPS", "2.5")
	t.Setenv("PAGINATION_PAGE_SIZE", "50")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DataSourceAPI, cfg.App.DataSource)
	assert.Equal(t, "https://backend.local/api", cfg.Backend.BaseURL)
	assert.InDelta(t, 2.5, cfg.Backend.RequestsPerSecond, 1e-9)
	assert.Equal(t, 50, cfg.Analytics.PageSize)
}

func TestLoad_Invalida(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"api sin URL", map[string]string{"DATA_SOURCE": "api", "BACKEND_API_URL": ""}},
		{"fuente desconocida", map[string]string{"DATA_SOURCE": "mysql"}},
		{"página cero", map[string]string{"DATA_SOURCE": "postgres", "PAGINATION_PAGE_SIZE": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/inv?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())
}

func TestLoad_PoolDB(t *testing.T) {
	t.Setenv("DB_STATEMENT_TIMEOUT_SECONDS", "15")
	t.Setenv("DB_FORCE_IPV4", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.DB.StatementTimeoutSeconds)
	assert.False(t, cfg.DB.ForceIPv4)
}
