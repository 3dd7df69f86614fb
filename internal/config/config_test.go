package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"avgprice/internal/provider/remote"
	"avgprice/internal/provider/sqlite"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	require.Equal(t, Default(), cfg)
	require.Equal(t, sqlite.DefaultLocation, cfg.Location)
	require.Equal(t, remote.DefaultEndpoint, cfg.Remote.Endpoint)
	require.Equal(t, "memory", cfg.Cache.Backend)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `{
		"location": ":memory:",
		"remote": {"endpoint": "http://localhost:8080/api/prices", "strict_prices": true},
		"cache": {"backend": "redis", "redis_addr": "redis:6379", "redis_db": 2},
		"log": {"level": "debug", "pretty": true}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, sqlite.Memory, cfg.Location)
	require.Equal(t, "http://localhost:8080/api/prices", cfg.Remote.Endpoint)
	require.True(t, cfg.Remote.StrictPrices)
	require.Equal(t, 10, cfg.Remote.TimeoutSec) // untouched keys keep defaults
	require.Equal(t, "redis", cfg.Cache.Backend)
	require.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	require.Equal(t, 2, cfg.Cache.RedisDB)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Log.Pretty)
	require.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"location": "from-file.db", "remote": {"timeout_sec": 3}}`)

	t.Setenv("AVGPRICE_LOCATION", "from-env.db")
	t.Setenv("AVGPRICE_REMOTE_TIMEOUT_SEC", "7")
	t.Setenv("AVGPRICE_REMOTE_STRICT_PRICES", "true")
	t.Setenv("AVGPRICE_SERVER_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "from-env.db", cfg.Location)
	require.Equal(t, 7, cfg.Remote.TimeoutSec)
	require.True(t, cfg.Remote.StrictPrices)
	require.Equal(t, "9090", cfg.Server.Port)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"location": `)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse config")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown backend", `{"cache": {"backend": "memcached"}}`, `unknown cache.backend "memcached"`},
		{"redis without addr", `{"cache": {"backend": "redis", "redis_addr": ""}}`, "redis_addr is required"},
		{"empty location", `{"location": "  "}`, "location is empty"},
		{"zero timeout", `{"remote": {"timeout_sec": 0}}`, "timeout_sec must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
