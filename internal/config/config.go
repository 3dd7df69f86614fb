package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"avgprice/internal/provider/remote"
	"avgprice/internal/provider/sqlite"
)

// EnvPrefix prefixes every environment override, e.g. AVGPRICE_REMOTE_ENDPOINT.
const EnvPrefix = "AVGPRICE"

type Remote struct {
	Endpoint     string `mapstructure:"endpoint"`
	TimeoutSec   int    `mapstructure:"timeout_sec"`
	StrictPrices bool   `mapstructure:"strict_prices"`
}

type Cache struct {
	// Backend is "memory" or "redis".
	Backend       string `mapstructure:"backend"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Server struct {
	Port string `mapstructure:"port"`
}

type Config struct {
	Location string `mapstructure:"location"`
	Remote   Remote `mapstructure:"remote"`
	Cache    Cache  `mapstructure:"cache"`
	Log      Log    `mapstructure:"log"`
	Server   Server `mapstructure:"server"`
}

func Default() Config {
	return Config{
		Location: sqlite.DefaultLocation,
		Remote: Remote{
			Endpoint:   remote.DefaultEndpoint,
			TimeoutSec: 10,
		},
		Cache: Cache{
			Backend:   "memory",
			RedisAddr: "localhost:6379",
		},
		Log:    Log{Level: "info"},
		Server: Server{Port: "8080"},
	}
}

// Load reads an optional JSON config from path on top of the defaults, then applies
// AVGPRICE_* environment overrides. With an empty path, ./config.json is used if present.
// A missing file is not an error.
func Load(path string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("location", def.Location)
	v.SetDefault("remote.endpoint", def.Remote.Endpoint)
	v.SetDefault("remote.timeout_sec", def.Remote.TimeoutSec)
	v.SetDefault("remote.strict_prices", def.Remote.StrictPrices)
	v.SetDefault("cache.backend", def.Cache.Backend)
	v.SetDefault("cache.redis_addr", def.Cache.RedisAddr)
	v.SetDefault("cache.redis_password", def.Cache.RedisPassword)
	v.SetDefault("cache.redis_db", def.Cache.RedisDB)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.pretty", def.Log.Pretty)
	v.SetDefault("server.port", def.Server.Port)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return def, fmt.Errorf("parse config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return def, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return def, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []string
	if strings.TrimSpace(c.Location) == "" {
		problems = append(problems, "location is empty")
	}
	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			problems = append(problems, "cache.redis_addr is required for the redis backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown cache.backend %q", c.Cache.Backend))
	}
	if c.Remote.TimeoutSec <= 0 {
		problems = append(problems, "remote.timeout_sec must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
