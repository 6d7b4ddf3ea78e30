// Package config loads typed application configuration from the environment
// (with optional .env files via godotenv) and exposes it as an installable
// inject.Module, so application objects declare *Config like any other
// dependency.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/km-arc/go-inject"
)

// Config is the central typed configuration struct.
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
}

type HTTPConfig struct {
	Host string
	Port string
}

// Load reads the given .env files (default ".env", non-fatal if absent) and
// populates a Config from environment variables.
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "go-inject"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
		},
		HTTP: HTTPConfig{
			Host: env("HTTP_HOST", ""),
			Port: env("HTTP_PORT", "8000"),
		},
	}
}

// Module returns an inject.Module that binds *Config as a singleton, loaded
// on first resolution.
//
//	in, err := inject.New(config.Module(), AppModule{})
//	cfg, err := inject.Get[*config.Config](in)
func Module(envFiles ...string) inject.Module {
	return inject.ModuleFunc(func(b *inject.Binder) {
		inject.Bind[*Config](b).ToProvider(func(*inject.Injector) (*Config, error) {
			return Load(envFiles...), nil
		}).In(inject.SingletonScope)
	})
}

// BindEnv binds the current value of each environment variable as a named
// string instance, for objects that want one raw setting instead of the
// whole Config.
//
//	config.BindEnv(b, "APP_KEY")
//	key, err := inject.GetNamed[string](in, "APP_KEY")
func BindEnv(b *inject.Binder, keys ...string) {
	for _, k := range keys {
		inject.BindNamed[string](b, k).ToInstance(os.Getenv(k))
	}
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
