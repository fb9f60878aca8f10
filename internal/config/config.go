package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	// DefaultProxyTarget is the backend origin used for /api/v1 when
	// API_PROXY_TARGET is not set.
	DefaultProxyTarget = "http://localhost:8000"
)

type Config struct {
	Env         string `toml:"env"`
	Addr        string `toml:"addr"`
	WebOrigin   string `toml:"web_origin"`
	APIBaseURL  string `toml:"api_base_url"`
	ProxyTarget string `toml:"api_proxy_target"`
	StaticDir   string `toml:"static_dir"`
}

// IsProduction reports whether the app runs in production mode. In
// production the frontend talks to its own origin and relies on the
// /api/v1 rewrite to reach the backend.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func Defaults() Config {
	return Config{
		Env:         EnvDevelopment,
		Addr:        ":8080",
		WebOrigin:   "http://localhost:3000",
		ProxyTarget: DefaultProxyTarget,
	}
}

// Load builds the config from .env, the optional CONFIG_FILE and the
// process environment. It never fails; an unreadable config file is logged
// and skipped.
func Load() Config {
	cfg, err := LoadFrom(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Printf("config: %v, falling back to environment", err)
		loadDotenv()
		return fromEnv(Defaults())
	}
	return cfg
}

// LoadFrom is Load with an explicit config file path. An empty path skips
// the file.
func LoadFrom(path string) (Config, error) {
	loadDotenv()

	cfg := Defaults()
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = merge(cfg, fileCfg)
	}
	return fromEnv(cfg), nil
}

// LoadFile decodes a TOML config file. Keys that are absent stay empty.
func LoadFile(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Printf("config: %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

func loadDotenv() {
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: load .env: %v", err)
	}
}

func fromEnv(base Config) Config {
	return Config{
		Env:         getenv("APP_ENV", base.Env),
		Addr:        getenv("APP_ADDR", base.Addr),
		WebOrigin:   getenv("WEB_ORIGIN", base.WebOrigin),
		APIBaseURL:  getenv("API_BASE_URL", base.APIBaseURL),
		ProxyTarget: getenv("API_PROXY_TARGET", base.ProxyTarget),
		StaticDir:   getenv("STATIC_DIR", base.StaticDir),
	}
}

func merge(base, over Config) Config {
	pick := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	return Config{
		Env:         pick(base.Env, over.Env),
		Addr:        pick(base.Addr, over.Addr),
		WebOrigin:   pick(base.WebOrigin, over.WebOrigin),
		APIBaseURL:  pick(base.APIBaseURL, over.APIBaseURL),
		ProxyTarget: pick(base.ProxyTarget, over.ProxyTarget),
		StaticDir:   pick(base.StaticDir, over.StaticDir),
	}
}

func getenv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
