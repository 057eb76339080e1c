// Package config resolves where and how the bookstore ledger is persisted.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"bookstore-ledger/store"
)

// Environment variables consulted by Load.
const (
	EnvStore   = "BOOKSTORE_STORE"
	EnvPath    = "BOOKSTORE_PATH"
	EnvVerbose = "BOOKSTORE_VERBOSE"
)

// Config holds the resolved settings.
type Config struct {
	StoreKind string `yaml:"store"`
	StorePath string `yaml:"path"`
	Verbose   bool   `yaml:"verbose"`
}

// Default is used when neither a config file nor the environment says otherwise.
func Default() Config {
	return Config{StoreKind: store.KindJSON, StorePath: "bookstore.json"}
}

// Load starts from Default, applies the YAML file at file (if it exists; an
// empty name skips it), then a .env file in the working directory, then the
// process environment.
func Load(file string) (Config, error) {
	cfg := Default()

	if file != "" {
		data, err := os.ReadFile(file)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", file, err)
			}
		}
	}

	// A missing .env is normal; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if v := os.Getenv(EnvStore); v != "" {
		cfg.StoreKind = v
	}
	if v := os.Getenv(EnvPath); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		cfg.Verbose = b
	}

	return cfg, cfg.Validate()
}

// Validate reports settings that cannot be used to open a store.
func (c Config) Validate() error {
	if c.StoreKind != store.KindJSON && c.StoreKind != store.KindSQLite {
		return fmt.Errorf("store must be %q or %q, got %q", store.KindJSON, store.KindSQLite, c.StoreKind)
	}
	if c.StorePath == "" {
		return errors.New("store path is empty")
	}
	return nil
}
