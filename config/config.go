// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "DRIFTCALC"

const (
	EnvStorageKey = "DRIFTCALC_STORAGE_KEY"
	EnvShareURL   = "DRIFTCALC_SHARE_URL"
	EnvExportDir  = "DRIFTCALC_EXPORT_DIR"
	EnvLogLevel   = "DRIFTCALC_LOG_LEVEL"
	EnvLogFormat  = "DRIFTCALC_LOG_FORMAT"
)

type Config struct {
	StorageKey string `envconfig:"STORAGE_KEY" default:"cost-estimator-prices-v3" validate:"required"`
	ShareURL   string `envconfig:"SHARE_URL" default:"http://127.0.0.1:8090/" validate:"required,url"`
	ExportDir  string `envconfig:"EXPORT_DIR" default:"." validate:"required"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"console" validate:"oneof=json console"`
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set in the environment win.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is ignored.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
