package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings that come from the environment. Command line
// flags override them.
type Config struct {
	DBFile    string `env:"REGISTRAR_DB"`
	ReportDir string `env:"REGISTRAR_REPORT_DIR" envDefault:"."`
	ProjectID string `env:"REGISTRAR_GCP_PROJECT"`
	DatasetID string `env:"REGISTRAR_BQ_DATASET" envDefault:"registrar"`
	TopicID   string `env:"REGISTRAR_PUBSUB_TOPIC" envDefault:"roster-synced"`
	Verbose   bool   `env:"REGISTRAR_VERBOSE"`
}

// Load reads the configuration from environment variables. The report
// database defaults to the user's cache directory.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBFile == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return cfg, fmt.Errorf("locate cache dir: %w", err)
		}
		cfg.DBFile = filepath.Join(cacheDir, "registrar", "registrar.db")
	}
	return cfg, nil
}
