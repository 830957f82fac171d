package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abdidvp/iceready/internal/domain"
)

const fileName = ".iceready.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .iceready.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .iceready.yaml from dir. Returns DefaultConfig if the file does
// not exist. SNOWFLAKE_PASSWORD always wins over the file so credentials can
// stay out of it.
func (l *YAMLLoader) Load(dir string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fall through to env override
	case err != nil:
		return domain.Config{}, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
		}
		if err := cfg.Validate(); err != nil {
			return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
		}
		cfg = applyDefaults(cfg)
	}

	if pw := os.Getenv("SNOWFLAKE_PASSWORD"); pw != "" {
		cfg.Connection.Password = pw
	}

	return cfg, nil
}

// applyDefaults fills unset fields so a partial file behaves like a full one.
func applyDefaults(cfg domain.Config) domain.Config {
	if cfg.Model == "" {
		cfg.Model = domain.DefaultModel
	}
	if cfg.Workers == 0 {
		cfg.Workers = domain.DefaultWorkers
	}
	if cfg.TopBlockers == 0 {
		cfg.TopBlockers = domain.DefaultTopBlockers
	}
	return cfg
}
