package domain

import "fmt"

// Defaults applied when .iceready.yaml is absent or leaves fields unset.
const (
	DefaultModel       = "mistral-large2"
	DefaultWorkers     = 4
	DefaultTopBlockers = 3
)

// ConnectionConfig holds the Snowflake session parameters. The password is
// usually supplied via SNOWFLAKE_PASSWORD rather than the file.
type ConnectionConfig struct {
	Account   string `yaml:"account"`
	User      string `yaml:"user"`
	Password  string `yaml:"password,omitempty"`
	Role      string `yaml:"role,omitempty"`
	Warehouse string `yaml:"warehouse,omitempty"`
	Database  string `yaml:"database,omitempty"`
}

// Config is the tool configuration read from .iceready.yaml.
type Config struct {
	Connection     ConnectionConfig `yaml:"connection"`
	Model          string           `yaml:"model,omitempty"`
	Workers        int              `yaml:"workers,omitempty"`
	TopBlockers    int              `yaml:"top_blockers,omitempty"`
	ExcludeSchemas []string         `yaml:"exclude_schemas,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		Workers:     DefaultWorkers,
		TopBlockers: DefaultTopBlockers,
	}
}

// Validate catches typos in the user's raw input before defaults are merged.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.TopBlockers < 0 {
		return fmt.Errorf("top_blockers must be >= 0, got %d", c.TopBlockers)
	}
	return nil
}

// IsExcludedSchema reports whether a schema is excluded from the audit scope.
// INFORMATION_SCHEMA is always excluded.
func (c Config) IsExcludedSchema(schema string) bool {
	if schema == "INFORMATION_SCHEMA" {
		return true
	}
	for _, s := range c.ExcludeSchemas {
		if s == schema {
			return true
		}
	}
	return false
}
