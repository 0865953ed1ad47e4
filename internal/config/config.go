// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-checker/internal/fetch"
	"github.com/jonathan/resume-checker/internal/types"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_CHECKER_WEIGHTS_SKILLS.
const EnvPrefix = "RESUME_CHECKER"

// Config represents the CLI configuration that can be loaded from a YAML or JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	Weights     types.Weights `mapstructure:"weights"`      // Score weights, must sum to 1
	JobsFile    string        `mapstructure:"jobs_file"`    // Path to a JSON job catalog
	DatabaseURL string        `mapstructure:"database_url"` // PostgreSQL connection URL
	Verbose     bool          `mapstructure:"verbose"`      // Print detailed progress information
	S3          fetch.Config  `mapstructure:"s3"`           // Object storage for s3:// inputs
}

// Default returns the configuration used when no file or environment overrides are present.
func Default() Config {
	return Config{
		Weights: types.DefaultWeights(),
		S3: fetch.Config{
			Region:         "auto",
			MaxObjectBytes: fetch.DefaultMaxObjectBytes,
		},
	}
}

// LoadConfig loads configuration from a YAML or JSON file, applying
// RESUME_CHECKER_* environment overrides on top.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return decode(v)
}

// LoadEnv returns the defaults with RESUME_CHECKER_* environment overrides applied.
func LoadEnv() (*Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	def := Default()
	v.SetDefault("weights.skills", def.Weights.Skills)
	v.SetDefault("weights.experience", def.Weights.Experience)
	v.SetDefault("weights.education", def.Weights.Education)
	v.SetDefault("jobs_file", "")
	v.SetDefault("database_url", "")
	v.SetDefault("verbose", false)
	v.SetDefault("s3.account_id", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", def.S3.Region)
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.use_path_style", false)
	v.SetDefault("s3.max_object_bytes", def.S3.MaxObjectBytes)

	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("config error: invalid 'weights': %w", err)
	}

	if c.S3.MaxObjectBytes < 0 {
		return fmt.Errorf("config error: 's3.max_object_bytes' must be non-negative")
	}
	if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
		return fmt.Errorf("config error: 's3.access_key' and 's3.secret_key' must be set together")
	}

	if c.JobsFile != "" {
		if _, err := os.Stat(c.JobsFile); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config error: jobs file not found: %s", c.JobsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Weights == (types.Weights{}) {
		result.Weights = defaults.Weights
	}

	// String fields: use default if empty
	if result.JobsFile == "" {
		result.JobsFile = defaults.JobsFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.S3.AccountID == "" {
		result.S3.AccountID = defaults.S3.AccountID
	}
	if result.S3.Endpoint == "" {
		result.S3.Endpoint = defaults.S3.Endpoint
	}
	if result.S3.Region == "" {
		result.S3.Region = defaults.S3.Region
	}
	if result.S3.AccessKey == "" && result.S3.SecretKey == "" {
		result.S3.AccessKey = defaults.S3.AccessKey
		result.S3.SecretKey = defaults.S3.SecretKey
	}
	if result.S3.Bucket == "" {
		result.S3.Bucket = defaults.S3.Bucket
	}

	// Int fields: use default if zero
	if result.S3.MaxObjectBytes == 0 {
		result.S3.MaxObjectBytes = defaults.S3.MaxObjectBytes
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
