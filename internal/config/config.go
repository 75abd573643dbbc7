// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultRootAllow lists entry names tolerated at the root of the corpora
// tree without being audited as corpora.
var DefaultRootAllow = []string{"README.md"}

// DefaultSizeWorryBytes is the total-usage threshold above which the log
// warns that disk space is running low (~1.4 TB).
const DefaultSizeWorryBytes int64 = 1_400_000_000_000

// Config represents the audit configuration that can be loaded from a JSON or
// YAML file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	Root        string `json:"root,omitempty" yaml:"root,omitempty"`                 // Directory containing all corpus directories
	GroupConfig string `json:"group_config,omitempty" yaml:"group_config,omitempty"` // Path to the group policy file
	OutFile     string `json:"out_file,omitempty" yaml:"out_file,omitempty"`         // Markdown report destination ("" = stdout)
	LogFile     string `json:"log_file,omitempty" yaml:"log_file,omitempty"`         // Problem log destination
	DocDir      string `json:"doc_dir,omitempty" yaml:"doc_dir,omitempty"`           // Doc tree destination (destroyed and rebuilt)

	// Policy
	OkOwners  []string `json:"ok_owners,omitempty" yaml:"ok_owners,omitempty"`   // Always-compliant owners
	RootAllow []string `json:"root_allow,omitempty" yaml:"root_allow,omitempty"` // Entry names ignored at the root

	// Behavior
	FixPerms       bool  `json:"fix_perms,omitempty" yaml:"fix_perms,omitempty"`               // Correct "other"-bit violations in place
	Verbose        bool  `json:"verbose,omitempty" yaml:"verbose,omitempty"`                   // Print detailed per-corpus output
	Concurrency    int   `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"gte=0"` // Corpus worker pool size (0 = sequential)
	SizeWorryBytes int64 `json:"size_worry_bytes,omitempty" yaml:"size_worry_bytes,omitempty" validate:"gte=0"`
}

// Load loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: required fields are not checked here since those are handled after
// merging with CLI flags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Root != "" {
		if _, err := os.Stat(c.Root); os.IsNotExist(err) {
			return fmt.Errorf("config error: root directory not found: %s", c.Root)
		}
	}
	if c.GroupConfig != "" {
		if _, err := os.Stat(c.GroupConfig); os.IsNotExist(err) {
			return fmt.Errorf("config error: group config file not found: %s", c.GroupConfig)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Root == "" {
		result.Root = defaults.Root
	}
	if result.GroupConfig == "" {
		result.GroupConfig = defaults.GroupConfig
	}
	if result.OutFile == "" {
		result.OutFile = defaults.OutFile
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}
	if result.DocDir == "" {
		result.DocDir = defaults.DocDir
	}
	if len(result.OkOwners) == 0 {
		result.OkOwners = defaults.OkOwners
	}
	if len(result.RootAllow) == 0 {
		result.RootAllow = defaults.RootAllow
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.SizeWorryBytes == 0 {
		result.SizeWorryBytes = defaults.SizeWorryBytes
	}
	if defaults.FixPerms {
		result.FixPerms = true
	}
	if defaults.Verbose {
		result.Verbose = true
	}

	return result
}
