package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/memtree/memtree/internal/util"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultMaxNameLen bounds a single node name. Matches the reference
	// FILENAME_LEN of 256.
	DefaultMaxNameLen = 256

	// DefaultPreviewLen is the number of content bytes shown by `stat`
	DefaultPreviewLen = 100

	// DefaultHomePath is empty: `~` stays a literal name until a home
	// anchor is configured
	DefaultHomePath = ""

	DefaultLogLvl = util.InfoLevel
)

// CLI verbosity values; mapped onto [util.LogLevel] by [Config.Merge]
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Config contains runtime configuration values for the in-memory tree and
// its shell.
type Config struct {
	MaxNameLen int           // Maximum length of a single node name (Default 256)
	PreviewLen int           // Content preview length for node properties (Default 100)
	HomePath   string        // Absolute path `~` expands to; empty leaves `~` literal (Default "")
	LogLvl     util.LogLevel // Resolved internal log level
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions. LogLvl here is the 1-5 CLI verbosity, not the internal level.
type ConfigOverride struct {
	MaxNameLen *int    `yaml:"max_name_len,omitempty" json:"max_name_len,omitempty"`
	PreviewLen *int    `yaml:"preview_len,omitempty" json:"preview_len,omitempty"`
	HomePath   *string `yaml:"home_path,omitempty" json:"home_path,omitempty"`
	LogLvl     *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// NewConfig creates a Config from defaults with any non-nil override fields
// applied on top. A nil override yields pure defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := &Config{
		MaxNameLen: DefaultMaxNameLen,
		PreviewLen: DefaultPreviewLen,
		HomePath:   DefaultHomePath,
		LogLvl:     DefaultLogLvl,
	}
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.MaxNameLen != nil {
		c.MaxNameLen = *override.MaxNameLen
	}
	if override.PreviewLen != nil {
		c.PreviewLen = *override.PreviewLen
	}
	if override.HomePath != nil {
		c.HomePath = *override.HomePath
	}
	if override.LogLvl != nil {
		c.LogLvl = verboseToLevel(*override.LogLvl)
	}
}

// verboseToLevel clamps a 1-5 CLI verbosity and maps it to the internal
// log level ordering (higher verbosity = lower level threshold)
func verboseToLevel(verbose int) util.LogLevel {
	if verbose < ErrorVerbose {
		verbose = ErrorVerbose
	}
	if verbose > TraceVerbose {
		verbose = TraceVerbose
	}
	lvls := [5]util.LogLevel{
		util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel,
	}
	return lvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
