package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for patternlens.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Detector threshold overrides
	Thresholds ThresholdConfig `koanf:"thresholds"`

	// File exclusion tokens
	Exclude ExcludeConfig `koanf:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls how the repository analysis runs.
type AnalysisConfig struct {
	Workers     int  `koanf:"workers"`      // 0 means 2x CPU count
	MaxInsights int  `koanf:"max_insights"` // insights feeding the recommendations summary
	SkipHidden  bool `koanf:"skip_hidden"`  // skip dot-directories during the walk
}

// ThresholdConfig overrides detector thresholds from the knowledge base.
// Zero values mean "use the knowledge-base default".
type ThresholdConfig struct {
	BuilderParameters   int `koanf:"builder_parameters"`
	StrategyChainLength int `koanf:"strategy_chain_length"`
	FactoryTypeChecks   int `koanf:"factory_type_checks"`
	FactoryReturnCalls  int `koanf:"factory_return_calls"`
}

// ExcludeConfig defines path exclusion tokens. A path containing any token
// as a substring is skipped.
type ExcludeConfig struct {
	Tokens []string `koanf:"tokens"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, markdown
	Color  bool   `koanf:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Workers:     0,
			MaxInsights: 5,
			SkipHidden:  true,
		},
		Exclude: ExcludeConfig{
			Tokens: []string{
				"__pycache__",
				".git",
				".venv",
				"venv",
				"env",
				"node_modules",
				".pytest_cache",
				".mypy_cache",
				"dist",
				"build",
				".tox",
			},
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file. Exclusion tokens named in the file
// extend the default list rather than replacing it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()
	defaults := cfg.Exclude.Tokens

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Exclude.Tokens = mergeTokens(defaults, cfg.Exclude.Tokens)
	return cfg, nil
}

// mergeTokens appends extra tokens to the defaults, dropping empties and
// duplicates while preserving order.
func mergeTokens(defaults, extra []string) []string {
	seen := make(map[string]struct{}, len(defaults)+len(extra))
	out := make([]string, 0, len(defaults)+len(extra))
	for _, group := range [][]string{defaults, extra} {
		for _, token := range group {
			if token == "" {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return out
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"patternlens.toml",
		"patternlens.yaml",
		"patternlens.yml",
		"patternlens.json",
		".patternlens.toml",
		".patternlens.yaml",
		".patternlens.yml",
		".patternlens.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			cfg, err := Load(name)
			if err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis. Tokens
// match as plain substrings of the path, not globs.
func (c *Config) ShouldExclude(path string) bool {
	for _, token := range c.Exclude.Tokens {
		if token != "" && strings.Contains(path, token) {
			return true
		}
	}
	return false
}
