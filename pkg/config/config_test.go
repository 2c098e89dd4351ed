package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.Analysis.Workers != 0 {
		t.Errorf("Analysis.Workers = %d, want 0", cfg.Analysis.Workers)
	}
	if cfg.Analysis.MaxInsights != 5 {
		t.Errorf("Analysis.MaxInsights = %d, want 5", cfg.Analysis.MaxInsights)
	}

	if len(cfg.Exclude.Tokens) == 0 {
		t.Error("Exclude.Tokens should have default values")
	}

	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %s, want text", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color should be true by default")
	}
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "patternlens.toml")

	content := `
[analysis]
workers = 4

[thresholds]
builder_parameters = 6
strategy_chain_length = 4

[exclude]
tokens = ["generated", "__pycache__"]

[output]
format = "json"
color = false
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Workers != 4 {
		t.Errorf("Analysis.Workers = %d, want 4", cfg.Analysis.Workers)
	}
	if cfg.Thresholds.BuilderParameters != 6 {
		t.Errorf("Thresholds.BuilderParameters = %d, want 6", cfg.Thresholds.BuilderParameters)
	}
	if cfg.Thresholds.StrategyChainLength != 4 {
		t.Errorf("Thresholds.StrategyChainLength = %d, want 4", cfg.Thresholds.StrategyChainLength)
	}
	if !cfg.ShouldExclude("src/generated/pb.py") {
		t.Error("caller token should exclude matching paths")
	}
	if !cfg.ShouldExclude("repo/.git/hooks/pre-commit.py") {
		t.Error("default tokens should survive caller tokens")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want json", cfg.Output.Format)
	}
	if cfg.Output.Color {
		t.Error("Output.Color should be false")
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "patternlens.yaml")

	content := `
analysis:
  workers: 8
thresholds:
  factory_return_calls: 3
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Analysis.Workers != 8 {
		t.Errorf("Analysis.Workers = %d, want 8", cfg.Analysis.Workers)
	}
	if cfg.Thresholds.FactoryReturnCalls != 3 {
		t.Errorf("Thresholds.FactoryReturnCalls = %d, want 3", cfg.Thresholds.FactoryReturnCalls)
	}
}

func TestLoadAppendsCallerTokens(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "patternlens.toml")

	content := `
[exclude]
tokens = ["generated", "__pycache__"]
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Every default token must still match after loading caller tokens.
	for _, tok := range DefaultConfig().Exclude.Tokens {
		found := false
		for _, got := range cfg.Exclude.Tokens {
			if got == tok {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("default token %q lost after loading caller tokens", tok)
		}
	}
	if !cfg.ShouldExclude("src/generated/pb.py") {
		t.Error("caller token should be appended")
	}

	// A repeated default must not produce a duplicate entry.
	seen := make(map[string]int)
	for _, tok := range cfg.Exclude.Tokens {
		seen[tok]++
	}
	if seen["__pycache__"] != 1 {
		t.Errorf("__pycache__ appears %d times, want 1", seen["__pycache__"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() on missing file should fail")
	}
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"src/app/__pycache__/models.cpython-312.pyc", true},
		{"project/.venv/lib/site.py", true},
		{"node_modules/pkg/index.py", true},
		{"dist/bundle.py", true},
		{"src/app/models.py", false},
		{"analyzers/patterns.py", false},
	}
	for _, tt := range tests {
		if got := cfg.ShouldExclude(tt.path); got != tt.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestShouldExcludeCustomTokens(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude.Tokens = append(cfg.Exclude.Tokens, "legacy")

	if !cfg.ShouldExclude("src/legacy/old.py") {
		t.Error("custom token should exclude matching paths")
	}
	if cfg.ShouldExclude("src/current/new.py") {
		t.Error("non-matching path should not be excluded")
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	// No config file in the working directory of the test binary.
	cfg := LoadOrDefault()
	if cfg == nil {
		t.Fatal("LoadOrDefault() returned nil")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %s, want text default", cfg.Output.Format)
	}
}
