// Package scanner finds analyzable Python source files under a root
// directory, honoring the configured exclusion tokens.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/panbanda/patternlens/pkg/config"
	"github.com/panbanda/patternlens/pkg/parser"
)

// Scanner finds source files in a directory.
type Scanner struct {
	config *config.Config
}

// NewScanner creates a new file scanner.
func NewScanner(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// ScanDir recursively scans a directory for Python source files. The
// returned paths are sorted so repeated scans of the same tree produce
// identical ordering. Unreadable subtrees are skipped, not fatal.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	files := make([]string, 0, 256)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if path != root {
				if s.config.Analysis.SkipHidden && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				if s.config.ShouldExclude(path) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if s.config.ShouldExclude(path) {
			return nil
		}
		if parser.DetectLanguage(path) == parser.LangPython {
			files = append(files, path)
		}

		return nil
	})

	sort.Strings(files)
	return files, walkErr
}

// ScanFile checks if a single file should be analyzed.
func (s *Scanner) ScanFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if s.config.ShouldExclude(path) {
		return false, nil
	}
	return parser.DetectLanguage(path) == parser.LangPython, nil
}
