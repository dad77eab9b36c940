// Package scanner recursively finds Solidity source files under a root
// directory, the way the teacher's own internal/scanner walks a directory
// tree for source files — narrowed here to one extension and one hard
// exclusion instead of a general gitignore matcher.
package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/0xkitsune/solstat/pkg/config"
)

// Scanner finds .sol files in a directory, honoring a configurable set of
// extra exclusion patterns on top of the built-in `.t.sol` test-file skip.
type Scanner struct {
	patterns []string
}

// New creates a Scanner from cfg's Exclude.Patterns. A nil cfg scans with
// no extra exclusions.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		return &Scanner{}
	}
	return &Scanner{patterns: cfg.Exclude.Patterns}
}

// isSolidityFile reports whether name is a `.sol` source file that is not a
// Foundry-style test file (`*.t.sol`).
func isSolidityFile(name string) bool {
	if !strings.HasSuffix(name, ".sol") {
		return false
	}
	return !strings.Contains(name, ".t.sol")
}

func (s *Scanner) isExcluded(relPath string) bool {
	base := filepath.Base(relPath)
	for _, pattern := range s.patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}

// ScanDir recursively walks root and returns every `.sol` file it should
// analyze, in directory-listing order. Paths stay within root: a symlink
// that resolves outside it is skipped rather than followed.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		relPath, _ := filepath.Rel(root, path)

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			if s.isExcluded(relPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.isExcluded(relPath) {
			return nil
		}
		if isSolidityFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files, walkErr
}

func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)
	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}
