// Package analyzer is solstat's driver: it enumerates the .sol files under
// a directory, parses each, and runs the active detectors over every
// parsed tree, concurrently across files.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/0xkitsune/solstat/internal/progress"
	"github.com/0xkitsune/solstat/internal/scanner"
	"github.com/0xkitsune/solstat/internal/solidity"
	"github.com/0xkitsune/solstat/pkg/astutil"
	"github.com/0xkitsune/solstat/pkg/config"
	"github.com/0xkitsune/solstat/pkg/detect"
)

// FileLines is one detector's findings within a single file: its basename
// and the sorted, deduplicated lines that triggered it.
type FileLines struct {
	File  string
	Lines []int
}

// Result maps each detector that produced findings to the files it fired
// in, in the order those files were scanned.
type Result map[detect.ID][]FileLines

// FileWarning is a per-file read or parse failure that didn't abort the run.
type FileWarning struct {
	Path string
	Err  error
}

func (w FileWarning) Error() string { return fmt.Sprintf("%s: %v", w.Path, w.Err) }

// Options configures a Run.
type Options struct {
	Config      *config.Config
	Detectors   []detect.ID
	ShowProgress bool
}

type fileResult struct {
	basename string
	findings map[detect.ID][]int // locs collected before dedupe/sort
}

// Run scans root for .sol files and runs opts.Detectors over every one it
// can parse. Files are read and parsed concurrently; findings are reduced
// back into directory-listing order so repeated runs are deterministic.
func Run(ctx context.Context, root string, opts Options) (Result, []FileWarning, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	files, err := scanner.New(cfg).ScanDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("analyzer: scanning %s: %w", root, err)
	}

	results := make([]*fileResult, len(files))
	var warnMu sync.Mutex
	var warnings []FileWarning

	var tracker *progress.Tracker
	if opts.ShowProgress && len(files) > 8 {
		tracker = progress.New(len(files))
		defer tracker.Finish()
	}

	maxWorkers := runtime.NumCPU() * 2
	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		p.Go(func(ctx context.Context) error {
			defer func() {
				if tracker != nil {
					tracker.Tick()
				}
			}()

			src, err := os.ReadFile(path)
			if err != nil {
				warnMu.Lock()
				warnings = append(warnings, FileWarning{Path: path, Err: err})
				warnMu.Unlock()
				return nil
			}

			su, _, err := solidity.Parse(i, string(src))
			if err != nil {
				warnMu.Lock()
				warnings = append(warnings, FileWarning{Path: path, Err: err})
				warnMu.Unlock()
				return nil
			}

			fr := &fileResult{basename: filepath.Base(path), findings: make(map[detect.ID][]int)}
			for _, id := range opts.Detectors {
				locs := detect.Get(id).Func(su)
				if len(locs) == 0 {
					continue
				}
				lineSet := make(map[int]struct{}, len(locs))
				for loc := range locs {
					lineSet[astutil.LineOf(loc.Start, string(src))] = struct{}{}
				}
				lines := make([]int, 0, len(lineSet))
				for line := range lineSet {
					lines = append(lines, line)
				}
				sort.Ints(lines)
				fr.findings[id] = lines
			}
			results[i] = fr
			return nil
		})
	}
	_ = p.Wait()

	out := make(Result)
	for _, fr := range results {
		if fr == nil {
			continue
		}
		for id, lines := range fr.findings {
			out[id] = append(out[id], FileLines{File: fr.basename, Lines: lines})
		}
	}
	return out, warnings, nil
}
