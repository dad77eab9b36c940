// Package progress wraps a terminal progress bar for the analyzer's
// per-file loop.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar tracking file-by-file analysis progress.
type Tracker struct {
	bar *progressbar.ProgressBar
}

// New creates a progress bar with the given total file count.
func New(total int) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar}
}

// Tick advances the bar by one file. Safe for concurrent use.
func (t *Tracker) Tick() {
	t.bar.Add(1)
}

// Finish clears the bar.
func (t *Tracker) Finish() {
	t.bar.Finish()
	t.bar.Clear()
}
