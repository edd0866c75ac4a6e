package main

import (
	"os"

	"github.com/schollz/progressbar/v3"

	"takeout/internal/batch"
	"takeout/internal/scan"
)

// scanProgress returns a progressbar-backed sink for archive scans, or nil
// when progress display is disabled.
func (g *Globals) scanProgress(label string) scan.ProgressFunc {
	if g.NoProgress {
		return nil
	}

	var bar *progressbar.ProgressBar
	return func(completed, total int) {
		if bar == nil {
			bar = newBar(label, total)
		}
		_ = bar.Set(completed)
		if completed == total {
			_ = bar.Finish()
		}
	}
}

// batchProgress returns a per-file sink for export and upload runs. The bar
// restarts for each album.
func (g *Globals) batchProgress(label string) batch.ProgressFunc {
	if g.NoProgress {
		return nil
	}

	var bar *progressbar.ProgressBar
	var barAlbum string
	return func(current, total int, album string) {
		if bar == nil || album != barAlbum {
			name := label
			if album != "" {
				name = label + " " + album
			}
			bar = newBar(name, total)
			barAlbum = album
		}
		_ = bar.Set(current)
		if current == total {
			_ = bar.Finish()
		}
	}
}

func newBar(label string, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(20),
	)
}
