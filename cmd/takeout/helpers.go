package main

import (
	"fmt"

	"takeout/cmd/takeout/render"
	"takeout/internal/archive"
	"takeout/internal/batch"
	"takeout/internal/catalog"
)

// archiveByIndex resolves a 1-based archive index from the zips listing.
func archiveByIndex(cat *catalog.Catalog, index int) (archive.Handle, error) {
	if index < 1 || index > len(cat.Archives) {
		return archive.Handle{}, fmt.Errorf("archive index %d out of range (1-%d)", index, len(cat.Archives))
	}
	return cat.Archives[index-1], nil
}

// statsView shapes batch stats for rendering.
func statsView(title string, stats batch.Stats) render.StatsView {
	view := render.StatsView{
		Title:       title,
		OperationID: stats.OperationID,
		Albums:      stats.Albums,
		Files:       stats.Files,
		Skipped:     stats.Skipped,
		Errors:      stats.Errors,
		Bytes:       stats.Bytes,
	}
	for _, sample := range stats.ErrorSamples {
		location := sample.File
		if location == "" {
			location = sample.Destination
		}
		view.Samples = append(view.Samples, render.ErrorLine{Location: location, Cause: sample.Cause})
	}
	return view
}
