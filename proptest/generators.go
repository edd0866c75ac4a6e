package proptest

import (
	"fmt"
	"time"

	"pgregory.net/rapid"

	"takeout/internal/catalog"
)

const (
	minArchives = 1
	maxArchives = 4

	minYearMedia   = 0
	maxYearMedia   = 8
	maxAlbumsPer   = 2
	maxAlbumMedia  = 3
	maxAlbumRefs   = 6
	minCollectYear = 2015
	maxCollectYear = 2023
)

var (
	albumNameGen = rapid.StringMatching(`[A-Z][a-z]{2,8}`)
	baseStemGen  = rapid.StringMatching(`(IMG|VID|DSC)_[0-9]{3,5}`)
	mediaExtGen  = rapid.SampledFrom([]string{".jpg", ".jpeg", ".png", ".mp4", ".mov", ".heic"})
	yearGen      = rapid.IntRange(minCollectYear, maxCollectYear)
)

// entry is one file to place inside a generated zip.
type entry struct {
	Name string
	Body string
}

func sidecarBody(ts int64) string {
	return fmt.Sprintf(`{"photoTakenTime":{"timestamp":"%d"}}`, ts)
}

// yearTimestamp draws an epoch second inside the given calendar year.
func yearTimestamp(t *rapid.T, year int) int64 {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	end := time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC).Unix() - 1
	return rapid.Int64Range(start, end).Draw(t, "ts")
}

// genBasenames draws the shared pool of media basenames. Album sidecars and
// year-folder media draw from the same pool so references can resolve.
func genBasenames(t *rapid.T) []string {
	stems := rapid.SliceOfNDistinct(baseStemGen, 1, 12, rapid.ID[string]).Draw(t, "stems")
	names := make([]string, len(stems))
	for i, stem := range stems {
		names[i] = stem + mediaExtGen.Draw(t, "ext")
	}
	return names
}

// genArchiveEntries draws the contents of one archive: year-folder media
// (with optional sidecars) plus album folders holding direct media, album
// sidecars, and sometimes an info file.
func genArchiveEntries(t *rapid.T, basenames, albumPool []string) []entry {
	var entries []entry
	seen := make(map[string]bool)
	add := func(e entry) {
		if !seen[e.Name] {
			seen[e.Name] = true
			entries = append(entries, e)
		}
	}

	nYear := rapid.IntRange(minYearMedia, maxYearMedia).Draw(t, "nYearMedia")
	for range nYear {
		base := rapid.SampledFrom(basenames).Draw(t, "base")
		year := yearGen.Draw(t, "year")
		path := fmt.Sprintf("%sPhotos from %d/%s", catalog.AlbumRoot, year, base)
		add(entry{Name: path, Body: "media:" + base})
		if rapid.Bool().Draw(t, "hasSidecar") {
			add(entry{Name: path + ".json", Body: sidecarBody(yearTimestamp(t, year))})
		}
	}

	nAlbums := rapid.IntRange(0, maxAlbumsPer).Draw(t, "nAlbums")
	for range nAlbums {
		album := rapid.SampledFrom(albumPool).Draw(t, "album")
		folder := catalog.AlbumFolder(album)

		if rapid.Bool().Draw(t, "hasInfo") {
			add(entry{Name: folder + catalog.AlbumInfoName, Body: fmt.Sprintf(`{"title":%q}`, album)})
		}

		nDirect := rapid.IntRange(0, maxAlbumMedia).Draw(t, "nDirect")
		for range nDirect {
			base := rapid.SampledFrom(basenames).Draw(t, "directBase")
			add(entry{Name: folder + base, Body: "media:" + base})
		}

		nRefs := rapid.IntRange(0, maxAlbumRefs).Draw(t, "nRefs")
		for range nRefs {
			base := rapid.SampledFrom(basenames).Draw(t, "refBase")
			ts := yearTimestamp(t, yearGen.Draw(t, "refYear"))
			add(entry{Name: folder + base + catalog.SupplementalSuffix, Body: sidecarBody(ts)})
		}
	}

	return entries
}
