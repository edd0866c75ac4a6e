package catalog

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"

	"takeout/internal/archive"
)

// Contents is the per-kind breakdown of one archive's entries.
type Contents struct {
	Archive archive.Handle
	Total   int
	Images  []string
	Videos  []string
	JSON    []string
	Other   []string
	Samples []string
}

// ZipContents categorizes one archive's cached entry listing.
func (c *Catalog) ZipContents(h archive.Handle) Contents {
	names := c.Entries(h)
	contents := Contents{Archive: h, Total: len(names)}
	for _, name := range names {
		switch archive.Classify(name) {
		case archive.KindImage:
			contents.Images = append(contents.Images, name)
		case archive.KindVideo:
			contents.Videos = append(contents.Videos, name)
		case archive.KindJSON:
			contents.JSON = append(contents.JSON, name)
		default:
			contents.Other = append(contents.Other, name)
		}
	}
	if len(names) > 10 {
		contents.Samples = names[:10]
	} else {
		contents.Samples = names
	}
	return contents
}

// AlbumStats summarizes one album, separating media physically present in
// the album folder from media only referenced via sidecars.
type AlbumStats struct {
	Name             string
	Images           int
	Videos           int
	JSON             int
	Other            int
	ImagesDirect     int
	VideosDirect     int
	ImagesReferenced int
	VideosReferenced int
}

// AlbumsOverview computes stats for every album, sorted by name. Referenced
// counts are filled in only for albums that look metadata-only: fewer media
// files than half their JSON count, the shape a stub album has.
func (c *Catalog) AlbumsOverview() []AlbumStats {
	overview := make([]AlbumStats, 0, len(c.ByAlbum))
	for _, name := range c.AlbumNames() {
		album := c.ByAlbum[name]
		stats := AlbumStats{Name: name}
		for _, ref := range album.Files {
			switch archive.Classify(ref.Path) {
			case archive.KindImage:
				stats.Images++
			case archive.KindVideo:
				stats.Videos++
			case archive.KindJSON:
				stats.JSON++
			default:
				stats.Other++
			}
		}
		stats.ImagesDirect = stats.Images
		stats.VideosDirect = stats.Videos

		if stats.JSON > 0 && stats.Images+stats.Videos < stats.JSON/2 {
			for photo := range album.Supplemental {
				switch archive.Classify(photo) {
				case archive.KindImage:
					stats.ImagesReferenced++
				case archive.KindVideo:
					stats.VideosReferenced++
				}
			}
			stats.Images = stats.ImagesDirect + stats.ImagesReferenced
			stats.Videos = stats.VideosDirect + stats.VideosReferenced
		}
		overview = append(overview, stats)
	}
	return overview
}

// SearchResult holds one archive's matches for a pattern search.
type SearchResult struct {
	Archive archive.Handle
	Matches []string
}

// Search returns entries matching re, grouped by archive in archive order.
// Archives without matches are omitted.
func (c *Catalog) Search(re *regexp.Regexp) []SearchResult {
	var results []SearchResult
	for _, h := range c.Archives {
		var matches []string
		for _, name := range c.Entries(h) {
			if re.MatchString(name) {
				matches = append(matches, name)
			}
		}
		if len(matches) > 0 {
			results = append(results, SearchResult{Archive: h, Matches: matches})
		}
	}
	return results
}

// DateRange is the capture-time spread across the whole collection.
type DateRange struct {
	TotalPhotos int
	Earliest    time.Time
	Latest      time.Time
	Errors      int
}

// AnalyzeDates reads every JSON entry's sidecar timestamp and reports the
// earliest and latest capture times. Unreadable or timestamp-less documents
// count as errors and are skipped.
func (c *Catalog) AnalyzeDates(reader archive.Reader, progress func(done, total int)) DateRange {
	var timestamps []int64
	result := DateRange{}

	for i, h := range c.Archives {
		for _, name := range c.Entries(h) {
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			data, err := reader.ReadFile(h, name)
			if err != nil {
				result.Errors++
				continue
			}
			ts, ok := ParseTimestamp(data)
			if !ok {
				result.Errors++
				continue
			}
			timestamps = append(timestamps, ts)
		}
		if progress != nil {
			progress(i+1, len(c.Archives))
		}
	}

	if len(timestamps) == 0 {
		return result
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })
	result.TotalPhotos = len(timestamps)
	result.Earliest = time.Unix(timestamps[0], 0).UTC()
	result.Latest = time.Unix(timestamps[len(timestamps)-1], 0).UTC()
	return result
}

// MetadataDoc is one decoded JSON document tagged with its source.
type MetadataDoc struct {
	SourceZip   string
	ArchivePath string
	Data        map[string]any
}

// ExtractMetadata decodes every JSON entry whose path matches re. Corrupt
// documents and unreadable archives are skipped.
func (c *Catalog) ExtractMetadata(reader archive.Reader, re *regexp.Regexp) []MetadataDoc {
	var docs []MetadataDoc
	for _, h := range c.Archives {
		for _, name := range c.Entries(h) {
			if !strings.HasSuffix(name, ".json") || !re.MatchString(name) {
				continue
			}
			data, err := reader.ReadFile(h, name)
			if err != nil {
				continue
			}
			var doc map[string]any
			if err := json.Unmarshal(data, &doc); err != nil {
				continue
			}
			docs = append(docs, MetadataDoc{SourceZip: h.Name, ArchivePath: name, Data: doc})
		}
	}
	return docs
}
