// Package resolve disambiguates which physical media file an album's
// metadata stub actually points to. Albums frequently contain only sidecar
// JSON files whose photos physically live in another folder or archive;
// the resolver matches them back through the catalog's basename index.
package resolve

import (
	"sort"
	"time"

	"takeout/internal/archive"
	"takeout/internal/catalog"
)

// timestampTolerance is how far a candidate's own sidecar timestamp may sit
// from the album sidecar's reference timestamp and still count as a match.
const timestampTolerance = 2 // seconds

// Resolution is the outcome for one album: its raw metadata entries and the
// physical location chosen for every resolvable referenced photo.
type Resolution struct {
	Metadata []archive.Ref
	Photos   []archive.Ref
}

// Resolver runs reference resolution against an immutable catalog snapshot.
type Resolver struct {
	cat    *catalog.Catalog
	reader archive.Reader
}

func New(cat *catalog.Catalog, reader archive.Reader) *Resolver {
	return &Resolver{cat: cat, reader: reader}
}

// Resolve locates the physical media behind every sidecar reference in the
// album. Unknown albums yield an empty resolution, not an error. Photos come
// back in sidecar-basename order, so output is deterministic for a given
// catalog.
//
// Per basename the rules run in strict order, stopping at the first that
// yields exactly one answer: a single candidate is taken as-is; otherwise
// candidates whose own sibling JSON timestamp sits within the tolerance of
// the reference timestamp are preferred; then candidates whose path contains
// the reference year as a standalone segment; finally the lexicographically
// smallest path. Ties inside a rule also break lexicographically. A basename
// with no candidates at all is skipped.
//
// Resolution is local per basename: two albums claiming the same file both
// get it, and no exclusivity is enforced.
func (r *Resolver) Resolve(albumName string) Resolution {
	album := r.cat.Album(albumName)
	if album == nil {
		return Resolution{}
	}

	res := Resolution{Metadata: album.Files}

	basenames := make([]string, 0, len(album.Supplemental))
	for name := range album.Supplemental {
		basenames = append(basenames, name)
	}
	sort.Strings(basenames)

	for _, photo := range basenames {
		candidates := r.cat.MediaByBasename[photo]
		if len(candidates) == 0 {
			continue
		}
		if len(candidates) == 1 {
			res.Photos = append(res.Photos, candidates[0])
			continue
		}
		res.Photos = append(res.Photos, r.pick(album.Supplemental[photo], candidates))
	}
	return res
}

// pick disambiguates between multiple candidates for one basename.
func (r *Resolver) pick(sidecar archive.Ref, candidates []archive.Ref) archive.Ref {
	refTS, haveRef := r.readTimestamp(sidecar.Archive, sidecar.Path)

	if haveRef {
		var matches []archive.Ref
		for _, cand := range candidates {
			ts, ok := r.readTimestamp(cand.Archive, cand.Path+".json")
			if ok && absDiff(ts, refTS) <= timestampTolerance {
				matches = append(matches, cand)
			}
		}
		if len(matches) > 0 {
			return smallestPath(matches)
		}

		year := time.Unix(refTS, 0).UTC().Format("2006")
		matches = matches[:0]
		for _, cand := range candidates {
			if hasSegment(cand.Path, year) {
				matches = append(matches, cand)
			}
		}
		if len(matches) > 0 {
			return smallestPath(matches)
		}
	}

	// Deterministic fallback: availability over precision.
	return smallestPath(candidates)
}

func (r *Resolver) readTimestamp(h archive.Handle, path string) (int64, bool) {
	data, err := r.reader.ReadFile(h, path)
	if err != nil {
		return 0, false
	}
	return catalog.ParseTimestamp(data)
}

func smallestPath(refs []archive.Ref) archive.Ref {
	best := refs[0]
	for _, ref := range refs[1:] {
		if ref.Path < best.Path {
			best = ref
		}
	}
	return best
}

func hasSegment(path, segment string) bool {
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if path[start:i] == segment {
				return true
			}
			start = i + 1
		}
	}
	return false
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
