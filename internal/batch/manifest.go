package batch

import (
	"encoding/json"

	"takeout/internal/archive"
)

// ManifestEntry describes one materialized media file. The sidecar documents
// are attached verbatim so downstream metadata reconstruction sees the exact
// takeout bytes.
type ManifestEntry struct {
	RelativePath      string          `json:"relative_path"`
	SourceZip         string          `json:"source_zip"`
	Destination       string          `json:"destination,omitempty"`
	ArchivePath       string          `json:"archive_path"`
	AlbumSupplemental json.RawMessage `json:"albumSupplemental,omitempty"`
	Original          json.RawMessage `json:"original,omitempty"`
}

// Manifest is written once per album after all its files are processed.
type Manifest struct {
	Album   string          `json:"album"`
	Entries []ManifestEntry `json:"entries"`
}

func newManifest(album string) Manifest {
	return Manifest{Album: album, Entries: []ManifestEntry{}}
}

func (m Manifest) encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// manifestEntry builds the record for one media file, attaching the album
// sidecar and the entry's own sibling JSON when they exist and parse.
// Metadata attachment is best-effort; a missing or corrupt document just
// leaves its field empty.
func manifestEntry(reader archive.Reader, supplemental map[string]archive.Ref, ref archive.Ref, relativePath, destination string) ManifestEntry {
	entry := ManifestEntry{
		RelativePath: relativePath,
		SourceZip:    ref.Archive.Name,
		Destination:  destination,
		ArchivePath:  ref.Path,
	}

	if sidecar, ok := supplemental[ref.Basename()]; ok {
		if data, err := reader.ReadFile(sidecar.Archive, sidecar.Path); err == nil && json.Valid(data) {
			entry.AlbumSupplemental = data
		}
	}
	if data, err := reader.ReadFile(ref.Archive, ref.Path+".json"); err == nil && json.Valid(data) {
		entry.Original = data
	}
	return entry
}
