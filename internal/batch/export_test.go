package batch_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeout/internal/archive"
	"takeout/internal/batch"
	"takeout/internal/catalog"
	"takeout/internal/resolve"
	"takeout/internal/testsupport"
)

const (
	tripFolder  = "Takeout/Google Photos/Trip/"
	sidecarBody = `{"photoTakenTime":{"timestamp":"1546300800"}}`
)

func newEnv(t *testing.T, zips map[string][]testsupport.Entry) (*catalog.Catalog, *resolve.Resolver) {
	t.Helper()
	dir := t.TempDir()

	names := make([]string, 0, len(zips))
	for name := range zips {
		names = append(names, name)
	}
	sort.Strings(names)

	handles := make([]archive.Handle, 0, len(zips))
	for _, name := range names {
		handles = append(handles, testsupport.WriteZip(t, dir, name, zips[name]))
	}

	cache := catalog.NewCache(handles, archive.ZipReader{}, nil)
	cat := cache.Build(catalog.BuildOptions{})
	return cat, resolve.New(cat, archive.ZipReader{})
}

func tripZips() map[string][]testsupport.Entry {
	return map[string][]testsupport.Entry{
		"a.zip": {
			{Name: tripFolder + "metadata.json", Body: `{"title":"Trip"}`},
			{Name: tripFolder + "IMG_1.jpg.supplemental-metadata.json", Body: sidecarBody},
		},
		"b.zip": {
			{Name: "Takeout/Google Photos/Photos from 2019/IMG_1.jpg", Body: "jpegbytes"},
			{Name: "Takeout/Google Photos/Photos from 2019/IMG_1.jpg.json", Body: `{"title":"IMG_1.jpg"}`},
		},
	}
}

func readManifest(t *testing.T, dir string) batch.Manifest {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	var m batch.Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestExport(t *testing.T) {
	t.Run("materializes an album with a manifest", func(t *testing.T) {
		cat, resolver := newEnv(t, tripZips())
		exporter := batch.NewExporter(cat, resolver, archive.ZipReader{}, nil)
		outDir := t.TempDir()

		stats, err := exporter.Export([]string{"Trip"}, outDir)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.Albums)
		assert.Equal(t, 3, stats.Files) // metadata.json, IMG_1.jpg, sidecar
		assert.Zero(t, stats.Errors)
		assert.NotEmpty(t, stats.OperationID)

		albumDir := filepath.Join(outDir, "Trip")
		assert.FileExists(t, filepath.Join(albumDir, "metadata.json"))
		assert.FileExists(t, filepath.Join(albumDir, "IMG_1.jpg"))
		assert.FileExists(t, filepath.Join(albumDir, "IMG_1.jpg.supplemental-metadata.json"))

		m := readManifest(t, albumDir)
		assert.Equal(t, "Trip", m.Album)
		require.Len(t, m.Entries, 1)
		entry := m.Entries[0]
		assert.Equal(t, "IMG_1.jpg", entry.RelativePath)
		assert.Equal(t, "b.zip", entry.SourceZip)
		assert.Equal(t, "Takeout/Google Photos/Photos from 2019/IMG_1.jpg", entry.ArchivePath)
		assert.Empty(t, entry.Destination)
		assert.JSONEq(t, sidecarBody, string(entry.AlbumSupplemental))
		assert.JSONEq(t, `{"title":"IMG_1.jpg"}`, string(entry.Original))
	})

	t.Run("rerun skips existing files without rewriting", func(t *testing.T) {
		cat, resolver := newEnv(t, tripZips())
		exporter := batch.NewExporter(cat, resolver, archive.ZipReader{}, nil)
		outDir := t.TempDir()

		first, err := exporter.Export([]string{"Trip"}, outDir)
		require.NoError(t, err)

		photo := filepath.Join(outDir, "Trip", "IMG_1.jpg")
		require.NoError(t, os.WriteFile(photo, []byte("edited"), 0o644))

		second, err := exporter.Export([]string{"Trip"}, outDir)
		require.NoError(t, err)
		assert.Zero(t, second.Files)
		assert.Equal(t, first.Files, second.Skipped)

		data, err := os.ReadFile(photo)
		require.NoError(t, err)
		assert.Equal(t, "edited", string(data), "existing files must never be truncated")
	})

	t.Run("direct media keep their in-album structure", func(t *testing.T) {
		cat, resolver := newEnv(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: tripFolder + "day1/IMG_2.jpg", Body: "nested"},
			},
		})
		exporter := batch.NewExporter(cat, resolver, archive.ZipReader{}, nil)
		outDir := t.TempDir()

		stats, err := exporter.Export([]string{"Trip"}, outDir)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.Files)
		assert.FileExists(t, filepath.Join(outDir, "Trip", "day1", "IMG_2.jpg"))
	})

	t.Run("unknown album is skipped, not fatal", func(t *testing.T) {
		cat, resolver := newEnv(t, tripZips())
		exporter := batch.NewExporter(cat, resolver, archive.ZipReader{}, nil)

		stats, err := exporter.Export([]string{"Nope"}, t.TempDir())

		require.NoError(t, err)
		assert.Zero(t, stats.Albums)
		assert.Equal(t, 1, stats.Skipped)
	})

	t.Run("tracks progress per album and file", func(t *testing.T) {
		cat, resolver := newEnv(t, tripZips())
		exporter := batch.NewExporter(cat, resolver, archive.ZipReader{}, nil)

		var albums, files int
		exporter.AlbumProgress = func(current, total int, album string) {
			albums++
			assert.Equal(t, 1, total)
			assert.Equal(t, "Trip", album)
		}
		exporter.FileProgress = func(current, total int, album string) { files++ }

		_, err := exporter.Export([]string{"Trip"}, t.TempDir())

		require.NoError(t, err)
		assert.Equal(t, 1, albums)
		assert.Equal(t, 3, files)
	})
}
