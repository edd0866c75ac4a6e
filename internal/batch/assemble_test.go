package batch

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeout/internal/archive"
	"takeout/internal/catalog"
	"takeout/internal/resolve"
	"takeout/internal/testsupport"
)

func buildFixture(t *testing.T, zips map[string][]testsupport.Entry) (*catalog.Catalog, *resolve.Resolver) {
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

func paths(refs []archive.Ref) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = ref.Path
	}
	return out
}

func TestAssemble(t *testing.T) {
	const album = "Takeout/Google Photos/Trip/"
	sidecar := `{"photoTakenTime":{"timestamp":"1546300800"}}`

	zips := map[string][]testsupport.Entry{
		"a.zip": {
			{Name: album + "metadata.json", Body: `{"title":"Trip"}`},
			{Name: album + "IMG_A.jpg", Body: "aaaa"},
			{Name: album + "IMG_A.jpg.supplemental-metadata.json", Body: sidecar},
			{Name: album + "IMG_B.jpg.supplemental-metadata.json", Body: sidecar},
		},
		"b.zip": {
			{Name: "Takeout/Google Photos/Photos from 2019/IMG_B.jpg", Body: "bbbb"},
		},
	}

	t.Run("orders info, direct media with sidecars, then resolved refs", func(t *testing.T) {
		cat, resolver := buildFixture(t, zips)

		files, supplemental, ok := assemble(cat, resolver, "Trip", true)

		require.True(t, ok)
		assert.Equal(t, []string{
			album + "metadata.json",
			album + "IMG_A.jpg",
			album + "IMG_A.jpg.supplemental-metadata.json",
			"Takeout/Google Photos/Photos from 2019/IMG_B.jpg",
			album + "IMG_B.jpg.supplemental-metadata.json",
		}, paths(files))
		assert.Len(t, supplemental, 2)
	})

	t.Run("without metadata only media survive", func(t *testing.T) {
		cat, resolver := buildFixture(t, zips)

		files, _, ok := assemble(cat, resolver, "Trip", false)

		require.True(t, ok)
		assert.Equal(t, []string{
			album + "IMG_A.jpg",
			"Takeout/Google Photos/Photos from 2019/IMG_B.jpg",
		}, paths(files))
	})

	t.Run("resolved ref sharing a direct basename is dropped", func(t *testing.T) {
		cat, resolver := buildFixture(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: album + "IMG_A.jpg", Body: "aaaa"},
				{Name: album + "IMG_A.jpg.supplemental-metadata.json", Body: sidecar},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/Photos from 2019/IMG_A.jpg", Body: "dupe"},
			},
		})

		files, _, ok := assemble(cat, resolver, "Trip", false)

		require.True(t, ok)
		assert.Equal(t, []string{album + "IMG_A.jpg"}, paths(files))
	})

	t.Run("unknown album reports not ok", func(t *testing.T) {
		cat, resolver := buildFixture(t, zips)

		_, _, ok := assemble(cat, resolver, "Nope", true)

		assert.False(t, ok)
	})
}
