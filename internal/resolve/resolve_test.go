package resolve_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeout/internal/archive"
	"takeout/internal/catalog"
	"takeout/internal/resolve"
	"takeout/internal/testsupport"
)

const refTS = 1546300800 // 2019-01-01T00:00:00Z

func sidecarBody(ts int64) string {
	return fmt.Sprintf(`{"photoTakenTime":{"timestamp":"%d"}}`, ts)
}

func newResolver(t *testing.T, zips map[string][]testsupport.Entry) *resolve.Resolver {
	t.Helper()
	dir := t.TempDir()

	names := make([]string, 0, len(zips))
	for name := range zips {
		names = append(names, name)
	}
	sort.Strings(names) // mirrors Discover's name-sorted archive order

	handles := make([]archive.Handle, 0, len(zips))
	for _, name := range names {
		handles = append(handles, testsupport.WriteZip(t, dir, name, zips[name]))
	}

	cache := catalog.NewCache(handles, archive.ZipReader{}, nil)
	return resolve.New(cache.Build(catalog.BuildOptions{}), archive.ZipReader{})
}

func TestResolve(t *testing.T) {
	t.Run("unknown album yields empty resolution", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{"a.zip": nil})

		res := r.Resolve("Nope")

		assert.Empty(t, res.Metadata)
		assert.Empty(t, res.Photos)
	})

	t.Run("basename without candidates is skipped", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/IMG_1.jpg.supplemental-metadata.json", Body: sidecarBody(refTS)},
			},
		})

		res := r.Resolve("Trip")

		assert.Empty(t, res.Photos)
		assert.Len(t, res.Metadata, 1)
	})

	t.Run("single candidate is taken regardless of timestamps", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/IMG_1.jpg.supplemental-metadata.json", Body: sidecarBody(refTS)},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/2007/IMG_1.jpg", Body: "photo"},
			},
		})

		res := r.Resolve("Trip")

		require.Len(t, res.Photos, 1)
		assert.Equal(t, "Takeout/Google Photos/2007/IMG_1.jpg", res.Photos[0].Path)
		assert.Equal(t, "b.zip", res.Photos[0].Archive.Name)
	})

	t.Run("timestamp within tolerance wins over a far one", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/IMG_1.jpg.supplemental-metadata.json", Body: sidecarBody(refTS)},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/x/IMG_1.jpg", Body: "far"},
				{Name: "Takeout/Google Photos/x/IMG_1.jpg.json", Body: sidecarBody(refTS + 3)},
				{Name: "Takeout/Google Photos/y/IMG_1.jpg", Body: "near"},
				{Name: "Takeout/Google Photos/y/IMG_1.jpg.json", Body: sidecarBody(refTS + 2)},
			},
		})

		res := r.Resolve("Trip")

		require.Len(t, res.Photos, 1)
		assert.Equal(t, "Takeout/Google Photos/y/IMG_1.jpg", res.Photos[0].Path)
	})

	t.Run("several timestamp matches break lexicographically", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/IMG_1.jpg.supplemental-metadata.json", Body: sidecarBody(refTS)},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/zz/IMG_1.jpg", Body: "1"},
				{Name: "Takeout/Google Photos/zz/IMG_1.jpg.json", Body: sidecarBody(refTS)},
				{Name: "Takeout/Google Photos/aa/IMG_1.jpg", Body: "2"},
				{Name: "Takeout/Google Photos/aa/IMG_1.jpg.json", Body: sidecarBody(refTS - 1)},
			},
		})

		res := r.Resolve("Trip")

		require.Len(t, res.Photos, 1)
		assert.Equal(t, "Takeout/Google Photos/aa/IMG_1.jpg", res.Photos[0].Path)
	})

	t.Run("year segment decides when timestamps do not", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/IMG_1.jpg.supplemental-metadata.json", Body: sidecarBody(refTS)},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/2019/IMG_1.jpg", Body: "right year"},
				{Name: "Takeout/Google Photos/Misc/IMG_1.jpg", Body: "no year"},
			},
		})

		res := r.Resolve("Trip")

		require.Len(t, res.Photos, 1)
		assert.Equal(t, "Takeout/Google Photos/2019/IMG_1.jpg", res.Photos[0].Path)
	})

	t.Run("year must be a standalone segment", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/IMG_1.jpg.supplemental-metadata.json", Body: sidecarBody(refTS)},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/trip-2019-summer/IMG_1.jpg", Body: "embedded"},
				{Name: "Takeout/Google Photos/Misc/IMG_1.jpg", Body: "plain"},
			},
		})

		res := r.Resolve("Trip")

		// Neither path has "2019" as a full segment, so the fallback picks
		// the lexicographically smallest.
		require.Len(t, res.Photos, 1)
		assert.Equal(t, "Takeout/Google Photos/Misc/IMG_1.jpg", res.Photos[0].Path)
	})

	t.Run("fallback picks the lexicographically smallest path", func(t *testing.T) {
		zips := map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/IMG_1.jpg.supplemental-metadata.json", Body: `{}`},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/beta/IMG_1.jpg", Body: "1"},
				{Name: "Takeout/Google Photos/alpha/IMG_1.jpg", Body: "2"},
			},
		}

		first := newResolver(t, zips).Resolve("Trip")
		second := newResolver(t, zips).Resolve("Trip")

		require.Len(t, first.Photos, 1)
		assert.Equal(t, "Takeout/Google Photos/alpha/IMG_1.jpg", first.Photos[0].Path)
		assert.Equal(t, first.Photos, second.Photos, "choice is stable across runs")
	})

	t.Run("missing reference timestamp skips straight to fallback", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/IMG_1.jpg.supplemental-metadata.json", Body: `{"title":"no times"}`},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/2019/IMG_1.jpg", Body: "x"},
				{Name: "Takeout/Google Photos/2019/IMG_1.jpg.json", Body: sidecarBody(refTS)},
				{Name: "Takeout/Google Photos/0000/IMG_1.jpg", Body: "y"},
			},
		})

		res := r.Resolve("Trip")

		require.Len(t, res.Photos, 1)
		assert.Equal(t, "Takeout/Google Photos/0000/IMG_1.jpg", res.Photos[0].Path)
	})

	t.Run("photos come back in basename order", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/zed.jpg.supplemental-metadata.json", Body: `{}`},
				{Name: "Takeout/Google Photos/Trip/abc.jpg.supplemental-metadata.json", Body: `{}`},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/x/zed.jpg", Body: "1"},
				{Name: "Takeout/Google Photos/x/abc.jpg", Body: "2"},
			},
		})

		res := r.Resolve("Trip")

		require.Len(t, res.Photos, 2)
		assert.Equal(t, "abc.jpg", res.Photos[0].Basename())
		assert.Equal(t, "zed.jpg", res.Photos[1].Basename())
	})

	t.Run("end to end: stub album resolves into another archive", func(t *testing.T) {
		r := newResolver(t, map[string][]testsupport.Entry{
			"a.zip": {
				{Name: "Takeout/Google Photos/Trip/metadata.json", Body: `{"title":"Trip"}`},
				{Name: "Takeout/Google Photos/Trip/IMG_1.jpg.supplemental-metadata.json", Body: sidecarBody(refTS)},
			},
			"b.zip": {
				{Name: "Takeout/Google Photos/2019/IMG_1.jpg", Body: "photo"},
				{Name: "Takeout/Google Photos/2019/IMG_1.jpg.json", Body: sidecarBody(refTS)},
			},
		})

		res := r.Resolve("Trip")

		require.Len(t, res.Photos, 1)
		assert.Equal(t, "b.zip", res.Photos[0].Archive.Name)
		assert.Equal(t, "Takeout/Google Photos/2019/IMG_1.jpg", res.Photos[0].Path)
	})
}
