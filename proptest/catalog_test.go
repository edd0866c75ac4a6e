package proptest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalogReflectsWrittenArchives(t *testing.T) {
	RunWithCollection(t, func(c *Collection) {
		cat := c.Build()
		verifyCatalogInvariants(c.T, c, cat)
	})
}

func TestBuildIsDeterministic(t *testing.T) {
	RunWithCollection(t, func(c *Collection) {
		first := c.Build()
		second := c.Rebuild()

		if diff := cmp.Diff(first, second); diff != "" {
			c.T.Fatalf("two builds of the same archives differ (-first +second):\n%s", diff)
		}
	})
}

func TestBuildIsMemoized(t *testing.T) {
	RunWithCollection(t, func(c *Collection) {
		first := c.Build()
		second := c.Build()
		if first != second {
			c.T.Fatalf("second build without Force returned a new snapshot")
		}

		c.Cache.Invalidate()
		if c.Cache.Current() != nil {
			c.T.Fatalf("Invalidate left a cached snapshot behind")
		}

		third := c.Build()
		if diff := cmp.Diff(first, third); diff != "" {
			c.T.Fatalf("rebuild after Invalidate differs:\n%s", diff)
		}
	})
}

func TestAlbumNamesSortedAndComplete(t *testing.T) {
	RunWithCollection(t, func(c *Collection) {
		cat := c.Build()

		names := cat.AlbumNames()
		if len(names) != len(cat.ByAlbum) {
			c.T.Fatalf("AlbumNames lists %d albums, catalog holds %d", len(names), len(cat.ByAlbum))
		}
		for i := 1; i < len(names); i++ {
			if names[i-1] >= names[i] {
				c.T.Fatalf("AlbumNames not strictly sorted: %q before %q", names[i-1], names[i])
			}
		}
		for _, name := range names {
			if cat.Album(name) == nil {
				c.T.Fatalf("listed album %q not retrievable", name)
			}
		}
	})
}
