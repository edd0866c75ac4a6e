package main

import (
	"io"
	"log/slog"

	"takeout/cmd/takeout/render"
	"takeout/internal/archive"
	"takeout/internal/catalog"
	"takeout/internal/config"
)

// Globals is the shared command environment, bound by AfterApply. The
// archive set and catalog are built lazily so configuration commands work
// without a zip directory.
type Globals struct {
	Dir        string
	Workers    int
	NoProgress bool

	Out    io.Writer
	Log    *slog.Logger
	Cfg    *config.Store
	Reader archive.Reader
	Render render.Renderer

	cache *catalog.Cache
}

// Cache discovers the archive set on first use and memoizes it.
func (g *Globals) Cache() (*catalog.Cache, error) {
	if g.cache != nil {
		return g.cache, nil
	}

	dir := g.Dir
	if dir == "" {
		dir = g.Cfg.ZipDir()
	}
	if dir == "" {
		dir = "."
	}

	handles, err := archive.Discover(dir)
	if err != nil {
		return nil, err
	}
	g.cache = catalog.NewCache(handles, g.Reader, g.Log)
	return g.cache, nil
}

// Catalog builds (or returns) the memoized catalog snapshot.
func (g *Globals) Catalog() (*catalog.Catalog, error) {
	cache, err := g.Cache()
	if err != nil {
		return nil, err
	}
	cat := cache.Build(catalog.BuildOptions{
		MaxWorkers: g.Workers,
		Progress:   g.scanProgress("indexing archives"),
	})
	return cat, nil
}
