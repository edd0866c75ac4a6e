package main

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"takeout/internal/batch"
	"takeout/internal/resolve"
	"takeout/internal/upload"
)

type UploadCmd struct {
	Albums  []string `arg:"" optional:"" help:"Album names to upload"`
	Pattern string   `short:"p" help:"Upload entries matching this regex instead of albums"`

	Container       string `help:"Override the configured container"`
	Prefix          string `help:"Override the configured destination prefix"`
	IncludeMetadata bool   `help:"Also upload JSON metadata"`
	Thumbnails      bool   `help:"Generate and upload thumbnails alongside images"`
	ThumbnailsOnly  bool   `help:"Upload only thumbnails, not originals"`
}

func (cmd *UploadCmd) Run(g *Globals) error {
	if len(cmd.Albums) == 0 && cmd.Pattern == "" {
		return errors.New("nothing to upload: name albums or pass --pattern")
	}
	if len(cmd.Albums) > 0 && cmd.Pattern != "" {
		return errors.New("albums and --pattern are mutually exclusive")
	}

	provider, prefix, err := upload.Build(g.Cfg, upload.Target{
		Container: cmd.Container,
		Prefix:    cmd.Prefix,
	})
	if err != nil {
		return err
	}

	cat, err := g.Catalog()
	if err != nil {
		return err
	}

	uploader := batch.NewUploader(cat, resolve.New(cat, g.Reader), g.Reader, provider, prefix, g.Log)
	uploader.FileProgress = g.batchProgress("uploading")

	opts := batch.UploadOptions{
		IncludeMetadata: cmd.IncludeMetadata,
		Thumbnails:      cmd.Thumbnails,
		ThumbnailsOnly:  cmd.ThumbnailsOnly,
	}

	ctx := context.Background()
	var stats batch.Stats
	if cmd.Pattern != "" {
		re, err := regexp.Compile(cmd.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		stats, err = uploader.UploadMatching(ctx, re, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(g.Out, "Matched %d entries\n", stats.TotalMatched)
	} else {
		stats, err = uploader.Upload(ctx, cmd.Albums, opts)
		if err != nil {
			return err
		}
	}

	fmt.Fprint(g.Out, g.Render.RenderStats(statsView("Upload complete", stats)))
	return nil
}
