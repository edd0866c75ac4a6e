package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"takeout/cmd/takeout/render"
)

type ExtractCmd struct {
	Index int    `arg:"" help:"Archive index from the zips listing"`
	Path  string `arg:"" help:"Entry path inside the archive"`
	Out   string `short:"o" default:"." help:"Destination directory" type:"path"`
}

func (cmd *ExtractCmd) Run(g *Globals) error {
	cat, err := g.Catalog()
	if err != nil {
		return err
	}
	h, err := archiveByIndex(cat, cmd.Index)
	if err != nil {
		return err
	}

	data, err := g.Reader.ReadFile(h, cmd.Path)
	if err != nil {
		return fmt.Errorf("read %s from %s: %w", cmd.Path, h.Name, err)
	}

	if err := os.MkdirAll(cmd.Out, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(cmd.Out, path.Base(cmd.Path))

	// Never overwrite an existing extraction.
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "Extracted: %s (%s)\n", dest, render.FormatBytes(int64(len(data))))
	return nil
}
