package main

import (
	"fmt"

	"takeout/internal/batch"
	"takeout/internal/resolve"
)

type ExportCmd struct {
	Albums []string `arg:"" help:"Album names to export"`
	Out    string   `short:"o" required:"" help:"Destination directory" type:"path"`
}

func (cmd *ExportCmd) Run(g *Globals) error {
	cat, err := g.Catalog()
	if err != nil {
		return err
	}

	exporter := batch.NewExporter(cat, resolve.New(cat, g.Reader), g.Reader, g.Log)
	exporter.FileProgress = g.batchProgress("exporting")

	stats, err := exporter.Export(cmd.Albums, cmd.Out)
	if err != nil {
		return err
	}

	fmt.Fprint(g.Out, g.Render.RenderStats(statsView("Export complete", stats)))
	return nil
}
