package main

import "fmt"

type ShowCmd struct {
	Index int `arg:"" help:"Archive index from the zips listing"`
}

func (cmd *ShowCmd) Run(g *Globals) error {
	cat, err := g.Catalog()
	if err != nil {
		return err
	}
	h, err := archiveByIndex(cat, cmd.Index)
	if err != nil {
		return err
	}

	contents := cat.ZipContents(h)
	fmt.Fprintf(g.Out, "%s: %d entries\n", h.Name, contents.Total)
	fmt.Fprintf(g.Out, "  images: %d\n", len(contents.Images))
	fmt.Fprintf(g.Out, "  videos: %d\n", len(contents.Videos))
	fmt.Fprintf(g.Out, "  json:   %d\n", len(contents.JSON))
	fmt.Fprintf(g.Out, "  other:  %d\n", len(contents.Other))

	if len(contents.Samples) > 0 {
		fmt.Fprintln(g.Out, "\nSample entries:")
		for _, name := range contents.Samples {
			fmt.Fprintf(g.Out, "  %s\n", name)
		}
	}
	return nil
}
