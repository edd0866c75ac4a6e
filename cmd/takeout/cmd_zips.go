package main

import (
	"fmt"
	"text/tabwriter"

	"takeout/cmd/takeout/render"
)

type ZipsCmd struct{}

func (cmd *ZipsCmd) Run(g *Globals) error {
	cache, err := g.Cache()
	if err != nil {
		return err
	}
	archives := cache.Archives()

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tSIZE")
	fmt.Fprintln(w, "-\t----\t----")

	var total int64
	for i, h := range archives {
		total += h.Size
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, h.Name, render.FormatBytes(h.Size))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "\n%d archives, %s total\n", len(archives), render.FormatBytes(total))
	return nil
}
