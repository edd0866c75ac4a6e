package main

import (
	"fmt"
	"text/tabwriter"

	"takeout/internal/resolve"
)

type ResolveCmd struct {
	Album string `arg:"" help:"Album name"`
}

func (cmd *ResolveCmd) Run(g *Globals) error {
	cat, err := g.Catalog()
	if err != nil {
		return err
	}
	if cat.Album(cmd.Album) == nil {
		return fmt.Errorf("no album found matching: %s", cmd.Album)
	}

	resolver := resolve.New(cat, g.Reader)
	res := resolver.Resolve(cmd.Album)

	fmt.Fprintf(g.Out, "%s: %d metadata files, %d photos resolved\n\n", cmd.Album, len(res.Metadata), len(res.Photos))

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHOTO\tARCHIVE\tPATH")
	fmt.Fprintln(w, "-----\t-------\t----")
	for _, ref := range res.Photos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ref.Basename(), ref.Archive.Name, ref.Path)
	}
	return w.Flush()
}
