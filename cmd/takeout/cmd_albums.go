package main

import (
	"fmt"
	"text/tabwriter"
)

type AlbumsCmd struct{}

func (cmd *AlbumsCmd) Run(g *Globals) error {
	cat, err := g.Catalog()
	if err != nil {
		return err
	}

	overview := cat.AlbumsOverview()
	if len(overview) == 0 {
		fmt.Fprintln(g.Out, "No albums found.")
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALBUM\tIMAGES\tVIDEOS\tJSON\tOTHER")
	fmt.Fprintln(w, "-----\t------\t------\t----\t-----")

	for _, stats := range overview {
		images := fmt.Sprintf("%d", stats.Images)
		if stats.ImagesReferenced > 0 {
			images = fmt.Sprintf("%d (%d ref)", stats.Images, stats.ImagesReferenced)
		}
		videos := fmt.Sprintf("%d", stats.Videos)
		if stats.VideosReferenced > 0 {
			videos = fmt.Sprintf("%d (%d ref)", stats.Videos, stats.VideosReferenced)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", stats.Name, images, videos, stats.JSON, stats.Other)
	}
	return w.Flush()
}
