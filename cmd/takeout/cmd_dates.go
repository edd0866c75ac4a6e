package main

import "fmt"

type DatesCmd struct{}

func (cmd *DatesCmd) Run(g *Globals) error {
	cat, err := g.Catalog()
	if err != nil {
		return err
	}

	result := cat.AnalyzeDates(g.Reader, g.scanProgress("reading sidecars"))
	if result.TotalPhotos == 0 {
		fmt.Fprintln(g.Out, "No dated photos found.")
		if result.Errors > 0 {
			fmt.Fprintf(g.Out, "%d documents unreadable or undated\n", result.Errors)
		}
		return nil
	}

	fmt.Fprintf(g.Out, "Photos with dates: %d\n", result.TotalPhotos)
	fmt.Fprintf(g.Out, "Earliest: %s\n", result.Earliest.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(g.Out, "Latest:   %s\n", result.Latest.Format("2006-01-02 15:04:05 MST"))
	if result.Errors > 0 {
		fmt.Fprintf(g.Out, "Errors:   %d\n", result.Errors)
	}
	return nil
}
