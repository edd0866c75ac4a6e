package main

import (
	"fmt"
	"regexp"
)

type SearchCmd struct {
	Pattern string `arg:"" help:"Regular expression matched against entry paths"`
}

func (cmd *SearchCmd) Run(g *Globals) error {
	re, err := regexp.Compile(cmd.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	cat, err := g.Catalog()
	if err != nil {
		return err
	}

	total := 0
	for _, result := range cat.Search(re) {
		fmt.Fprintf(g.Out, "%s:\n", result.Archive.Name)
		for _, match := range result.Matches {
			fmt.Fprintf(g.Out, "  %s\n", match)
		}
		total += len(result.Matches)
	}
	fmt.Fprintf(g.Out, "\n%d matches\n", total)
	return nil
}
