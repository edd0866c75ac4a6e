package main

import (
	"encoding/json"
	"fmt"
	"regexp"
)

type MetaCmd struct {
	Pattern string `arg:"" help:"Regular expression matched against JSON entry paths"`
}

func (cmd *MetaCmd) Run(g *Globals) error {
	re, err := regexp.Compile(cmd.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	cat, err := g.Catalog()
	if err != nil {
		return err
	}

	docs := cat.ExtractMetadata(g.Reader, re)
	for _, doc := range docs {
		fmt.Fprintf(g.Out, "%s!%s\n", doc.SourceZip, doc.ArchivePath)
		pretty, err := json.MarshalIndent(doc.Data, "", "  ")
		if err != nil {
			continue
		}
		fmt.Fprintf(g.Out, "%s\n\n", pretty)
	}
	fmt.Fprintf(g.Out, "%d documents\n", len(docs))
	return nil
}
