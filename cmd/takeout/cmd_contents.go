package main

import "fmt"

type ContentsCmd struct {
	Album string `arg:"" help:"Album name"`
}

func (cmd *ContentsCmd) Run(g *Globals) error {
	cat, err := g.Catalog()
	if err != nil {
		return err
	}

	album := cat.Album(cmd.Album)
	if album == nil {
		return fmt.Errorf("no album found matching: %s", cmd.Album)
	}

	for _, ref := range album.Files {
		fmt.Fprintf(g.Out, "%s\t%s\n", ref.Archive.Name, ref.Path)
	}
	fmt.Fprintf(g.Out, "\n%d files\n", len(album.Files))
	return nil
}
