package main

import (
	"fmt"

	"takeout/internal/config"
	"takeout/internal/ui"
	"takeout/internal/upload"
)

type ConfigCmd struct {
	Get   ConfigGetCmd   `cmd:"" help:"Print the effective configuration"`
	Set   ConfigSetCmd   `cmd:"" help:"Set one configuration value"`
	Setup ConfigSetupCmd `cmd:"" help:"Interactive storage setup"`
}

type ConfigGetCmd struct{}

func (cmd *ConfigGetCmd) Run(g *Globals) error {
	connection := "(not set)"
	if g.Cfg.ConnectionString() != "" {
		connection = "(set)"
	}
	fmt.Fprintf(g.Out, "config:            %s\n", g.Cfg.Path())
	fmt.Fprintf(g.Out, "connection-string: %s\n", connection)
	fmt.Fprintf(g.Out, "container:         %s\n", g.Cfg.Container())
	fmt.Fprintf(g.Out, "prefix:            %s\n", g.Cfg.DefaultPrefix())
	fmt.Fprintf(g.Out, "zip-dir:           %s\n", g.Cfg.ZipDir())
	return nil
}

type ConfigSetCmd struct {
	Key   string `arg:"" enum:"connection-string,container,prefix,zip-dir" help:"One of connection-string, container, prefix, zip-dir"`
	Value string `arg:"" help:"New value"`
}

func (cmd *ConfigSetCmd) Run(g *Globals) error {
	switch cmd.Key {
	case "connection-string":
		g.Cfg.SetConnectionString(cmd.Value)
	case "container":
		if err := upload.ValidateContainerName(cmd.Value); err != nil {
			return err
		}
		g.Cfg.SetContainer(cmd.Value)
	case "prefix":
		g.Cfg.SetDefaultPrefix(cmd.Value)
	case "zip-dir":
		expanded, err := config.ExpandPath(cmd.Value)
		if err != nil {
			return err
		}
		g.Cfg.SetZipDir(expanded)
	}

	if err := g.Cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(g.Out, "Set %s\n", cmd.Key)
	return nil
}

type ConfigSetupCmd struct{}

func (cmd *ConfigSetupCmd) Run(g *Globals) error {
	setup := ui.Setup{
		ConnectionString: g.Cfg.ConnectionString(),
		Container:        g.Cfg.Container(),
		Prefix:           g.Cfg.DefaultPrefix(),
		ZipDir:           g.Cfg.ZipDir(),
	}

	if err := ui.SetupForm(&setup).Run(); err != nil {
		return err
	}

	g.Cfg.SetConnectionString(setup.ConnectionString)
	g.Cfg.SetContainer(setup.Container)
	g.Cfg.SetDefaultPrefix(setup.Prefix)
	if setup.ZipDir != "" {
		expanded, err := config.ExpandPath(setup.ZipDir)
		if err != nil {
			return err
		}
		g.Cfg.SetZipDir(expanded)
	}

	if err := g.Cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprint(g.Out, ui.RenderSummary("Azure storage", setup.Fields()))
	fmt.Fprint(g.Out, ui.RenderSuccess(g.Cfg.Path(), nil))
	return nil
}
