package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"

	"takeout/cmd/takeout/render"
	"takeout/internal/archive"
	"takeout/internal/config"
)

type CLI struct {
	Zips     ZipsCmd     `cmd:"" aliases:"z" help:"List takeout archives"`
	Show     ShowCmd     `cmd:"" help:"Show one archive's content breakdown"`
	Albums   AlbumsCmd   `cmd:"" aliases:"al" help:"List albums with media counts"`
	Contents ContentsCmd `cmd:"" help:"List the files of one album"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve an album's referenced photos to archive entries"`
	Search   SearchCmd   `cmd:"" aliases:"s" help:"Search entry names across all archives"`
	Dates    DatesCmd    `cmd:"" help:"Analyze the capture-date range of the collection"`
	Meta     MetaCmd     `cmd:"" help:"Extract JSON metadata documents matching a pattern"`
	Extract  ExtractCmd  `cmd:"" help:"Extract a single entry to disk"`
	Export   ExportCmd   `cmd:"" help:"Export albums to a directory with manifests"`
	Upload   UploadCmd   `cmd:"" help:"Upload albums or matching entries to remote storage"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`

	Dir        string `short:"d" help:"Directory containing takeout zip archives" type:"path"`
	Workers    int    `short:"w" help:"Maximum parallel archive readers"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`
	NoProgress bool   `help:"Disable progress bars"`
	ConfigPath string `name:"config" help:"Path to config file"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	_ = godotenv.Load()

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	configPath := c.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg := config.NewStore(configPath)
	if err := cfg.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	globals := &Globals{
		Dir:        c.Dir,
		Workers:    c.Workers,
		NoProgress: c.NoProgress || !term.IsTerminal(os.Stderr.Fd()),
		Out:        os.Stdout,
		Log:        log,
		Cfg:        cfg,
		Reader:     archive.ZipReader{},
		Render:     render.NewLipglossRendererAuto(os.Stdout),
	}
	ctx.Bind(globals)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("takeout"),
		kong.Description("Catalog, resolve, and ship Google Photos takeout archives"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
