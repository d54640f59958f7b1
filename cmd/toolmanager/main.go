package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/johanforsgren/toolmanager/internal/catalog"
	"github.com/johanforsgren/toolmanager/internal/config"
	"github.com/johanforsgren/toolmanager/internal/domain"
	"github.com/johanforsgren/toolmanager/internal/logger"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
	"github.com/johanforsgren/toolmanager/internal/provider/github"
)

type CLI struct {
	Config  string `short:"c" help:"Config file. Default is ~/.toolmanager/config.yaml when present." type:"path"`
	Dest    string `short:"d" help:"Directory archives are saved to. Default is the working directory." type:"path"`
	LogFile string `help:"Append session logs to this file." type:"path"`
	Source  string `help:"Where the repository list comes from: html or api."`

	Browse   BrowseCmd   `cmd:"" default:"1" help:"Browse the repositories interactively."`
	List     ListCmd     `cmd:"" help:"Print the repositories and their requirement counts."`
	Download DownloadCmd `cmd:"" help:"Download the source archive of one repository."`
}

type runContext struct {
	ctx       context.Context
	cfg       *config.Config
	endpoints common.Endpoints
	provider  domain.Provider
	catalog   *catalog.Catalog
	selection *catalog.Selection
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("toolmanager"),
		kong.Description("Browse and download the "+common.DefaultAccount+" Python tools."),
		kong.ShortUsageOnError(),
	)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	parser.FatalIfErrorf(run(kctx, &cli))
}

// run owns the logger lifetime so the file sink is closed before main exits
// on an error.
func run(kctx *kong.Context, cli *CLI) error {
	cfg, err := config.Load(cli.Config, config.Overrides{
		Destination:   cli.Dest,
		ListingSource: cli.Source,
		LogFile:       cli.LogFile,
	})
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogFile); err != nil {
		return err
	}
	defer logger.Close()
	logger.Log("CLI: Running %s", kctx.Command())

	endpoints := common.DefaultEndpoints()
	provider, err := github.NewProvider(endpoints, cfg.ListingSource, nil)
	if err != nil {
		return err
	}

	rc := &runContext{
		ctx:       context.Background(),
		cfg:       cfg,
		endpoints: endpoints,
		provider:  provider,
		catalog: catalog.New(provider, provider, catalog.Options{
			Endpoints:   endpoints,
			Concurrency: cfg.Concurrency,
		}),
		selection: catalog.NewSelection(),
	}

	return kctx.Run(rc)
}
