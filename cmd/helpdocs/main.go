package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/helpdocs/internal/config"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Bundle struct {
		Repo          string `short:"r" help:"Clone module sources from this git URL before bundling"`
		SkipUnchanged bool   `help:"Skip writing when the hash cache shows no input changed"`
	} `cmd:"" help:"Bundle the module's scripts into a single module file"`

	Pages struct {
		Command string `help:"Render a single command instead of the whole module"`
	} `cmd:"" help:"Render per-command HTML pages"`

	Summary struct {
		Format string `help:"Summary format" enum:"html,markdown" default:"html"`
		Out    string `short:"o" help:"Output file path override"`
	} `cmd:"" help:"Render the module summary page"`

	Build struct{} `cmd:"" help:"Run the full pipeline: bundle, pages, summaries, link check"`

	Watch struct{} `cmd:"" help:"Watch the source directory and rebuild on change"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if kctx.Command() == "init" {
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch kctx.Command() {
	case "bundle":
		err = runBundle(ctx, cfg, CLI.Bundle.Repo, CLI.Bundle.SkipUnchanged)
	case "pages":
		err = runPages(ctx, cfg, CLI.Pages.Command)
	case "summary":
		err = runSummary(ctx, cfg, CLI.Summary.Format, CLI.Summary.Out)
	case "build":
		err = runBuild(ctx, cfg)
	case "watch":
		err = runWatch(ctx, cfg)
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
