package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/helpdocs/internal/bundle"
	"git.home.luguber.info/inful/helpdocs/internal/config"
	"git.home.luguber.info/inful/helpdocs/internal/hashstore"
	"git.home.luguber.info/inful/helpdocs/internal/host"
	"git.home.luguber.info/inful/helpdocs/internal/linkcheck"
	"git.home.luguber.info/inful/helpdocs/internal/metrics"
	"git.home.luguber.info/inful/helpdocs/internal/render"
	"git.home.luguber.info/inful/helpdocs/internal/watch"
)

func bundleOptions(cfg *config.Config, sourceDir string) bundle.Options {
	return bundle.Options{
		Module:    cfg.Module.Name,
		SourceDir: sourceDir,
		OutDir:    cfg.Output.Directory,
		Exclude:   cfg.Module.Exclude,
		ScriptExt: cfg.Module.ScriptExt,
		BundleExt: cfg.Module.BundleExt,
	}
}

func runBundle(ctx context.Context, cfg *config.Config, repo string, skipUnchanged bool) error {
	h := host.NewShell(cfg.Help.Shell)

	sourceDir := cfg.Module.SourceDir
	if repo == "" {
		repo = cfg.Module.Repository
	}
	if repo != "" {
		dir, cleanup, err := bundle.CloneSource(ctx, repo)
		if err != nil {
			return err
		}
		defer cleanup()
		sourceDir = filepath.Join(dir, cfg.Module.SourceDir)
	}

	b := bundle.New(bundleOptions(cfg, sourceDir), h)
	res, err := b.Collect(ctx)
	if err != nil {
		return err
	}

	var store *hashstore.Store
	if cfg.Cache.Path != "" {
		store, err = hashstore.Open(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	if skipUnchanged && store != nil {
		changed, err := store.Changed(ctx, cfg.Module.Name, res.Hashes)
		if err != nil {
			return err
		}
		if !changed {
			slog.Info("No input changes since last bundle, skipping write",
				"module", cfg.Module.Name)
			return nil
		}
	}

	if err := b.Write(ctx, res); err != nil {
		return err
	}
	if store != nil {
		return store.Put(ctx, cfg.Module.Name, res.Hashes)
	}
	return nil
}

func runPages(ctx context.Context, cfg *config.Config, command string) error {
	h := host.NewShell(cfg.Help.Shell)
	r, err := render.New(h, cfg)
	if err != nil {
		return err
	}
	name := cfg.Module.Name
	if command != "" {
		name = command
	}
	return r.Pages(ctx, name)
}

func runSummary(ctx context.Context, cfg *config.Config, format, out string) error {
	h := host.NewShell(cfg.Help.Shell)
	r, err := render.New(h, cfg)
	if err != nil {
		return err
	}
	if format == "markdown" {
		return r.Readme(ctx, cfg.Module.Name, out)
	}
	return r.Summary(ctx, cfg.Module.Name, out)
}

func runBuild(ctx context.Context, cfg *config.Config) error {
	h := host.NewShell(cfg.Help.Shell)
	return runPipeline(ctx, cfg, h, metrics.NoopRecorder{}, false)
}

// runPipeline executes bundle, pages, both summaries and the link check.
// Per-item failures inside the renderers are isolated; this function keeps
// going through the remaining stages and returns everything joined, so a
// single bad help document never hides the rest of the output.
// When gateOnCache is set and the hash cache shows no input changed, the
// render stages are skipped (watch mode rebuilds only on real changes).
func runPipeline(ctx context.Context, cfg *config.Config, h host.Host, rec metrics.Recorder, gateOnCache bool) error {
	b := bundle.New(bundleOptions(cfg, cfg.Module.SourceDir), h)
	b.SetRecorder(rec)

	res, err := b.Bundle(ctx)
	if err != nil {
		return err
	}

	if cfg.Cache.Path != "" {
		store, err := hashstore.Open(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		changed, err := store.Changed(ctx, cfg.Module.Name, res.Hashes)
		if err != nil {
			return err
		}
		if err := store.Put(ctx, cfg.Module.Name, res.Hashes); err != nil {
			return err
		}
		if gateOnCache && !changed {
			slog.Info("No source changes, skipping render stages", "module", cfg.Module.Name)
			return nil
		}
	}

	r, err := render.New(h, cfg)
	if err != nil {
		return err
	}
	r.SetRecorder(rec)

	var errs []error
	if err := r.Pages(ctx, cfg.Module.Name); err != nil {
		errs = append(errs, err)
	}

	summaryPath := filepath.Join(cfg.Output.Directory, cfg.Module.Name+".html")
	if err := r.Summary(ctx, cfg.Module.Name, summaryPath); err != nil {
		errs = append(errs, err)
	}
	readmePath := filepath.Join(cfg.Output.Directory, "README.md")
	if err := r.Readme(ctx, cfg.Module.Name, readmePath); err != nil {
		errs = append(errs, err)
	}

	reportBroken(linkcheck.VerifyHTML(summaryPath, cfg.Output.Directory))
	reportBroken(linkcheck.VerifyMarkdown(readmePath, cfg.Output.Directory, cfg.Output.BaseURL))

	return errors.Join(errs...)
}

func reportBroken(broken []linkcheck.Broken, err error) {
	if err != nil {
		slog.Warn("Link verification failed", "error", err)
		return
	}
	for _, b := range broken {
		slog.Warn("Broken link", "source", b.Source, "url", b.URL)
	}
}

func runWatch(ctx context.Context, cfg *config.Config) error {
	h := host.NewShell(cfg.Help.Shell)

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Watch.MetricsListen != "" {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		go func() {
			if err := metrics.Serve(ctx, cfg.Watch.MetricsListen, reg); err != nil {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
	}

	w := watch.New(
		cfg.Module.Name,
		cfg.Module.SourceDir,
		cfg.Module.ScriptExt,
		cfg.Watch.DebounceDuration(),
		cfg.Watch.RebuildIntervalDuration(),
		func(ctx context.Context, buildID, trigger string) error {
			return runPipeline(ctx, cfg, h, rec, true)
		},
	)
	w.SetRecorder(rec)

	if cfg.Watch.NATSURL != "" {
		pub, err := watch.NewPublisher(cfg.Watch.NATSURL, cfg.Watch.NATSSubject)
		if err != nil {
			return err
		}
		defer pub.Close()
		w.SetPublisher(pub)
	}

	return w.Start(ctx)
}
