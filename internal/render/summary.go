package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Entry is one command in a module summary.
type Entry struct {
	Name       string
	Synopsis   string
	InProgress bool
}

// moduleEntries enumerates a module's commands minus exclusions and
// extracts each command's synopsis. An unknown module fails outright; a
// command whose help cannot be fetched or scraped is logged, skipped and
// reported in the joined error while the rest of the summary proceeds.
func (r *Renderer) moduleEntries(ctx context.Context, module string) ([]Entry, error) {
	commands, err := r.host.ModuleCommands(ctx, module)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(commands))
	var errs []error
	for _, c := range commands {
		if r.excluded.Has(c) {
			continue
		}
		help, err := r.host.CommandHelp(ctx, c, r.cfg.Help.Width)
		if err != nil {
			slog.Warn("Help lookup failed, skipping summary entry", "command", c, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
			continue
		}
		fields, err := r.extract(help)
		if err != nil {
			r.recorder.IncExtractFailure()
			slog.Warn("Extraction failed, skipping summary entry", "command", c, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
			continue
		}
		entries = append(entries, Entry{
			Name:       c,
			Synopsis:   fields.Synopsis,
			InProgress: r.inProgress.Has(c),
		})
	}
	return entries, errors.Join(errs...)
}

// Summary renders the HTML module summary. outPath overrides the default
// <OutDir>/<Module>.html when non-empty. An unknown module fails with a
// not-found error before anything is written.
func (r *Renderer) Summary(ctx context.Context, module, outPath string) error {
	entries, entryErr := r.moduleEntries(ctx, module)
	if entries == nil && entryErr != nil {
		return entryErr
	}

	if outPath == "" {
		outPath = filepath.Join(r.cfg.Output.Directory, module+".html")
	}

	var b strings.Builder
	b.WriteString(r.header)
	fmt.Fprintf(&b, "<p>The %s module provides %d commands:</p>\n<ul>\n", module, len(entries))
	for _, e := range entries {
		marker := ""
		if e.InProgress {
			marker = "IN PROGRESS: "
		}
		fmt.Fprintf(&b, "<li>%s<a href=\"%s/%s.html\">%s</a>: %s</li>\n",
			marker, r.cfg.Output.PagesDir, e.Name, e.Name, e.Synopsis)
	}
	b.WriteString("</ul>\n")
	b.WriteString(r.footer)

	if err := writeOutput(outPath, b.String()); err != nil {
		return err
	}
	slog.Info("Summary written", "module", module, "entries", len(entries), "output", outPath)
	return entryErr
}

// Readme renders the Markdown module summary. Links are absolute, rooted
// at output.base_url; nothing is HTML-escaped. outPath overrides the
// default <OutDir>/README.md when non-empty.
func (r *Renderer) Readme(ctx context.Context, module, outPath string) error {
	entries, entryErr := r.moduleEntries(ctx, module)
	if entries == nil && entryErr != nil {
		return entryErr
	}

	if outPath == "" {
		outPath = filepath.Join(r.cfg.Output.Directory, "README.md")
	}

	base := strings.TrimRight(r.cfg.Output.BaseURL, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", module)
	fmt.Fprintf(&b, "The %s module provides %d commands:\n\n", module, len(entries))
	for _, e := range entries {
		marker := ""
		if e.InProgress {
			marker = "IN PROGRESS: "
		}
		fmt.Fprintf(&b, "- %s[%s](%s/%s/%s.html): %s\n",
			marker, e.Name, base, r.cfg.Output.PagesDir, e.Name, e.Synopsis)
	}

	if err := writeOutput(outPath, b.String()); err != nil {
		return err
	}
	slog.Info("README written", "module", module, "entries", len(entries), "output", outPath)
	return entryErr
}
