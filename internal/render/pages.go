package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
	"git.home.luguber.info/inful/helpdocs/internal/helptext"
)

// Pages renders command pages for name, which may be a single command or a
// module. For a module, every exported command is rendered minus the
// configured exclusions; a failing command logs and is skipped so one bad
// help document cannot abort the whole batch, and the accumulated failures
// are returned joined. An unknown name fails with a not-found error and
// writes nothing.
func (r *Renderer) Pages(ctx context.Context, name string) error {
	commands, err := r.host.ModuleCommands(ctx, name)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Not a module; try it as a single command.
			if perr := r.CommandPage(ctx, name); perr != nil {
				if apperrors.IsNotFound(perr) {
					return apperrors.NotFound(apperrors.CategoryRender, "command or module", name)
				}
				return perr
			}
			return nil
		}
		return err
	}

	included := make([]string, 0, len(commands))
	for _, c := range commands {
		if r.excluded.Has(c) {
			slog.Debug("Skipping excluded command", "command", c)
			continue
		}
		included = append(included, c)
	}

	var errs []error
	for i, c := range included {
		slog.Info("Rendering command page", "command", c, "index", i+1, "total", len(included))
		if err := r.CommandPage(ctx, c); err != nil {
			r.recorder.IncExtractFailure()
			slog.Warn("Command page failed, continuing batch", "command", c, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
		}
	}
	return errors.Join(errs...)
}

// CommandPage renders one command's HTML page to
// <OutDir>/<PagesDir>/<Command>.html. The final document is
// header + body + footer; nothing is escaped beyond the Syntax and
// parameter-name angle brackets.
func (r *Renderer) CommandPage(ctx context.Context, command string) error {
	help, err := r.host.CommandHelp(ctx, command, r.cfg.Help.Width)
	if err != nil {
		return err
	}

	fields, err := r.extract(help)
	if err != nil {
		return err
	}

	out := filepath.Join(r.pagesDir(), command+".html")
	if err := writeOutput(out, r.header+pageBody(fields)+r.footer); err != nil {
		return err
	}

	r.recorder.AddPagesRendered(1)
	return nil
}

func pageBody(f *helptext.Fields) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h1>%s</h1>\n", f.Name)
	fmt.Fprintf(&b, "<p>%s</p>\n", f.Synopsis)
	fmt.Fprintf(&b, "<h2>Syntax</h2>\n<pre>%s</pre>\n", escapeAngles(f.Syntax))
	fmt.Fprintf(&b, "<h2>Description</h2>\n<p>%s</p>\n", f.Description)

	if len(f.Parameters) > 0 {
		b.WriteString("<h2>Parameters</h2>\n")
	}
	for _, p := range f.Parameters {
		fmt.Fprintf(&b, "<h3>-%s</h3>\n<table>\n", escapeAngles(p.Name))
		writeRow(&b, "Description", p.Description)
		writeRow(&b, "Required?", p.Required)
		writeRow(&b, "Position?", p.Position)
		writeRow(&b, "Default value", p.DefaultValue)
		writeRow(&b, "Accept pipeline input?", p.PipelineInput)
		writeRow(&b, "Accept wildcard characters?", p.Wildcards)
		b.WriteString("</table>\n")
	}

	for _, ex := range f.Examples {
		// Example numbers come straight from the source text; gaps stay gaps.
		fmt.Fprintf(&b, "<h2>Example %d</h2>\n<pre>%s</pre>\n", ex.Number, ex.Body)
	}

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td></tr>\n", label, value)
}
