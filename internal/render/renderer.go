// Package render produces the HTML command pages and the module summary
// pages (HTML and Markdown) from extracted help text. Page bodies are
// built by direct string concatenation so the output stays byte-for-byte
// comparable across runs; there is deliberately no template engine here.
package render

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/helpdocs/internal/config"
	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
	"git.home.luguber.info/inful/helpdocs/internal/helptext"
	"git.home.luguber.info/inful/helpdocs/internal/host"
	"git.home.luguber.info/inful/helpdocs/internal/metrics"
	"git.home.luguber.info/inful/helpdocs/internal/util/sets"
)

const defaultHeader = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>
`

const defaultFooter = `</body>
</html>
`

// Renderer turns help text into documentation pages. One Renderer may be
// reused across invocations; it keeps no per-run state.
type Renderer struct {
	host       host.Host
	extractor  helptext.Extractor
	cfg        *config.Config
	recorder   metrics.Recorder
	header     string
	footer     string
	excluded   sets.Set[string]
	inProgress sets.Set[string]
}

// New creates a renderer, pre-loading the header and footer templates as
// raw text. Missing template paths fall back to a minimal built-in frame.
func New(h host.Host, cfg *config.Config) (*Renderer, error) {
	r := &Renderer{
		host:       h,
		extractor:  helptext.New(),
		cfg:        cfg,
		recorder:   metrics.NoopRecorder{},
		header:     defaultHeader,
		footer:     defaultFooter,
		excluded:   sets.New(cfg.Docs.ExcludeCommands...),
		inProgress: sets.New(cfg.Docs.InProgress...),
	}

	if cfg.Docs.HeaderFile != "" {
		data, err := os.ReadFile(cfg.Docs.HeaderFile)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CategoryRender, "read header template")
		}
		r.header = string(data)
	}
	if cfg.Docs.FooterFile != "" {
		data, err := os.ReadFile(cfg.Docs.FooterFile)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CategoryRender, "read footer template")
		}
		r.footer = string(data)
	}

	return r, nil
}

// SetRecorder injects a metrics recorder.
func (r *Renderer) SetRecorder(rec metrics.Recorder) {
	if rec != nil {
		r.recorder = rec
	}
}

// SetExtractor swaps the help extractor (tests, future structured sources).
func (r *Renderer) SetExtractor(e helptext.Extractor) {
	if e != nil {
		r.extractor = e
	}
}

func (r *Renderer) pagesDir() string {
	return filepath.Join(r.cfg.Output.Directory, r.cfg.Output.PagesDir)
}

// extract spools help text through a scratch file before scraping it. The
// scratch file is a scoped resource: created per command, removed on every
// path out of this function.
func (r *Renderer) extract(help string) (*helptext.Fields, error) {
	tmp, err := os.CreateTemp("", "helpdocs-extract-*.txt")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, "create help extract")
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.WriteString(help); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, "write help extract")
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, "rewind help extract")
	}
	data, err := io.ReadAll(tmp)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, "read help extract")
	}

	return r.extractor.Extract(string(data))
}

// escapeAngles rewrites angle brackets for HTML output. Applied to the
// Syntax line and parameter names only; Markdown output stays raw.
func escapeAngles(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, "create output directory")
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, "write output file")
	}
	return nil
}
