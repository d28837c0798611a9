// Package bundle concatenates a module's loose script files into one
// distributable module file and hashes every input for change detection.
package bundle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
	"git.home.luguber.info/inful/helpdocs/internal/host"
	"git.home.luguber.info/inful/helpdocs/internal/metrics"
)

// Options describe one bundling run.
type Options struct {
	Module    string
	SourceDir string
	OutDir    string
	Exclude   string // glob matched against file names; empty excludes nothing
	ScriptExt string // extension of input scripts, without dot
	BundleExt string // extension of the output module file, without dot
}

// Result is the outcome of one bundling run. Hashes maps each included
// file's path to the SHA-256 hex of its bytes at read time; the hash
// store compares it against the previous run for change detection.
type Result struct {
	Files      []string
	Content    string
	Hashes     map[string]string
	OutputPath string
}

// Bundler concatenates scripts into a module file. Each run is
// independent: inputs in, one file out, no state kept.
type Bundler struct {
	opts     Options
	host     host.Host
	recorder metrics.Recorder
}

// New creates a bundler. host may be nil when no runtime reload is wanted
// (tests, dry runs).
func New(opts Options, h host.Host) *Bundler {
	return &Bundler{opts: opts, host: h, recorder: metrics.NoopRecorder{}}
}

// SetRecorder injects a metrics recorder.
func (b *Bundler) SetRecorder(r metrics.Recorder) {
	if r != nil {
		b.recorder = r
	}
}

// Bundle collects every non-excluded script and writes the bundled module
// file, asking the host to reload it afterwards.
func (b *Bundler) Bundle(ctx context.Context) (*Result, error) {
	start := time.Now()

	res, err := b.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.Write(ctx, res); err != nil {
		return nil, err
	}

	b.recorder.ObserveBundleDuration(time.Since(start))
	return res, nil
}

// Collect reads every non-excluded script in the source directory, in
// directory listing order, and returns the ordered file list, the
// newline-joined concatenation, and per-file SHA-256 hashes of the bytes
// at read time. Nothing is written.
func (b *Bundler) Collect(_ context.Context) (*Result, error) {
	if _, err := os.Stat(b.opts.SourceDir); os.IsNotExist(err) {
		return nil, apperrors.NotFound(apperrors.CategoryBundle, "source directory", b.opts.SourceDir)
	}
	if _, err := os.Stat(b.opts.OutDir); os.IsNotExist(err) {
		return nil, apperrors.NotFound(apperrors.CategoryBundle, "output directory", b.opts.OutDir)
	}

	entries, err := os.ReadDir(b.opts.SourceDir)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, "list source directory")
	}

	suffix := "." + b.opts.ScriptExt
	res := &Result{Hashes: make(map[string]string)}
	var parts []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		if b.opts.Exclude != "" {
			if matched, _ := path.Match(b.opts.Exclude, entry.Name()); matched {
				slog.Debug("Excluding script", "file", entry.Name(), "pattern", b.opts.Exclude)
				continue
			}
		}

		p := filepath.Join(b.opts.SourceDir, entry.Name())
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, fmt.Sprintf("read script %q", p))
		}

		sum := sha256.Sum256(data)
		res.Files = append(res.Files, p)
		res.Hashes[p] = hex.EncodeToString(sum[:])
		parts = append(parts, string(data))
	}

	res.Content = strings.Join(parts, "\n")
	res.OutputPath = filepath.Join(b.opts.OutDir, b.opts.Module+"."+b.opts.BundleExt)
	return res, nil
}

// Write stores the bundle at its output path, overwriting any existing
// file silently, then asks the host to reload the module so downstream
// tooling never sees stale definitions.
func (b *Bundler) Write(ctx context.Context, res *Result) error {
	if err := os.WriteFile(res.OutputPath, []byte(res.Content), 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, "write bundle")
	}

	slog.Info("Bundle written",
		"module", b.opts.Module,
		"files", len(res.Files),
		"output", res.OutputPath)

	if b.host != nil {
		if err := b.host.Reload(ctx, b.opts.Module, res.OutputPath); err != nil {
			return apperrors.Wrap(err, apperrors.CategoryHost, "reload bundled module")
		}
	}
	return nil
}
