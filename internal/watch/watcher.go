// Package watch re-runs the documentation pipeline when the module's
// source scripts change. One goroutine owns the loop; rebuilds are
// debounced so editor save storms produce a single run.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
	"git.home.luguber.info/inful/helpdocs/internal/metrics"
)

// RunFunc executes one full pipeline run. buildID tags the run in logs and
// events; trigger says what caused it ("fsnotify", "schedule").
type RunFunc func(ctx context.Context, buildID, trigger string) error

// Watcher monitors the source directory and triggers debounced rebuilds.
type Watcher struct {
	module    string
	sourceDir string
	scriptExt string
	debounce  time.Duration
	interval  time.Duration // periodic full rebuild; zero disables
	run       RunFunc

	trigger   chan string
	publisher *Publisher
	recorder  metrics.Recorder
}

// New creates a watcher for the given source directory.
func New(module, sourceDir, scriptExt string, debounce, interval time.Duration, run RunFunc) *Watcher {
	return &Watcher{
		module:    module,
		sourceDir: sourceDir,
		scriptExt: scriptExt,
		debounce:  debounce,
		interval:  interval,
		run:       run,
		trigger:   make(chan string, 1),
		recorder:  metrics.NoopRecorder{},
	}
}

// SetPublisher injects an optional rebuild-event publisher.
func (w *Watcher) SetPublisher(p *Publisher) { w.publisher = p }

// SetRecorder injects a metrics recorder.
func (w *Watcher) SetRecorder(r metrics.Recorder) {
	if r != nil {
		w.recorder = r
	}
}

// Start runs the watch loop until ctx is done. An initial build runs
// immediately so the output is fresh before the first change arrives.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryWatch, "create file watcher")
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.sourceDir); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryWatch, fmt.Sprintf("watch directory %q", w.sourceDir))
	}

	if w.interval > 0 {
		sched, err := gocron.NewScheduler()
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryWatch, "create scheduler")
		}
		if _, err := sched.NewJob(
			gocron.DurationJob(w.interval),
			gocron.NewTask(func() { w.queueTrigger("schedule") }),
			gocron.WithName("periodic-rebuild"),
		); err != nil {
			return apperrors.Wrap(err, apperrors.CategoryWatch, "schedule periodic rebuild")
		}
		sched.Start()
		defer func() { _ = sched.Shutdown() }()
	}

	slog.Info("Watching module sources",
		"module", w.module,
		"source_dir", w.sourceDir,
		"debounce", w.debounce)

	w.execute(ctx, "startup")

	// Timer is parked far in the future until a trigger arms it.
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := ""
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			slog.Debug("Source change detected", "file", ev.Name, "op", ev.Op.String())
			pending = "fsnotify"
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", "error", err)

		case t := <-w.trigger:
			pending = t
			timer.Reset(w.debounce)

		case <-timer.C:
			if pending == "" {
				continue
			}
			t := pending
			pending = ""
			w.execute(ctx, t)
		}
	}
}

// queueTrigger requests a rebuild without blocking; a pending trigger
// already covers the request.
func (w *Watcher) queueTrigger(trigger string) {
	select {
	case w.trigger <- trigger:
	default:
	}
}

// relevant filters watcher events down to script file changes.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, "."+w.scriptExt) {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) execute(ctx context.Context, trigger string) {
	buildID := uuid.NewString()
	slog.Info("Rebuilding documentation", "build_id", buildID, "trigger", trigger)

	start := time.Now()
	err := w.run(ctx, buildID, trigger)
	elapsed := time.Since(start)

	outcome := "success"
	if err != nil {
		outcome = "failed"
		slog.Error("Rebuild failed", "build_id", buildID, "error", err)
	} else {
		slog.Info("Rebuild finished", "build_id", buildID, "duration", elapsed)
	}

	w.recorder.IncRebuild(outcome)
	w.recorder.ObserveRebuildDuration(elapsed)

	if w.publisher != nil {
		event := RebuildEvent{
			BuildID:   buildID,
			Module:    w.module,
			Trigger:   trigger,
			Duration:  elapsed.String(),
			Success:   err == nil,
			Timestamp: time.Now().UTC(),
		}
		if perr := w.publisher.Publish(event); perr != nil {
			slog.Warn("Failed to publish rebuild event", "build_id", buildID, "error", perr)
		}
	}
}
