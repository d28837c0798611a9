// Package metrics defines observability hooks for the documentation
// pipelines. The Recorder interface keeps instrumentation optional: the
// pipelines take a Recorder and get NoopRecorder unless watch mode wires
// up Prometheus.
package metrics

import "time"

// Recorder receives pipeline measurements. Implementations must tolerate
// being called from a single goroutine at a time per pipeline run.
type Recorder interface {
	ObserveBundleDuration(d time.Duration)
	AddPagesRendered(n int)
	IncExtractFailure()
	IncRebuild(outcome string) // outcome: success|failed
	ObserveRebuildDuration(d time.Duration)
}

// NoopRecorder is the default Recorder; it does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveBundleDuration(time.Duration)  {}
func (NoopRecorder) AddPagesRendered(int)                 {}
func (NoopRecorder) IncExtractFailure()                   {}
func (NoopRecorder) IncRebuild(string)                    {}
func (NoopRecorder) ObserveRebuildDuration(time.Duration) {}
