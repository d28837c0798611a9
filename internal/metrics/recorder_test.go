package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveBundleDuration(time.Second)
	r.AddPagesRendered(3)
	r.IncExtractFailure()
	r.IncRebuild("success")
	r.ObserveRebuildDuration(time.Second)
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveBundleDuration(250 * time.Millisecond)
	r.AddPagesRendered(5)
	r.IncExtractFailure()
	r.IncRebuild("success")
	r.IncRebuild("failed")
	r.ObserveRebuildDuration(time.Second)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["helpdocs_bundle_duration_seconds"])
	require.True(t, names["helpdocs_pages_rendered_total"])
	require.True(t, names["helpdocs_extract_failures_total"])
	require.True(t, names["helpdocs_rebuilds_total"])
	require.True(t, names["helpdocs_rebuild_duration_seconds"])
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var r *PrometheusRecorder
	r.ObserveBundleDuration(time.Second)
	r.AddPagesRendered(1)
	r.IncExtractFailure()
	r.IncRebuild("success")
	r.ObserveRebuildDuration(time.Second)
}
