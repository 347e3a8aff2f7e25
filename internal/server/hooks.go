package server

import (
	"context"
	"time"

	"github.com/polytrie/polytrie/pkg/observability"
)

// metricLookupHooks feeds lookup events into prometheus.
type metricLookupHooks struct {
	observability.NoopLookupHooks
}

func (metricLookupHooks) OnLookup(_ context.Context, _ string, found bool, d time.Duration) {
	outcome := "miss"
	if found {
		outcome = "hit"
	}
	lookupsTotal.WithLabelValues(outcome).Inc()
	lookupDuration.Observe(d.Seconds())
}

// metricBuildHooks feeds reload events into prometheus. Reloads triggered by
// the manifest watcher count the same as reloads via POST /v1/reload.
type metricBuildHooks struct {
	observability.NoopBuildHooks
}

func (metricBuildHooks) OnReload(_ context.Context, _ string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	reloadsTotal.WithLabelValues(status).Inc()
}

// registerMetricHooks wires the prometheus-backed hooks into the global
// observability registry.
func registerMetricHooks() {
	observability.SetLookupHooks(metricLookupHooks{})
	observability.SetBuildHooks(metricBuildHooks{})
}
