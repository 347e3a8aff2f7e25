package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polytrie_http_requests_total",
		Help: "Total number of HTTP requests, labelled by route and status code.",
	}, []string{"route", "status"})

	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polytrie_lookups_total",
		Help: "Total number of lookup queries, labelled by outcome.",
	}, []string{"outcome"})

	lookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polytrie_lookup_duration_seconds",
		Help:    "Lookup latency in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
	})

	reloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polytrie_reloads_total",
		Help: "Total number of manifest reloads, labelled by status.",
	}, []string{"status"})

	lexiconNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "polytrie_lexicon_nodes",
		Help: "Number of nodes in the currently served lexicon.",
	})
)
