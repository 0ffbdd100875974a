package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VotesTotal counts vote toggles by action (UP, DOWN) and result (created, removed, noop, not_found, error)
	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picshare_votes_total",
			Help: "Total number of vote toggles",
		},
		[]string{"action", "result"},
	)

	// HTTPRequestDuration tracks handler latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "picshare_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RankSyncDropped counts score updates dropped because the worker queue was full
	RankSyncDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "picshare_rank_sync_dropped_total",
			Help: "Score updates dropped by the rank sync worker",
		},
	)
)

const (
	VoteCreated  = "created"
	VoteRemoved  = "removed"
	VoteNoop     = "noop"
	VoteNotFound = "not_found"
	VoteError    = "error"
)
