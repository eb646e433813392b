// Package metrics contains the Prometheus metrics for the turn pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the interview backend.
type Metrics struct {
	// Session metrics
	SessionsStarted prometheus.Counter
	SessionsEnded   prometheus.Counter

	// Turn metrics
	TurnsStarted   prometheus.Counter
	TurnsCompleted prometheus.Counter
	TurnsFailed    *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec

	// Best-effort side computations
	SynthesisFailures prometheus.Counter
	SummaryFallbacks  prometheus.Counter
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_sessions_started_total",
			Help: "Total number of interview sessions started",
		}),
		SessionsEnded: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_sessions_ended_total",
			Help: "Total number of interview sessions ended with a summary",
		}),
		TurnsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_turns_started_total",
			Help: "Total number of turn requests accepted into the pipeline",
		}),
		TurnsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_turns_completed_total",
			Help: "Total number of turns that produced an assistant reply",
		}),
		TurnsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_turns_failed_total",
			Help: "Total number of turns aborted, by pipeline stage",
		}, []string{"stage"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "interview_stage_duration_seconds",
			Help:    "Duration of each pipeline stage",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"stage"}),
		SynthesisFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_synthesis_failures_total",
			Help: "Total number of turns that degraded to a text-only reply",
		}),
		SummaryFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_summary_fallbacks_total",
			Help: "Total number of session summaries replaced by the fallback text",
		}),
	}
}
