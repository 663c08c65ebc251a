package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

/*
Metrics Types:

- CounterVec: accepted votes are labelled by candidate, rejected
  votes by reason (already_voted, candidate_not_found, ...). Kafka messages that
  never decoded into a vote count as invalid_message.

- Histogram: distribution of the time spent applying one vote,
  authorization and lock wait included. Publishing the new standings
  to Redis and the websocket hub happens after the timer stops.

Registration:
Metrics are registered against the Registerer handed to
NewProcessorMetrics. The consumer passes its own registry so the
/metrics handler and the tests never share global state.
*/

type ProcessorMetrics struct {
	VotesAccepted        *prometheus.CounterVec
	VotesRejected        *prometheus.CounterVec
	CandidatesRegistered prometheus.Counter
	ProcessingTime       prometheus.Histogram
}

func NewProcessorMetrics(reg prometheus.Registerer, namespace, subsystem string) *ProcessorMetrics {
	f := promauto.With(reg)
	return &ProcessorMetrics{
		VotesAccepted: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "votes_accepted_total",
				Help:      "Total number of votes recorded in the register",
			},
			[]string{"candidate"},
		),
		VotesRejected: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "votes_rejected_total",
				Help:      "Total number of votes rejected, by reason",
			},
			[]string{"reason"},
		),
		CandidatesRegistered: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "candidates_registered_total",
				Help:      "Total number of candidates registered",
			},
		),
		ProcessingTime: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "vote_processing_time_seconds",
				Help:      "Histogram of vote processing times",
				Buckets:   prometheus.LinearBuckets(0.001, 0.001, 10), // 10 buckets, 1ms to 10ms
			},
		),
	}
}
