package processing

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Guizzs26/ballot_register/internal/ballot"
	"github.com/Guizzs26/ballot_register/internal/event"
	"github.com/Guizzs26/ballot_register/internal/metrics"
	"github.com/Guizzs26/ballot_register/internal/model"
	"github.com/Guizzs26/ballot_register/internal/report"
)

// StandingsSink receives a snapshot after every change to the register.
type StandingsSink interface {
	PublishStandings(ctx context.Context, s model.Standings) error
}

// Kafka messages that never decoded into a vote are counted under this reason.
const invalidMessageReason = "invalid_message"

type Option func(*VoteProcessor)

func WithAuthorizer(a Authorizer) Option {
	return func(vp *VoteProcessor) { vp.authorize = a }
}

func WithSinks(sinks ...StandingsSink) Option {
	return func(vp *VoteProcessor) { vp.sinks = append(vp.sinks, sinks...) }
}

func WithReportInterval(d time.Duration) Option {
	return func(vp *VoteProcessor) { vp.reportInterval = d }
}

// VoteProcessor is the single writer in front of a ballot.Register. Every
// call into the register goes through mu.
type VoteProcessor struct {
	consumer       event.VoteConsumer
	metrics        *metrics.ProcessorMetrics
	authorize      Authorizer
	sinks          []StandingsSink
	reportInterval time.Duration
	publishTimeout time.Duration
	now            func() time.Time

	mu       sync.RWMutex
	register *ballot.Register

	// pubMu is taken before mu is released so sinks see snapshots in the
	// order the register changed.
	pubMu sync.Mutex
}

func NewVoteProcessor(r *ballot.Register, c event.VoteConsumer, m *metrics.ProcessorMetrics, opts ...Option) *VoteProcessor {
	vp := &VoteProcessor{
		consumer:       c,
		metrics:        m,
		reportInterval: 5 * time.Second,
		publishTimeout: 5 * time.Second,
		now:            time.Now,
		register:       r,
	}
	for _, opt := range opts {
		opt(vp)
	}
	return vp
}

// Run consumes votes until ctx is canceled, logging the standings table on
// every report tick whether or not votes are flowing. It returns once the
// consumer is no longer being read.
func (vp *VoteProcessor) Run(ctx context.Context) error {
	rTicker := time.NewTicker(vp.reportInterval)
	defer rTicker.Stop()

	votes := make(chan model.Vote)
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		vp.consume(ctx, votes)
	}()

	for {
		select {
		case <-ctx.Done():
			<-readDone
			log.Println("Vote processor receiving signal to stop.")
			return nil

		case <-rTicker.C:
			vp.printResults()

		case v := <-votes:
			// rejections are already logged and counted
			_ = vp.CastVote(ctx, v)
		}
	}
}

// consume blocks in ReadMessage, so it runs apart from the report ticker.
func (vp *VoteProcessor) consume(ctx context.Context, out chan<- model.Vote) {
	for {
		v, err := vp.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, event.ErrInvalidVote) {
				vp.metrics.VotesRejected.WithLabelValues(invalidMessageReason).Inc()
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		select {
		case out <- v:
		case <-ctx.Done():
			return
		}
	}
}

func (vp *VoteProcessor) RegisterCandidate(ctx context.Context, name string) error {
	s, err := vp.commit(func(r *ballot.Register) error {
		return r.RegisterCandidate(name)
	})
	if err != nil {
		log.Printf("[REJECTED CANDIDATE] %v", err)
		return err
	}

	log.Printf("[NEW CANDIDATE] %s", name)
	vp.metrics.CandidatesRegistered.Inc()
	vp.publish(ctx, s)
	return nil
}

// CastVote applies v to the register. The returned error, if any, wraps one
// of the ballot sentinel errors.
func (vp *VoteProcessor) CastVote(ctx context.Context, v model.Vote) error {
	start := time.Now()

	if vp.authorize != nil {
		if err := vp.authorize(ctx, v.VoterID); err != nil {
			vp.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
			vp.reject(v, err)
			return err
		}
	}

	s, err := vp.commit(func(r *ballot.Register) error {
		return r.CastVote(v.VoterID, v.Candidate)
	})
	vp.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
	if err != nil {
		vp.reject(v, err)
		return err
	}

	log.Printf("[VALID VOTE] VoterID: %s voted for Candidate: %s", v.VoterID, v.Candidate)
	vp.metrics.VotesAccepted.WithLabelValues(v.Candidate).Inc()
	vp.publish(ctx, s)
	return nil
}

// commit runs mutate under the write lock. On success it returns the new
// snapshot with pubMu held; the caller must hand it to publish.
func (vp *VoteProcessor) commit(mutate func(*ballot.Register) error) (model.Standings, error) {
	vp.mu.Lock()
	if err := mutate(vp.register); err != nil {
		vp.mu.Unlock()
		return model.Standings{}, err
	}
	s := vp.register.Standings(vp.now())
	vp.pubMu.Lock()
	vp.mu.Unlock()
	return s, nil
}

// publish fans s out to the sinks and releases pubMu. The change is already
// committed, so sinks run detached from the caller's cancellation and a
// failing sink never undoes it.
func (vp *VoteProcessor) publish(ctx context.Context, s model.Standings) {
	defer vp.pubMu.Unlock()

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), vp.publishTimeout)
	defer cancel()

	for _, sink := range vp.sinks {
		if err := sink.PublishStandings(pubCtx, s); err != nil {
			log.Printf("Error publishing standings: %v", err)
		}
	}
}

func (vp *VoteProcessor) reject(v model.Vote, err error) {
	reason := ballot.Reason(err)
	vp.metrics.VotesRejected.WithLabelValues(reason).Inc()

	switch {
	case errors.Is(err, ballot.ErrAlreadyVoted):
		log.Printf("[FRAUD DETECTED] Duplicate vote from VoterID: %s for Candidate: %s", v.VoterID, v.Candidate)
	default:
		log.Printf("[REJECTED VOTE] VoterID: %s Candidate: %s: %v", v.VoterID, v.Candidate, err)
	}
}

func (vp *VoteProcessor) Votes(candidate string) (uint64, error) {
	vp.mu.RLock()
	defer vp.mu.RUnlock()
	return vp.register.Votes(candidate)
}

func (vp *VoteProcessor) Winner() (string, error) {
	vp.mu.RLock()
	defer vp.mu.RUnlock()
	return vp.register.Winner()
}

func (vp *VoteProcessor) Standings() model.Standings {
	vp.mu.RLock()
	defer vp.mu.RUnlock()
	return vp.register.Standings(vp.now())
}

func (vp *VoteProcessor) printResults() {
	s := vp.Standings()

	log.Println("--- CURRENT STANDINGS ---")
	report.PrintStandings(log.Writer(), s)
	log.Println("-------------------------")
}
