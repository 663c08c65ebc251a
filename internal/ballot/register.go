// Package ballot holds the vote-tally register: candidates in registration
// order, a vote count per candidate and the set of voters who already voted.
//
// A Register is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves (see processing.VoteProcessor).
package ballot

import (
	"fmt"
	"time"

	"github.com/Guizzs26/ballot_register/internal/model"
)

type entry struct {
	name  string
	votes uint64
}

type Register struct {
	candidates []entry        // registration order
	index      map[string]int // name -> position in candidates
	voters     map[string]struct{}
}

func New() *Register {
	return &Register{
		index:  make(map[string]int),
		voters: make(map[string]struct{}),
	}
}

// RegisterCandidate appends name with zero votes.
func (r *Register) RegisterCandidate(name string) error {
	if _, ok := r.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrCandidateAlreadyExists, name)
	}
	r.index[name] = len(r.candidates)
	r.candidates = append(r.candidates, entry{name: name})
	return nil
}

// CastVote records one vote by voter for candidate. A repeat voter is rejected
// before the candidate is looked up. Nothing changes when an error is returned.
func (r *Register) CastVote(voter, candidate string) error {
	if _, ok := r.voters[voter]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyVoted, voter)
	}
	i, ok := r.index[candidate]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCandidateNotFound, candidate)
	}
	r.candidates[i].votes++
	r.voters[voter] = struct{}{}
	return nil
}

func (r *Register) Votes(candidate string) (uint64, error) {
	i, ok := r.index[candidate]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrCandidateNotFound, candidate)
	}
	return r.candidates[i].votes, nil
}

// Winner returns the candidate with the most votes. Ties go to the candidate
// registered first, so with no votes at all that is the first candidate.
func (r *Register) Winner() (string, error) {
	if len(r.candidates) == 0 {
		return "", ErrNoVoteRecorded
	}
	best := 0
	for i := 1; i < len(r.candidates); i++ {
		if r.candidates[i].votes > r.candidates[best].votes {
			best = i
		}
	}
	return r.candidates[best].name, nil
}

func (r *Register) HasVoted(voter string) bool {
	_, ok := r.voters[voter]
	return ok
}

func (r *Register) VoterCount() int { return len(r.voters) }

func (r *Register) Len() int { return len(r.candidates) }

// Tallies returns a copy of every candidate's count in registration order.
func (r *Register) Tallies() []model.Tally {
	out := make([]model.Tally, 0, len(r.candidates))
	for _, c := range r.candidates {
		out = append(out, model.Tally{Candidate: c.name, Votes: c.votes})
	}
	return out
}

func (r *Register) Standings(now time.Time) model.Standings {
	s := model.Standings{
		Tallies:    r.Tallies(),
		TotalVotes: uint64(len(r.voters)),
		UpdatedAt:  now,
	}
	if leader, err := r.Winner(); err == nil {
		s.Leader = leader
	}
	return s
}
