package simulation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Guizzs26/ballot_register/internal/event"
	"github.com/Guizzs26/ballot_register/internal/model"
)

const (
	fraudFrequency   = 5  // every 5th vote replays the last legitimate voter
	writeInFrequency = 11 // every 11th vote names an unregistered candidate
	writeInCandidate = "write-in"
)

type Simulator struct {
	eventPublisher event.VotePublisher
	candidates     []string
	voters         int
	interval       time.Duration
}

func New(ep event.VotePublisher, candidates []string, voters int, interval time.Duration) (*Simulator, error) {
	if len(candidates) == 0 {
		return nil, errors.New("simulator needs at least one candidate")
	}
	if voters <= 0 {
		return nil, errors.New("simulator needs a positive voter population")
	}
	return &Simulator{
		eventPublisher: ep,
		candidates:     candidates,
		voters:         voters,
		interval:       interval,
	}, nil
}

func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var fraudCounter, writeInCounter int
	var lastLegitVoterID string

	for {
		select {
		case <-ctx.Done():
			log.Println("Simulator received shutdown signal")
			return nil

		case <-ticker.C:
			var voterID, candidate string
			fraudCounter++
			writeInCounter++
			candidate = s.candidates[rand.Intn(len(s.candidates))]

			switch {
			case fraudCounter >= fraudFrequency && lastLegitVoterID != "":
				log.Println("generating a duplicate vote on purpose")
				voterID = lastLegitVoterID
				fraudCounter = 0
			default:
				voterID = fmt.Sprintf("voter-%d", rand.Intn(s.voters))
				lastLegitVoterID = voterID
			}
			if writeInCounter >= writeInFrequency {
				log.Println("generating a write-in vote on purpose")
				candidate = writeInCandidate
				writeInCounter = 0
			}

			v := model.NewVote(voterID, candidate)

			publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			log.Printf("Generating vote: VoterID=%s, Candidate=%s", v.VoterID, v.Candidate)
			if err := s.eventPublisher.PublishMessage(publishCtx, v, v.VoterID); err != nil {
				log.Printf("Failed to publish vote: %v", err)
			}
			cancel()
		}
	}
}
