package model

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID        string    `json:"id"`
	VoterID   string    `json:"voter_id"`
	Candidate string    `json:"candidate"`
	Timestamp time.Time `json:"timestamp"`
}

// NewVote stamps a ballot with a fresh event ID and the current time.
func NewVote(voterID, candidate string) Vote {
	return Vote{
		ID:        uuid.NewString(),
		VoterID:   voterID,
		Candidate: candidate,
		Timestamp: time.Now(),
	}
}
