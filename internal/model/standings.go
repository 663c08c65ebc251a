package model

import "time"

type Tally struct {
	Candidate string `json:"candidate"`
	Votes     uint64 `json:"votes"`
}

// Standings is a point-in-time copy of the register, tallies in registration order.
// Leader is empty while no candidate is registered.
type Standings struct {
	Tallies    []Tally   `json:"tallies"`
	Leader     string    `json:"leader,omitempty"`
	TotalVotes uint64    `json:"total_votes"`
	UpdatedAt  time.Time `json:"updated_at"`
}
