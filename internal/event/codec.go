package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Guizzs26/ballot_register/internal/model"
)

var ErrInvalidVote = errors.New("invalid vote message")

func encodeVote(v model.Vote) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vote: %w", err)
	}
	return b, nil
}

// decodeVote rejects messages the register could never attribute: a vote
// needs both a voter and a candidate.
func decodeVote(b []byte) (model.Vote, error) {
	var v model.Vote
	if err := json.Unmarshal(b, &v); err != nil {
		return model.Vote{}, fmt.Errorf("%w: %v", ErrInvalidVote, err)
	}
	if v.VoterID == "" || v.Candidate == "" {
		return model.Vote{}, fmt.Errorf("%w: voter_id and candidate are required", ErrInvalidVote)
	}
	return v, nil
}
