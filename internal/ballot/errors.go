package ballot

import "errors"

var (
	ErrCandidateAlreadyExists = errors.New("candidate already exists")
	ErrCandidateNotFound      = errors.New("candidate not found")
	// ErrNotAuthorized is never returned by Register. Integrators return it from
	// their own authorization checks.
	ErrNotAuthorized  = errors.New("voter not authorized")
	ErrAlreadyVoted   = errors.New("voter already voted")
	ErrNoVoteRecorded = errors.New("no vote recorded")
)

// Reason maps an error to a stable label for metrics and API responses.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCandidateAlreadyExists):
		return "candidate_already_exists"
	case errors.Is(err, ErrCandidateNotFound):
		return "candidate_not_found"
	case errors.Is(err, ErrNotAuthorized):
		return "not_authorized"
	case errors.Is(err, ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, ErrNoVoteRecorded):
		return "no_vote_recorded"
	default:
		return "internal"
	}
}
