package store

import (
	"context"

	"github.com/Guizzs26/ballot_register/internal/model"
)

// StandingsStore mirrors published standings for readers outside the
// process. The register never reads it back.
type StandingsStore interface {
	PublishStandings(ctx context.Context, s model.Standings) error
	GetTallies(ctx context.Context) (map[string]uint64, error)
	GetLeader(ctx context.Context) (string, error)
	Close() error
}
