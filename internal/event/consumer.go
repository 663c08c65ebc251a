package event

import (
	"context"

	"github.com/Guizzs26/ballot_register/internal/model"
)

type VoteConsumer interface {
	ReadMessage(ctx context.Context) (model.Vote, error)
	Close() error
}
