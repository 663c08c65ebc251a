package event

import (
	"context"

	"github.com/Guizzs26/ballot_register/internal/model"
)

type VotePublisher interface {
	PublishMessage(ctx context.Context, vote model.Vote, key string) error
	Close() error
}
