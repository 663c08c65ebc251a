package processing

import (
	"context"
	"fmt"

	"github.com/Guizzs26/ballot_register/internal/ballot"
)

// Authorizer decides whether a voter may vote at all. It runs before the
// register is touched; returning an error rejects the vote.
type Authorizer func(ctx context.Context, voterID string) error

// AllowList admits only the given voters. With no voters it admits everyone.
func AllowList(voters ...string) Authorizer {
	if len(voters) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(voters))
	for _, v := range voters {
		allowed[v] = struct{}{}
	}
	return func(_ context.Context, voterID string) error {
		if _, ok := allowed[voterID]; !ok {
			return fmt.Errorf("%w: %q", ballot.ErrNotAuthorized, voterID)
		}
		return nil
	}
}
