package repositories

import (
	"context"
)

// UnitOfWork executes multi-entity mutations atomically. All related writes
// for one business event (proposal accept cascade, reservation approval)
// commit together or not at all.
type UnitOfWork interface {
	// Do runs fn inside a transaction scope; repositories called with the
	// derived context participate in the same transaction.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
