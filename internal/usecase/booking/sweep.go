package booking

import (
	"context"

	"github.com/HamidBoasidah/namaa-sub001/internal/clock"
	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
)

// ExpireSweep moves lapsed pending holds to the expired terminal state.
// Running it twice, or concurrently with confirm/cancel, is safe: a row
// already out of pending is simply not matched. Correctness never
// depends on it — the blocking predicate and confirm both check expiry
// themselves — it only keeps storage tidy.
type ExpireSweep struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewExpireSweep(repo domain.Repository, clk clock.Clock) *ExpireSweep {
	return &ExpireSweep{
		repo:  repo,
		clock: clk,
	}
}

func (uc *ExpireSweep) Execute(ctx context.Context) (int64, error) {
	return uc.repo.ExpirePending(ctx, uc.clock.Now())
}
