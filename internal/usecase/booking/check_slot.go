package booking

import (
	"context"
	"time"

	"github.com/HamidBoasidah/namaa-sub001/internal/clock"
	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CheckSlotInput struct {
	ConsultantID    uint
	StartAt         time.Time
	DurationMinutes int
	BufferMinutes   int
}

// ======================================================
// USE CASE
// ======================================================

// CheckSlot answers "is this one start still free" without enumerating
// the whole day. Like the listing it takes no locks; createPending
// re-validates under the consultant lock, so the answer is advisory.
type CheckSlot struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewCheckSlot(repo domain.Repository, clk clock.Clock) *CheckSlot {
	return &CheckSlot{
		repo:  repo,
		clock: clk,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CheckSlot) Execute(
	ctx context.Context,
	in CheckSlotInput,
) (*domain.Slot, error) {

	consultant, err := uc.repo.GetConsultantByID(ctx, in.ConsultantID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(consultant.Timezone)
	start := in.StartAt.In(loc)
	now := uc.clock.Now().In(loc)

	slot := &domain.Slot{
		Start:     start,
		End:       start.Add(time.Duration(in.DurationMinutes) * time.Minute),
		Available: true,
	}

	if start.Before(now) {
		slot.Available = false
		slot.Reason = domain.ReasonPast
		return slot, nil
	}

	window := domain.NewOccupiedWindow(start, in.DurationMinutes, in.BufferMinutes)
	conflicts, err := uc.repo.FindBlockingOverlaps(ctx, consultant.ID, window, now, nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		slot.Available = false
		slot.Reason = domain.ReasonBooked
	}

	return slot, nil
}
