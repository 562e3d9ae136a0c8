package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/HamidBoasidah/namaa-sub001/internal/audit"
	"github.com/HamidBoasidah/namaa-sub001/internal/cache"
	"github.com/HamidBoasidah/namaa-sub001/internal/clock"
	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
	"github.com/HamidBoasidah/namaa-sub001/internal/models"
	"github.com/HamidBoasidah/namaa-sub001/internal/timezone"
)

type Cancel struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewCancel(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	clk clock.Clock,
) *Cancel {
	return &Cancel{
		repo:  repo,
		cache: availCache,
		audit: auditDispatcher,
		clock: clk,
	}
}

// Execute cancels a pending or confirmed booking. Cancelling a pending
// hold releases the slot immediately: the row stops being blocking the
// moment its status changes, independent of expires_at.
func (uc *Cancel) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	by domain.CancellerRef,
	reason string,
) (*models.Booking, error) {

	if !by.Valid() {
		return nil, httperr.ErrValidation("invalid_actor")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// clients may only cancel their own bookings; admins any
	if by.ActorType == domain.ActorClient && b.ClientID != by.ID {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	consultant, err := uc.repo.GetConsultantByID(ctx, b.ConsultantID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().In(timezone.Location(consultant.Timezone))

	if err := domain.Cancel(b, by, reason, now); err != nil {
		return nil, err
	}

	// guarded write: if a sweep expired the row after our read, the
	// terminal state wins and we surface InvalidState
	if err := uc.repo.CancelBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.InvalidateConsultant(ctx, b.ConsultantID)

	actorID := by.ID
	uc.audit.Dispatch(audit.Event{
		ConsultantID: b.ConsultantID,
		ActorType:    string(by.ActorType),
		ActorID:      &actorID,
		Action:       "booking_cancelled",
		Entity:       "booking",
		EntityID:     b.ID.String(),
		Metadata:     map[string]any{"reason": reason},
	})

	return b, nil
}
