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

type Confirm struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewConfirm(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	clk clock.Clock,
) *Confirm {
	return &Confirm{
		repo:  repo,
		cache: availCache,
		audit: auditDispatcher,
		clock: clk,
	}
}

// Execute flips a pending hold to confirmed within its hold window.
// Overlaps are re-checked under the lock, excluding the booking itself,
// in case calendar edits landed while the hold was open.
func (uc *Confirm) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	requesterID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ClientID != requesterID {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	consultant, err := uc.repo.GetConsultantByID(ctx, b.ConsultantID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(consultant.Timezone)

	var confirmed *models.Booking

	err = uc.repo.WithConsultantLock(ctx, b.ConsultantID, func(tx domain.Repository) error {

		// re-read under the lock: status may have moved since the
		// unlocked read above
		cur, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}

		now := uc.clock.Now().In(loc)

		window := domain.OccupiedWindowOf(cur)
		conflicts, err := tx.FindBlockingOverlapsLocked(ctx, cur.ConsultantID, window, now, &cur.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrConflict("time_conflict")
		}

		if err := domain.Confirm(cur, now); err != nil {
			return err
		}

		if err := tx.UpdateBooking(ctx, cur); err != nil {
			return err
		}

		confirmed = cur
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateConsultant(ctx, b.ConsultantID)

	uc.audit.Dispatch(audit.Event{
		ConsultantID: b.ConsultantID,
		ActorType:    string(domain.ActorClient),
		ActorID:      &requesterID,
		Action:       "booking_confirmed",
		Entity:       "booking",
		EntityID:     confirmed.ID.String(),
	})

	return confirmed, nil
}
