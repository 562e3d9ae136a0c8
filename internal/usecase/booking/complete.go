package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/HamidBoasidah/namaa-sub001/internal/audit"
	"github.com/HamidBoasidah/namaa-sub001/internal/clock"
	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/models"
	"github.com/HamidBoasidah/namaa-sub001/internal/timezone"
)

type Complete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewComplete(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	clk clock.Clock,
) *Complete {
	return &Complete{
		repo:  repo,
		audit: auditDispatcher,
		clock: clk,
	}
}

func (uc *Complete) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	adminID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	consultant, err := uc.repo.GetConsultantByID(ctx, b.ConsultantID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().In(timezone.Location(consultant.Timezone))

	if err := domain.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ConsultantID: b.ConsultantID,
		ActorType:    string(domain.ActorAdmin),
		ActorID:      &adminID,
		Action:       "booking_completed",
		Entity:       "booking",
		EntityID:     b.ID.String(),
	})

	return b, nil
}
