package booking

import (
	"context"
	"time"

	"github.com/HamidBoasidah/namaa-sub001/internal/audit"
	"github.com/HamidBoasidah/namaa-sub001/internal/cache"
	"github.com/HamidBoasidah/namaa-sub001/internal/clock"
	"github.com/HamidBoasidah/namaa-sub001/internal/config"
	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
	"github.com/HamidBoasidah/namaa-sub001/internal/models"
	"github.com/HamidBoasidah/namaa-sub001/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreatePendingInput struct {
	ConsultantID uint
	ClientID     uint
	Bookable     domain.BookableRef
	StartAt      time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreatePending struct {
	repo     domain.Repository
	calendar domain.Calendar
	catalog  domain.Catalog
	cache    *cache.AvailabilityCache
	audit    *audit.Dispatcher
	clock    clock.Clock
	cfg      *config.Config
}

func NewCreatePending(
	repo domain.Repository,
	calendar domain.Calendar,
	catalog domain.Catalog,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	clk clock.Clock,
	cfg *config.Config,
) *CreatePending {
	return &CreatePending{
		repo:     repo,
		calendar: calendar,
		catalog:  catalog,
		cache:    availCache,
		audit:    auditDispatcher,
		clock:    clk,
		cfg:      cfg,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute places a time-limited hold on the requested slot. Validation
// and insertion run atomically relative to every other write for the
// same consultant; among concurrent overlapping requests exactly one
// succeeds, the rest get a conflict error.
func (uc *CreatePending) Execute(
	ctx context.Context,
	in CreatePendingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Consultant
	// --------------------------------------------------
	consultant, err := uc.repo.GetConsultantByID(ctx, in.ConsultantID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Bookable -> duration / buffer / price
	// --------------------------------------------------
	if err := validateBookable(in.Bookable); err != nil {
		return nil, err
	}

	info, err := uc.catalog.ResolveBookable(ctx, consultant.ID, in.Bookable)
	if err != nil {
		return nil, err
	}

	if err := validateDuration(info.DurationMinutes); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Start time in the consultant's timezone
	// --------------------------------------------------
	loc := timezone.Location(consultant.Timezone)
	start := in.StartAt.In(loc)
	now := uc.clock.Now().In(loc)

	if err := validateStart(start, now, uc.cfg.SlotAlignMinutes, uc.cfg.MinLeadMinutes); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Holiday + working hours
	// --------------------------------------------------
	end := start.Add(time.Duration(info.DurationMinutes) * time.Minute)

	holiday, err := uc.calendar.IsHoliday(ctx, consultant.ID, start)
	if err != nil {
		return nil, err
	}
	if holiday {
		return nil, httperr.ErrValidation("consultant_on_holiday")
	}

	within, err := uc.withinWorkingHours(ctx, consultant.ID, start, end, info.BufferMinutes)
	if err != nil {
		return nil, err
	}
	if !within {
		return nil, httperr.ErrValidation("outside_working_hours")
	}

	// --------------------------------------------------
	// 5. Locked overlap check + insert (atomic)
	// --------------------------------------------------
	window := domain.NewOccupiedWindow(start, info.DurationMinutes, info.BufferMinutes)
	expiresAt := now.Add(time.Duration(uc.cfg.HoldMinutes) * time.Minute)

	var created *models.Booking

	err = uc.repo.WithConsultantLock(ctx, consultant.ID, func(tx domain.Repository) error {

		conflicts, err := tx.FindBlockingOverlapsLocked(ctx, consultant.ID, window, now, nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrConflict("time_conflict")
		}

		b := &models.Booking{
			ClientID:           in.ClientID,
			ConsultantID:       consultant.ID,
			BookableType:       string(in.Bookable.Kind),
			BookableID:         in.Bookable.ID,
			StartAt:            start,
			EndAt:              end,
			DurationMinutes:    info.DurationMinutes,
			BufferAfterMinutes: info.BufferMinutes,
			Price:              info.Price,
			Status:             string(domain.InitialStatus()),
			ExpiresAt:          &expiresAt,
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		created = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Side effects
	// --------------------------------------------------
	uc.cache.InvalidateConsultant(ctx, consultant.ID)

	uc.audit.Dispatch(audit.Event{
		ConsultantID: consultant.ID,
		ActorType:    string(domain.ActorClient),
		ActorID:      &in.ClientID,
		Action:       "booking_hold_created",
		Entity:       "booking",
		EntityID:     created.ID.String(),
	})

	return created, nil
}

// withinWorkingHours checks that the occupied window fits entirely into
// one active working-hour range of that weekday.
func (uc *CreatePending) withinWorkingHours(
	ctx context.Context,
	consultantID uint,
	start, end time.Time,
	bufferMin int,
) (bool, error) {

	hours, err := uc.calendar.GetActiveWorkingHours(ctx, consultantID, int(start.Weekday()))
	if err != nil {
		return false, err
	}

	occupiedEnd := end.Add(time.Duration(bufferMin) * time.Minute)

	for _, wh := range hours {
		r, ok := domain.ResolveOnDate(wh, start)
		if !ok {
			continue
		}
		if !start.Before(r.Start) && !occupiedEnd.After(r.End) {
			return true, nil
		}
	}

	return false, nil
}
