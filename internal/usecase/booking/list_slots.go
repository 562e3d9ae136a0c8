package booking

import (
	"context"
	"time"

	"github.com/HamidBoasidah/namaa-sub001/internal/cache"
	"github.com/HamidBoasidah/namaa-sub001/internal/clock"
	"github.com/HamidBoasidah/namaa-sub001/internal/config"
	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ListSlotsInput struct {
	ConsultantID    uint
	Date            time.Time
	DurationMinutes int
	BufferMinutes   int

	// HidePast drops candidates that already started instead of
	// annotating them, for callers that only want offerable slots.
	HidePast bool
}

// ======================================================
// USE CASE
// ======================================================

// ListSlots is the availability read path: candidates from the weekly
// calendar annotated against blocking bookings. It never locks and
// never mutates; the write path re-validates, so serving a few seconds
// of staleness (or a cached copy) is fine.
type ListSlots struct {
	repo     domain.Repository
	calendar domain.Calendar
	cache    *cache.AvailabilityCache
	clock    clock.Clock
	cfg      *config.Config
}

func NewListSlots(
	repo domain.Repository,
	calendar domain.Calendar,
	availCache *cache.AvailabilityCache,
	clk clock.Clock,
	cfg *config.Config,
) *ListSlots {
	return &ListSlots{
		repo:     repo,
		calendar: calendar,
		cache:    availCache,
		clock:    clk,
		cfg:      cfg,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ListSlots) Execute(
	ctx context.Context,
	in ListSlotsInput,
) ([]domain.Slot, error) {

	consultant, err := uc.repo.GetConsultantByID(ctx, in.ConsultantID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(consultant.Timezone)
	date := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		loc,
	)
	dateKey := date.Format("2006-01-02")
	now := uc.clock.Now().In(loc)

	// hide_past responses depend on the clock; only full-day listings
	// are cached
	if !in.HidePast {
		if slots, ok := uc.cache.Get(ctx, consultant.ID, dateKey, in.DurationMinutes, in.BufferMinutes); ok {
			return slots, nil
		}
	}

	// holiday: no slots at all, whatever the weekday says
	holiday, err := uc.calendar.IsHoliday(ctx, consultant.ID, date)
	if err != nil {
		return nil, err
	}
	if holiday {
		return []domain.Slot{}, nil
	}

	hours, err := uc.calendar.GetActiveWorkingHours(ctx, consultant.ID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}

	var ranges []domain.WorkingRange
	for _, wh := range hours {
		if r, ok := domain.ResolveOnDate(wh, date); ok {
			ranges = append(ranges, r)
		}
	}

	var candidates []domain.CandidateSlot
	if in.HidePast {
		candidates = domain.GenerateCandidates(
			ranges,
			in.DurationMinutes,
			in.BufferMinutes,
			uc.cfg.SlotStepMinutes,
			now,
		)
	} else {
		candidates = domain.EnumerateCandidates(
			ranges,
			in.DurationMinutes,
			in.BufferMinutes,
			uc.cfg.SlotStepMinutes,
		)
	}
	if len(candidates) == 0 {
		return []domain.Slot{}, nil
	}

	dayEnd := date.Add(24 * time.Hour)

	// reach one day back so a late booking spilling past midnight
	// still counts against the morning slots
	bookings, err := uc.repo.ListBlockingForPeriod(ctx, consultant.ID, date.Add(-24*time.Hour), dayEnd, now)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.Slot, 0, len(candidates))
	for _, c := range candidates {
		slot := domain.Slot{
			Start:     c.Start,
			End:       c.End,
			Available: true,
		}

		if c.Start.Before(now) {
			slot.Available = false
			slot.Reason = domain.ReasonPast
		} else {
			w := domain.NewOccupiedWindow(c.Start, in.DurationMinutes, in.BufferMinutes)
			for i := range bookings {
				if w.Overlaps(domain.OccupiedWindowOf(&bookings[i])) {
					slot.Available = false
					slot.Reason = domain.ReasonBooked
					break
				}
			}
		}

		slots = append(slots, slot)
	}

	if !in.HidePast {
		uc.cache.Set(ctx, consultant.ID, dateKey, in.DurationMinutes, in.BufferMinutes, slots)
	}

	return slots, nil
}
