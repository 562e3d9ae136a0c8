package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
	"github.com/HamidBoasidah/namaa-sub001/internal/models"
)

// fakeClock pins "now" so hold expiry and past-time rules are
// deterministic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeStore is an in-memory stand-in for the Postgres layer. The
// per-consultant mutex in WithConsultantLock mirrors the advisory-lock
// serialization of the real repository.
type fakeStore struct {
	mu          sync.Mutex
	consultants map[uint]models.Consultant
	services    map[uint]models.ConsultantService
	bookings    map[uuid.UUID]models.Booking
	hours       []models.WorkingHour
	holidays    map[uint]map[string]bool

	consultantLocks map[uint]*sync.Mutex
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		consultants:     make(map[uint]models.Consultant),
		services:        make(map[uint]models.ConsultantService),
		bookings:        make(map[uuid.UUID]models.Booking),
		holidays:        make(map[uint]map[string]bool),
		consultantLocks: make(map[uint]*sync.Mutex),
	}
}

func (s *fakeStore) addHoliday(consultantID uint, date time.Time) {
	if s.holidays[consultantID] == nil {
		s.holidays[consultantID] = make(map[string]bool)
	}
	s.holidays[consultantID][date.Format("2006-01-02")] = true
}

func (s *fakeStore) lockFor(consultantID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consultantLocks[consultantID] == nil {
		s.consultantLocks[consultantID] = &sync.Mutex{}
	}
	return s.consultantLocks[consultantID]
}

// fakeRepo implements domain.Repository, Calendar and Catalog over the
// store.
type fakeRepo struct {
	store *fakeStore
}

func newFakeRepo(store *fakeStore) *fakeRepo {
	return &fakeRepo{store: store}
}

func (r *fakeRepo) GetConsultantByID(_ context.Context, id uint) (*models.Consultant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.consultants[id]
	if !ok {
		return nil, httperr.ErrNotFound("consultant_not_found")
	}
	return &c, nil
}

func (r *fakeRepo) GetConsultantBySlug(_ context.Context, slug string) (*models.Consultant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, c := range r.store.consultants {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, httperr.ErrNotFound("consultant_not_found")
}

func (r *fakeRepo) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	return &b, nil
}

func (r *fakeRepo) ListBookingsForClient(_ context.Context, clientID uint) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBlockingForPeriod(
	_ context.Context,
	consultantID uint,
	start, end, now time.Time,
) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.ConsultantID != consultantID {
			continue
		}
		if b.StartAt.Before(start) || !b.StartAt.Before(end) {
			continue
		}
		bb := b
		if domain.IsBlocking(&bb, now) {
			out = append(out, bb)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindBlockingOverlaps(
	_ context.Context,
	consultantID uint,
	w domain.Window,
	now time.Time,
	excludeID *uuid.UUID,
) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.ConsultantID != consultantID {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		bb := b
		if !domain.IsBlocking(&bb, now) {
			continue
		}
		if w.Overlaps(domain.OccupiedWindowOf(&bb)) {
			out = append(out, bb)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindBlockingOverlapsLocked(
	ctx context.Context,
	consultantID uint,
	w domain.Window,
	now time.Time,
	excludeID *uuid.UUID,
) ([]models.Booking, error) {
	return r.FindBlockingOverlaps(ctx, consultantID, w, now, excludeID)
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.store.bookings[b.ID] = *b
	return nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.bookings[b.ID] = *b
	return nil
}

func (r *fakeRepo) CancelBooking(_ context.Context, b *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// same status guard the SQL update carries
	cur, ok := r.store.bookings[b.ID]
	if !ok {
		return httperr.ErrInvalidState("not_cancellable")
	}
	switch domain.Status(cur.Status) {
	case domain.StatusPending, domain.StatusConfirmed:
	default:
		return httperr.ErrInvalidState("not_cancellable")
	}

	r.store.bookings[b.ID] = *b
	return nil
}

func (r *fakeRepo) WithConsultantLock(
	_ context.Context,
	consultantID uint,
	fn func(tx domain.Repository) error,
) error {
	lock := r.store.lockFor(consultantID)
	lock.Lock()
	defer lock.Unlock()
	return fn(r)
}

func (r *fakeRepo) ExpirePending(_ context.Context, now time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var affected int64
	for id, b := range r.store.bookings {
		if b.Status == string(domain.StatusPending) && b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
			b.Status = string(domain.StatusExpired)
			b.ExpiresAt = nil
			r.store.bookings[id] = b
			affected++
		}
	}
	return affected, nil
}

// -------- Calendar --------

func (r *fakeRepo) GetActiveWorkingHours(
	_ context.Context,
	consultantID uint,
	weekday int,
) ([]models.WorkingHour, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []models.WorkingHour
	for _, wh := range r.store.hours {
		if wh.ConsultantID == consultantID && wh.Weekday == weekday && wh.Active {
			out = append(out, wh)
		}
	}
	return out, nil
}

func (r *fakeRepo) IsHoliday(_ context.Context, consultantID uint, date time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.holidays[consultantID][date.Format("2006-01-02")], nil
}

// -------- Catalog --------

func (r *fakeRepo) ResolveBookable(
	_ context.Context,
	consultantID uint,
	ref domain.BookableRef,
) (*domain.BookableInfo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	switch ref.Kind {
	case domain.BookableConsultant:
		c, ok := r.store.consultants[ref.ID]
		if !ok {
			return nil, httperr.ErrNotFound("consultant_not_found")
		}
		return &domain.BookableInfo{
			DurationMinutes: c.SessionMinutes,
			BufferMinutes:   c.BufferMinutes,
			Price:           c.SessionPrice,
		}, nil
	case domain.BookableService:
		s, ok := r.store.services[ref.ID]
		if !ok || s.ConsultantID != consultantID || !s.Active {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return &domain.BookableInfo{
			DurationMinutes: s.DurationMin,
			BufferMinutes:   s.BufferMin,
			Price:           s.Price,
		}, nil
	default:
		return nil, httperr.ErrValidation("invalid_bookable")
	}
}

var (
	_ domain.Repository = (*fakeRepo)(nil)
	_ domain.Calendar   = (*fakeRepo)(nil)
	_ domain.Catalog    = (*fakeRepo)(nil)
)
