package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HamidBoasidah/namaa-sub001/internal/models"
)

// Calendar is the read-only availability source owned by the
// consultant-management side.
type Calendar interface {
	GetActiveWorkingHours(
		ctx context.Context,
		consultantID uint,
		weekday int,
	) ([]models.WorkingHour, error)

	IsHoliday(
		ctx context.Context,
		consultantID uint,
		date time.Time,
	) (bool, error)
}

// BookableInfo is what the catalog resolves for a bookable reference.
type BookableInfo struct {
	DurationMinutes int
	BufferMinutes   int
	Price           float64
}

// Catalog resolves duration, buffer and price for the polymorphic
// bookable reference. Service pricing lives outside this core.
type Catalog interface {
	ResolveBookable(
		ctx context.Context,
		consultantID uint,
		ref BookableRef,
	) (*BookableInfo, error)
}

type Repository interface {
	// -------- Consultant --------
	GetConsultantByID(
		ctx context.Context,
		id uint,
	) (*models.Consultant, error)

	GetConsultantBySlug(
		ctx context.Context,
		slug string,
	) (*models.Consultant, error)

	// -------- Booking (read) --------
	GetBooking(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Booking, error)

	ListBookingsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Booking, error)

	// ListBlockingForPeriod returns blocking bookings whose start falls
	// in [start, end), ordered by start. Used by the availability read
	// path; takes no locks.
	ListBlockingForPeriod(
		ctx context.Context,
		consultantID uint,
		start time.Time,
		end time.Time,
		now time.Time,
	) ([]models.Booking, error)

	// -------- Overlap detection --------
	// FindBlockingOverlaps returns blocking bookings whose occupied
	// window intersects w. excludeID lets confirm re-check the world
	// while ignoring the booking being confirmed.
	FindBlockingOverlaps(
		ctx context.Context,
		consultantID uint,
		w Window,
		now time.Time,
		excludeID *uuid.UUID,
	) ([]models.Booking, error)

	// FindBlockingOverlapsLocked additionally takes row-level exclusive
	// locks on every match. Only valid inside WithConsultantLock.
	FindBlockingOverlapsLocked(
		ctx context.Context,
		consultantID uint,
		w Window,
		now time.Time,
		excludeID *uuid.UUID,
	) ([]models.Booking, error)

	// -------- Booking (write) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// CancelBooking persists a cancellation only while the stored row is
	// still pending or confirmed. A sweep (or another cancel) landing in
	// between leaves the terminal state untouched and the call reports
	// InvalidState instead.
	CancelBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// WithConsultantLock runs fn inside a transaction that serializes
	// all write-path work for one consultant. Concurrent calls for
	// different consultants never contend.
	WithConsultantLock(
		ctx context.Context,
		consultantID uint,
		fn func(tx Repository) error,
	) error

	// -------- Sweep --------
	// ExpirePending bulk-moves lapsed pending holds to expired and
	// returns how many rows changed. Idempotent.
	ExpirePending(
		ctx context.Context,
		now time.Time,
	) (int64, error)
}
