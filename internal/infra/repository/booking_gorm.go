package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
	"github.com/HamidBoasidah/namaa-sub001/internal/models"
)

// blockingCond selects rows that currently occupy calendar time:
// confirmed, or pending with a hold that has not lapsed yet. Everything
// else is invisible to overlap checks regardless of its timestamps.
const blockingCond = "(status = 'confirmed' OR (status = 'pending' AND expires_at > ?))"

// overlapCond is the half-open interval test against the stored
// occupied window [start_at, end_at + buffer). Exact adjacency is not
// an overlap.
const overlapCond = "start_at < ? AND end_at + make_interval(mins => buffer_after_minutes) > ?"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Consultant
// --------------------------------------------------

func (r *BookingGormRepository) GetConsultantByID(
	ctx context.Context,
	id uint,
) (*models.Consultant, error) {

	var consultant models.Consultant
	if err := r.db.WithContext(ctx).First(&consultant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("consultant_not_found")
		}
		return nil, err
	}
	return &consultant, nil
}

func (r *BookingGormRepository) GetConsultantBySlug(
	ctx context.Context,
	slug string,
) (*models.Consultant, error) {

	var consultant models.Consultant
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND active = ?", slug, true).
		First(&consultant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("consultant_not_found")
		}
		return nil, err
	}
	return &consultant, nil
}

// --------------------------------------------------
// Booking (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookingsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Consultant").
		Where("client_id = ?", clientID).
		Order("start_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBlockingForPeriod(
	ctx context.Context,
	consultantID uint,
	start time.Time,
	end time.Time,
	now time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("consultant_id = ? AND "+blockingCond, consultantID, now).
		Where("start_at >= ? AND start_at < ?", start, end).
		Order("start_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Overlap detection
// --------------------------------------------------

func (r *BookingGormRepository) FindBlockingOverlaps(
	ctx context.Context,
	consultantID uint,
	w domain.Window,
	now time.Time,
	excludeID *uuid.UUID,
) ([]models.Booking, error) {
	return r.findOverlaps(ctx, r.db, consultantID, w, now, excludeID)
}

func (r *BookingGormRepository) FindBlockingOverlapsLocked(
	ctx context.Context,
	consultantID uint,
	w domain.Window,
	now time.Time,
	excludeID *uuid.UUID,
) ([]models.Booking, error) {
	tx := r.db.Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findOverlaps(ctx, tx, consultantID, w, now, excludeID)
}

func (r *BookingGormRepository) findOverlaps(
	ctx context.Context,
	tx *gorm.DB,
	consultantID uint,
	w domain.Window,
	now time.Time,
	excludeID *uuid.UUID,
) ([]models.Booking, error) {

	q := tx.WithContext(ctx).
		Where("consultant_id = ? AND "+blockingCond, consultantID, now).
		Where(overlapCond, w.End, w.Start)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var conflicts []models.Booking
	if err := q.Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

// --------------------------------------------------
// Booking (write)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// CancelBooking writes the cancellation with a status guard so terminal
// rows stay terminal even when a sweep lands between the caller's read
// and this update.
func (r *BookingGormRepository) CancelBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status IN ?", b.ID, []string{
			string(domain.StatusPending),
			string(domain.StatusConfirmed),
		}).
		Updates(map[string]any{
			"status":            b.Status,
			"cancelled_at":      b.CancelledAt,
			"cancel_reason":     b.CancelReason,
			"cancelled_by_type": b.CancelledByType,
			"cancelled_by_id":   b.CancelledByID,
			"expires_at":        nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrInvalidState("not_cancellable")
	}
	return nil
}

// WithConsultantLock opens a transaction and takes a per-consultant
// advisory lock before running fn, so two concurrent holds for the same
// consultant can never both pass validation. The lock is released on
// commit or rollback.
func (r *BookingGormRepository) WithConsultantLock(
	ctx context.Context,
	consultantID uint,
	fn func(tx domain.Repository) error,
) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(?)",
				int64(consultantID),
			).Error; err != nil {
				return err
			}
			return fn(&BookingGormRepository{db: tx})
		})
	})
}

// --------------------------------------------------
// Sweep
// --------------------------------------------------

func (r *BookingGormRepository) ExpirePending(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	var affected int64
	err := withRetry(func() error {
		res := r.db.WithContext(ctx).
			Model(&models.Booking{}).
			Where("status = ? AND expires_at <= ?", string(domain.StatusPending), now).
			Updates(map[string]any{
				"status":     string(domain.StatusExpired),
				"expires_at": nil,
			})
		affected = res.RowsAffected
		return res.Error
	})

	return affected, err
}

// --------------------------------------------------
// Retry
// --------------------------------------------------

const (
	retryAttempts = 3
	retryBackoff  = 100 * time.Millisecond
)

// withRetry retries transient datastore failures with a linear backoff.
// Business errors carry a decision, not a failure, and pass through on
// the first attempt.
func withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * retryBackoff)
		}

		err = fn()
		if err == nil {
			return nil
		}
		if _, ok := httperr.AsBusiness(err); ok {
			return err
		}
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
