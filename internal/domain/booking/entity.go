package booking

import (
	"time"

	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
	"github.com/HamidBoasidah/namaa-sub001/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Confirm flips a valid pending hold to confirmed. The hold is checked
// here as well so confirmation never depends on sweeper latency.
func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	if b.ExpiresAt == nil || !b.ExpiresAt.After(now) {
		return httperr.ErrInvalidState("hold_expired")
	}

	b.Status = string(StatusConfirmed)
	b.ExpiresAt = nil
	return nil
}

func Cancel(b *models.Booking, by CancellerRef, reason string, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancelReason = reason
	b.CancelledByType = string(by.ActorType)
	id := by.ID
	b.CancelledByID = &id
	b.ExpiresAt = nil
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}
