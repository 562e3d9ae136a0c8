package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ConsultantID uint       `gorm:"index" json:"consultant_id"`
	Consultant   Consultant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"consultant"`

	// Polymorphic subject: either the consultant directly or one of
	// their services. Duration/price come from the catalog at creation
	// time and are snapshotted here.
	BookableType string `gorm:"size:20" json:"bookable_type"`
	BookableID   uint   `json:"bookable_id"`

	StartAt            time.Time `gorm:"index" json:"start_at"`
	EndAt              time.Time `json:"end_at"`
	DurationMinutes    int       `json:"duration_minutes"`
	BufferAfterMinutes int       `json:"buffer_after_minutes"`
	Price              float64   `json:"price"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	// Set while pending, cleared on confirm. Non-null iff pending.
	ExpiresAt *time.Time `json:"expires_at"`

	CompletedAt *time.Time `json:"completed_at"`

	CancelledAt     *time.Time `json:"cancelled_at"`
	CancelReason    string     `gorm:"size:255" json:"cancel_reason"`
	CancelledByType string     `gorm:"size:20" json:"cancelled_by_type"`
	CancelledByID   *uint      `json:"cancelled_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
