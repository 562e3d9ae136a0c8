package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookingListDTO struct {
	ID             uuid.UUID  `json:"id"`
	ConsultantName string     `json:"consultant_name"`
	StartAt        time.Time  `json:"start_at"`
	EndAt          time.Time  `json:"end_at"`
	Status         string     `json:"status"`
	Price          float64    `json:"price"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}
