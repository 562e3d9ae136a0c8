package models

import "time"

// Holiday suppresses all slots on a specific date regardless of the
// consultant's weekly working hours.
type Holiday struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ConsultantID uint `gorm:"index" json:"consultant_id"`

	Date  string `gorm:"size:10;index" json:"date"` // "2006-01-02"
	Label string `gorm:"size:100" json:"label"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
