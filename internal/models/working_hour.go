package models

import "time"

// WorkingHour is one availability range for a consultant on a given
// weekday (0 = Sunday). A consultant may have several rows per weekday
// (split shifts). Owned by the consultant-management side; the booking
// core only reads it.
type WorkingHour struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ConsultantID uint `gorm:"index" json:"consultant_id"`

	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"` // "15:04"
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
