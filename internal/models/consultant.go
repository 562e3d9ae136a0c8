package models

import "time"

type Consultant struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Headline string `gorm:"size:255" json:"headline"`
	Timezone string `gorm:"size:50" json:"timezone"`

	// Defaults used when a client books the consultant directly
	// instead of a specific service.
	SessionMinutes int     `gorm:"default:60" json:"session_minutes"`
	BufferMinutes  int     `gorm:"default:0" json:"buffer_minutes"`
	SessionPrice   float64 `json:"session_price"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
