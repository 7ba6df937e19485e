package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer is a dealership's price listing for a specific car. Offers are never
// hard-deleted: MarkUnavailable flips the availability flag instead.
type Offer struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	CarID        uuid.UUID   `gorm:"type:uuid;not null;index"`
	Car          *Car        `gorm:"foreignKey:CarID"`
	DealershipID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Dealership   *Dealership `gorm:"foreignKey:DealershipID"`
	Price        float64     `gorm:"type:numeric(12,2);not null"`
	Available    bool        `gorm:"not null;default:true"`
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// MarkUnavailable soft-deletes the offer. Calling it on an already
// unavailable offer is a no-op, not an error.
func (o *Offer) MarkUnavailable() {
	o.Available = false
}
