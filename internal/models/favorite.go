package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a buyer to a car. Once a rating or comment is set it doubles
// as a review of the car.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_buyer_car"`
	Buyer     *User     `gorm:"foreignKey:BuyerID"`
	CarID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_buyer_car"`
	Car       *Car      `gorm:"foreignKey:CarID"`
	Rating    *int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
