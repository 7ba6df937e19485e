package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Dealership struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	BusinessName string    `gorm:"not null"`
	TaxID        string    `gorm:"not null;unique"`
	Email        string    `gorm:"not null"`
	Phone        string
	Address      string
	City         string `gorm:"not null"`
	Province     string `gorm:"not null"`
	Active       bool   `gorm:"not null;default:true"`
	UserID       uuid.UUID
	User         User
	Offers       []Offer `gorm:"foreignKey:DealershipID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
