package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuelType string

const (
	FuelGasoline FuelType = "GASOLINE"
	FuelDiesel   FuelType = "DIESEL"
	FuelHybrid   FuelType = "HYBRID"
	FuelElectric FuelType = "ELECTRIC"
	FuelGNC      FuelType = "GNC"
)

type Transmission string

const (
	TransmissionManual        Transmission = "MANUAL"
	TransmissionAutomatic     Transmission = "AUTOMATIC"
	TransmissionSemiAutomatic Transmission = "SEMI_AUTOMATIC"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelHybrid, FuelElectric, FuelGNC:
		return true
	}
	return false
}

func (t Transmission) Valid() bool {
	switch t {
	case TransmissionManual, TransmissionAutomatic, TransmissionSemiAutomatic:
		return true
	}
	return false
}

type Car struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Brand        string       `gorm:"not null"`
	Model        string       `gorm:"not null"`
	Year         int          `gorm:"not null"`
	Color        string       `gorm:"not null"`
	FuelType     FuelType     `gorm:"type:varchar(16);not null"`
	Transmission Transmission `gorm:"type:varchar(16);not null"`
	Description  string       `gorm:"type:varchar(1000)"`
	Images       []CarImage   `gorm:"foreignKey:CarID"`
	Offers       []Offer      `gorm:"foreignKey:CarID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// CarImage keeps the car's image URLs ordered by Position.
type CarImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	CarID     uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"not null"`
	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// ImageURLs flattens the image records in display order.
func (car *Car) ImageURLs() []string {
	urls := make([]string, 0, len(car.Images))
	for _, img := range car.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
