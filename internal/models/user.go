package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Email       string    `gorm:"unique;not null"`
	Password    string    `gorm:"not null"`
	FullName    string    `gorm:"not null"`
	PhoneNumber string
	RoleID      uuid.UUID
	Role        Role
	Favorites   []Favorite `gorm:"foreignKey:BuyerID"`
	Purchases   []Purchase `gorm:"foreignKey:BuyerID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}
