package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "CASH"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentCheck      PaymentMethod = "CHECK"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentCheck:
		return true
	}
	return false
}

type PurchaseStatus string

const (
	StatusPending   PurchaseStatus = "PENDING"
	StatusConfirmed PurchaseStatus = "CONFIRMED"
	StatusDelivered PurchaseStatus = "DELIVERED"
	StatusCancelled PurchaseStatus = "CANCELLED"
)

// purchaseTransitions is the full set of legal status changes. DELIVERED and
// CANCELLED are terminal; nothing ever goes back to PENDING.
var purchaseTransitions = map[PurchaseStatus][]PurchaseStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusDelivered, StatusCancelled},
}

func (s PurchaseStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status change is allowed by the
// transition table.
func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	for _, allowed := range purchaseTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Purchase struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key"`
	OfferID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Offer        *Offer         `gorm:"foreignKey:OfferID"`
	BuyerID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Buyer        *User          `gorm:"foreignKey:BuyerID"`
	FinalPrice   float64        `gorm:"type:numeric(12,2);not null"`
	Method       PaymentMethod  `gorm:"type:varchar(16);not null"`
	Status       PurchaseStatus `gorm:"type:varchar(16);not null;default:'PENDING'"`
	Observations string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (purchase *Purchase) BeforeCreate(tx *gorm.DB) (err error) {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	return
}

// SetStatus applies the transition table and mutates the purchase only when
// the change is legal.
func (purchase *Purchase) SetStatus(next PurchaseStatus) error {
	if !purchase.Status.CanTransitionTo(next) {
		return fmt.Errorf("invalid status transition from %s to %s", purchase.Status, next)
	}
	purchase.Status = next
	return nil
}
