package handlers

import (
	"net/http"

	"github.com/autoplaza/autoplaza/internal/helpers"
	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferRequest struct {
	CarID uuid.UUID `json:"car_id" binding:"required"`
	Price *float64  `json:"price" binding:"required"`
	Notes string    `json:"notes"`
}

// OfferUpdateRequest carries a partial edit: nil fields are left untouched.
type OfferUpdateRequest struct {
	Price     *float64 `json:"price"`
	Notes     *string  `json:"notes"`
	Available *bool    `json:"available"`
}

// ListOffers serves both the per-car and per-dealership listings.
func ListOffers(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	carID := c.Query("car_id")
	dealershipID := c.Query("dealership_id")
	if carID == "" && dealershipID == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Either car_id or dealership_id is required.")
		return
	}

	query := gormDB.Model(&models.Offer{}).Preload("Dealership").Preload("Car")
	if carID != "" {
		query = query.Where("car_id = ?", carID)
	}
	if dealershipID != "" {
		query = query.Where("dealership_id = ?", dealershipID)
	}

	var offers []models.Offer
	if err := query.Order("created_at ASC").Find(&offers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving offers.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

func CreateOffer(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if *req.Price < 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Price must not be negative.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var dealership models.Dealership
	if err := gormDB.Where("user_id = ?", userID).First(&dealership).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "No dealership found for this account.")
		return
	}
	if !dealership.Active {
		helpers.RespondWithError(c, http.StatusForbidden, "Dealership is suspended.")
		return
	}

	var car models.Car
	if err := gormDB.Where("id = ?", req.CarID).First(&car).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Car not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding car.")
		return
	}

	// One live offer per car per dealership.
	var existing models.Offer
	if result := gormDB.Where("car_id = ? AND dealership_id = ?", car.ID, dealership.ID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "This dealership already has an offer for this car.")
		return
	}

	offer := models.Offer{
		CarID:        car.ID,
		DealershipID: dealership.ID,
		Price:        *req.Price,
		Available:    true,
		Notes:        req.Notes,
	}

	if err := gormDB.Create(&offer).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create offer.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Offer created successfully.",
		"offer_id": offer.ID,
	})
}

func UpdateOffer(c *gin.Context) {
	offerID := c.Param("id")

	var req OfferUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.Price != nil && *req.Price < 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Price must not be negative.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	offer, status, msg := findOwnedOffer(gormDB, offerID, userID)
	if offer == nil {
		helpers.RespondWithError(c, status, msg)
		return
	}

	if req.Price != nil {
		offer.Price = *req.Price
	}
	if req.Notes != nil {
		offer.Notes = *req.Notes
	}
	if req.Available != nil {
		offer.Available = *req.Available
	}

	if err := gormDB.Save(offer).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update offer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Offer updated successfully.",
		"offer":   offer,
	})
}

// MarkOfferUnavailable is the only deletion path for offers. It flips the
// availability flag and is idempotent: repeating it on an unavailable offer
// succeeds without changing anything.
func MarkOfferUnavailable(c *gin.Context) {
	offerID := c.Param("id")

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	offer, status, msg := findOwnedOffer(gormDB, offerID, userID)
	if offer == nil {
		helpers.RespondWithError(c, status, msg)
		return
	}

	if offer.Available {
		offer.MarkUnavailable()
		if err := gormDB.Model(offer).Update("available", false).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to mark offer as unavailable.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Offer marked as unavailable.",
	})
}

// findOwnedOffer loads an offer and verifies it belongs to the caller's
// dealership.
func findOwnedOffer(gormDB *gorm.DB, offerID string, userID interface{}) (*models.Offer, int, string) {
	var offer models.Offer
	if err := gormDB.Where("id = ?", offerID).First(&offer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound, "Offer not found."
		}
		return nil, http.StatusInternalServerError, "Error finding offer."
	}

	var dealership models.Dealership
	if err := gormDB.Where("id = ? AND user_id = ?", offer.DealershipID, userID).First(&dealership).Error; err != nil {
		return nil, http.StatusForbidden, "You don't have permission to modify this offer."
	}

	return &offer, http.StatusOK, ""
}
