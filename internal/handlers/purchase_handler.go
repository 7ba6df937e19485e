package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/autoplaza/autoplaza/internal/helpers"
	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type PurchaseRequest struct {
	OfferID      uuid.UUID `json:"offer_id" binding:"required"`
	Method       string    `json:"payment_method" binding:"required"`
	Observations string    `json:"observations"`
}

type PurchaseStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func generatePickupQRData(purchase *models.Purchase) string {
	secretKey := os.Getenv("JWT_SECRET")
	signature := generateSignature(purchase.ID, purchase.OfferID, purchase.BuyerID, secretKey)
	return fmt.Sprintf("purchase:%s;offer:%s;signature:%s",
		purchase.ID.String(),
		purchase.OfferID.String(),
		signature,
	)
}

func generateSignature(purchaseID, offerID, buyerID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", purchaseID.String(), offerID.String(), buyerID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func extractPurchaseIDFromQRData(qrData string) (uuid.UUID, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "purchase:") || !strings.HasPrefix(parts[2], "signature:") {
		return uuid.Nil, fmt.Errorf("invalid QR data format")
	}
	return uuid.Parse(strings.TrimPrefix(parts[0], "purchase:"))
}

func validatePickupQRSignature(purchase *models.Purchase, qrData string) bool {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "signature:") {
		return false
	}

	secretKey := os.Getenv("JWT_SECRET")
	signature := strings.TrimPrefix(parts[2], "signature:")
	expectedSignature := generateSignature(purchase.ID, purchase.OfferID, purchase.BuyerID, secretKey)
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// CreatePurchase records a buyer's purchase of an available offer. The offer
// stays available afterwards: whether a sale should retire the offer is a
// product decision that has intentionally not been made here.
func CreatePurchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	method := models.PaymentMethod(strings.ToUpper(req.Method))
	if !method.Valid() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment method. Use CASH, CREDIT_CARD or CHECK.")
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

	var offer models.Offer
	if err := gormDB.Preload("Car").Where("id = ?", req.OfferID).First(&offer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Offer not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding offer.")
		return
	}

	if !offer.Available {
		helpers.RespondWithError(c, http.StatusConflict, "Offer is no longer available.")
		return
	}

	purchase := models.Purchase{
		ID:           uuid.New(),
		OfferID:      offer.ID,
		BuyerID:      userID.(uuid.UUID),
		FinalPrice:   offer.Price,
		Method:       method,
		Status:       models.StatusPending,
		Observations: req.Observations,
	}

	if err := gormDB.Create(&purchase).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create purchase.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Purchase created successfully.",
		"purchase_id": purchase.ID,
		"status":      purchase.Status,
	})
}

func ListMyPurchases(c *gin.Context) {
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

	var purchases []models.Purchase
	err := gormDB.Preload("Offer.Car").Preload("Offer.Dealership").
		Where("buyer_id = ?", userID).Order("created_at DESC").Find(&purchases).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchases.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

// ListDealershipPurchases lists purchases made against the calling dealer's
// offers.
func ListDealershipPurchases(c *gin.Context) {
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

	var purchases []models.Purchase
	err := gormDB.Preload("Offer.Car").Preload("Buyer").
		Joins("JOIN offers ON offers.id = purchases.offer_id").
		Where("offers.dealership_id = ?", dealership.ID).
		Order("purchases.created_at DESC").Find(&purchases).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchases.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

func GetPurchase(c *gin.Context) {
	purchaseID := c.Param("id")

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

	var purchase models.Purchase
	if err := gormDB.Preload("Offer.Car").Preload("Offer.Dealership").Where("id = ?", purchaseID).First(&purchase).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchase.")
		return
	}

	if !isPurchaseParticipant(gormDB, &purchase, userID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this purchase.")
		return
	}

	c.JSON(http.StatusOK, purchase)
}

// UpdatePurchaseStatus applies the purchase state machine. Buyers may only
// cancel; the selling dealer may confirm, deliver or cancel.
func UpdatePurchaseStatus(c *gin.Context) {
	purchaseID := c.Param("id")

	var req PurchaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	next := models.PurchaseStatus(strings.ToUpper(req.Status))
	if !next.Valid() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid status. Use CONFIRMED, DELIVERED or CANCELLED.")
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

	var purchase models.Purchase
	if err := gormDB.Preload("Offer").Where("id = ?", purchaseID).First(&purchase).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchase.")
		return
	}

	isBuyer := purchase.BuyerID == userID
	isSeller := isSellingDealer(gormDB, &purchase, userID)
	if !isBuyer && !isSeller {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to update this purchase.")
		return
	}
	if isBuyer && !isSeller && next != models.StatusCancelled {
		helpers.RespondWithError(c, http.StatusForbidden, "Buyers can only cancel a purchase.")
		return
	}

	if err := purchase.SetStatus(next); err != nil {
		helpers.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := gormDB.Model(&purchase).Update("status", purchase.Status).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update purchase status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase status updated successfully.",
		"status":  purchase.Status,
	})
}

// GeneratePickupQR renders a signed QR code the buyer presents at the
// dealership when collecting the vehicle.
func GeneratePickupQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var purchase models.Purchase
	if err := gormDB.Where("id = ?", purchaseID).First(&purchase).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
		return
	}

	if purchase.BuyerID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to generate a QR code for this purchase.")
		return
	}

	if purchase.Status != models.StatusConfirmed {
		helpers.RespondWithError(c, http.StatusConflict, "QR codes are only issued for confirmed purchases.")
		return
	}

	qrData := generatePickupQRData(&purchase)

	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// ValidatePickupQR is called by the dealership when the buyer shows up. A
// valid signature moves the purchase to DELIVERED through the state machine.
func ValidatePickupQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var validationRequest struct {
		QRData string `json:"qr_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&validationRequest); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	purchaseID, err := extractPurchaseIDFromQRData(validationRequest.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code format.")
		return
	}

	var purchase models.Purchase
	if err := gormDB.Preload("Offer.Car").Where("id = ?", purchaseID).First(&purchase).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
		return
	}

	if !validatePickupQRSignature(&purchase, validationRequest.QRData) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid QR code signature.")
		return
	}

	if !isSellingDealer(gormDB, &purchase, userID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to validate this purchase.")
		return
	}

	if err := purchase.SetStatus(models.StatusDelivered); err != nil {
		helpers.RespondWithError(c, http.StatusConflict, err.Error())
		return
	}

	if err := gormDB.Model(&purchase).Update("status", purchase.Status).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to mark purchase as delivered.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase delivered successfully.",
		"purchase": gin.H{
			"id":    purchase.ID,
			"brand": purchase.Offer.Car.Brand,
			"model": purchase.Offer.Car.Model,
		},
	})
}

func isSellingDealer(gormDB *gorm.DB, purchase *models.Purchase, userID interface{}) bool {
	if purchase.Offer == nil {
		var offer models.Offer
		if err := gormDB.Where("id = ?", purchase.OfferID).First(&offer).Error; err != nil {
			return false
		}
		purchase.Offer = &offer
	}
	var dealership models.Dealership
	err := gormDB.Where("id = ? AND user_id = ?", purchase.Offer.DealershipID, userID).First(&dealership).Error
	return err == nil
}

func isPurchaseParticipant(gormDB *gorm.DB, purchase *models.Purchase, userID interface{}) bool {
	if purchase.BuyerID == userID {
		return true
	}
	return isSellingDealer(gormDB, purchase, userID)
}
