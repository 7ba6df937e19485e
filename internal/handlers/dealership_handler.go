package handlers

import (
	"net/http"

	"github.com/autoplaza/autoplaza/internal/helpers"
	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DealershipRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city" binding:"required"`
	Province     string `json:"province" binding:"required"`
}

func ListDealerships(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")
	city := c.Query("city")
	province := c.Query("province")

	pageNum, err := helpers.StringToInt(page)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}

	limitNum, err := helpers.StringToInt(limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(&models.Dealership{}).Where("active = ?", true)
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if province != "" {
		query = query.Where("province = ?", province)
	}

	var totalCount int64
	query.Count(&totalCount)

	var dealerships []models.Dealership
	offset := (pageNum - 1) * limitNum
	err = query.Offset(offset).Limit(limitNum).Order("business_name ASC").Find(&dealerships).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving dealerships.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dealerships": dealerships,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func GetDealership(c *gin.Context) {
	dealershipID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var dealership models.Dealership
	if err := gormDB.Preload("Offers", "available = ?", true).Where("id = ?", dealershipID).First(&dealership).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Dealership not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving dealership.")
		return
	}

	c.JSON(http.StatusOK, dealership)
}

// UpdateDealership edits the caller's own dealership profile.
func UpdateDealership(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req DealershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
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
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Dealership not found for this account.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding dealership.")
		return
	}

	dealership.BusinessName = req.BusinessName
	dealership.Email = req.Email
	dealership.Phone = req.Phone
	dealership.Address = req.Address
	dealership.City = req.City
	dealership.Province = req.Province

	if err := gormDB.Save(&dealership).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update dealership.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Dealership updated successfully.",
		"dealership": dealership,
	})
}

// SetDealershipActive lets an admin suspend or reinstate a dealership.
func SetDealershipActive(c *gin.Context) {
	dealershipID := c.Param("id")

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var dealership models.Dealership
	if err := gormDB.Where("id = ?", dealershipID).First(&dealership).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Dealership not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding dealership.")
		return
	}

	if err := gormDB.Model(&dealership).Update("active", *req.Active).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update dealership.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dealership updated successfully.",
	})
}
