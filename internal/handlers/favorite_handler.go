package handlers

import (
	"net/http"

	"github.com/autoplaza/autoplaza/internal/helpers"
	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRequest struct {
	CarID   uuid.UUID `json:"car_id" binding:"required"`
	Rating  *int      `json:"rating"`
	Comment string    `json:"comment"`
}

// SaveFavorite creates or updates the caller's favorite for a car. With a
// rating or comment attached it doubles as a review.
func SaveFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 10) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Rating must be between 1 and 10.")
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

	var car models.Car
	if err := gormDB.Where("id = ?", req.CarID).First(&car).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Car not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding car.")
		return
	}

	var favorite models.Favorite
	result := gormDB.Where("buyer_id = ? AND car_id = ?", userID, car.ID).First(&favorite)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding favorite.")
			return
		}
		favorite = models.Favorite{
			BuyerID: userID.(uuid.UUID),
			CarID:   car.ID,
			Rating:  req.Rating,
			Comment: req.Comment,
		}
		if err := gormDB.Create(&favorite).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save favorite.")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Favorite saved successfully.",
			"favorite_id": favorite.ID,
		})
		return
	}

	favorite.Rating = req.Rating
	favorite.Comment = req.Comment
	if err := gormDB.Save(&favorite).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update favorite.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Favorite updated successfully.",
		"favorite_id": favorite.ID,
	})
}

func ListMyFavorites(c *gin.Context) {
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

	var favorites []models.Favorite
	err := gormDB.Preload("Car.Images").Where("buyer_id = ?", userID).Order("created_at DESC").Find(&favorites).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving favorites.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func DeleteFavorite(c *gin.Context) {
	favoriteID := c.Param("id")

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

	result := gormDB.Where("id = ? AND buyer_id = ?", favoriteID, userID).Delete(&models.Favorite{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete favorite.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "Favorite not found or you don't have permission to delete.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite deleted successfully.",
	})
}

// ListCarReviews returns the favorites of a car that carry a rating, which is
// what the product treats as reviews.
func ListCarReviews(c *gin.Context) {
	carID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var reviews []models.Favorite
	err := gormDB.Preload("Buyer").Where("car_id = ? AND rating IS NOT NULL", carID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reviews.")
		return
	}

	type reviewView struct {
		ID        uuid.UUID `json:"id"`
		Buyer     string    `json:"buyer"`
		Rating    *int      `json:"rating"`
		Comment   string    `json:"comment,omitempty"`
		CreatedAt string    `json:"created_at"`
	}

	views := make([]reviewView, 0, len(reviews))
	var total int
	for _, review := range reviews {
		view := reviewView{
			ID:        review.ID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt.Format("2006-01-02"),
		}
		if review.Buyer != nil {
			view.Buyer = review.Buyer.FullName
		}
		views = append(views, view)
		total += *review.Rating
	}

	response := gin.H{
		"reviews": views,
		"total":   len(views),
	}
	if len(views) > 0 {
		response["average_rating"] = float64(total) / float64(len(views))
	}

	c.JSON(http.StatusOK, response)
}
