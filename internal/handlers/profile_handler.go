package handlers

import (
	"net/http"

	"github.com/autoplaza/autoplaza/internal/helpers"
	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetProfile(c *gin.Context) {
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

	var user models.User
	if err := gormDB.Preload("Role").Preload("Purchases").Preload("Favorites").Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving user.")
		return
	}

	response := gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"full_name":    user.FullName,
		"phone_number": user.PhoneNumber,
		"role":         user.Role.Name,
		"purchases":    user.Purchases,
		"favorites":    user.Favorites,
	}

	if user.Role.Name == models.RoleDealer {
		var dealership models.Dealership
		if err := gormDB.Where("user_id = ?", user.ID).First(&dealership).Error; err == nil {
			response["dealership"] = dealership
		}
	}

	c.JSON(http.StatusOK, response)
}
