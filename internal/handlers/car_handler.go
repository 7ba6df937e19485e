package handlers

import (
	"net/http"
	"time"

	"github.com/autoplaza/autoplaza/internal/helpers"
	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CarRequest struct {
	Brand        string   `json:"brand" binding:"required"`
	Model        string   `json:"model" binding:"required"`
	Year         int      `json:"year" binding:"required"`
	Color        string   `json:"color" binding:"required"`
	FuelType     string   `json:"fuel_type" binding:"required"`
	Transmission string   `json:"transmission" binding:"required"`
	Description  string   `json:"description"`
	ImageURLs    []string `json:"image_urls"`
}

// validateCarRequest applies the catalog rules that gin bindings can't
// express: year window, description length, enum membership, image presence.
func validateCarRequest(req *CarRequest, requireImages bool) string {
	if req.Year < 1900 || req.Year > time.Now().Year()+1 {
		return "Year must be between 1900 and next year."
	}
	if len(req.Description) > 1000 {
		return "Description must be at most 1000 characters."
	}
	if !models.FuelType(req.FuelType).Valid() {
		return "Invalid fuel type."
	}
	if !models.Transmission(req.Transmission).Valid() {
		return "Invalid transmission."
	}
	if requireImages && len(req.ImageURLs) == 0 {
		return "At least one image URL is required."
	}
	return ""
}

func CreateCar(c *gin.Context) {
	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if msg := validateCarRequest(&req, true); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	car := models.Car{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		FuelType:     models.FuelType(req.FuelType),
		Transmission: models.Transmission(req.Transmission),
		Description:  req.Description,
	}
	for i, url := range req.ImageURLs {
		car.Images = append(car.Images, models.CarImage{URL: url, Position: i})
	}

	if err := gormDB.Create(&car).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create car.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Car created successfully.",
		"car_id":  car.ID,
	})
}

func GetCar(c *gin.Context) {
	carID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var car models.Car
	if err := gormDB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", carID).First(&car).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Car not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving car.")
		return
	}

	c.JSON(http.StatusOK, car)
}

func ListCars(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

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

	query := gormDB.Model(&models.Car{})
	var totalCount int64
	query.Count(&totalCount)

	var cars []models.Car
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Images").Offset(offset).Limit(limitNum).Order("created_at ASC").Find(&cars).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving cars.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars":        cars,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func UpdateCar(c *gin.Context) {
	carID := c.Param("id")

	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if msg := validateCarRequest(&req, false); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var car models.Car
	if err := gormDB.Where("id = ?", carID).First(&car).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Car not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding car.")
		return
	}

	car.Brand = req.Brand
	car.Model = req.Model
	car.Year = req.Year
	car.Color = req.Color
	car.FuelType = models.FuelType(req.FuelType)
	car.Transmission = models.Transmission(req.Transmission)
	car.Description = req.Description

	if err := gormDB.Save(&car).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update car.")
		return
	}

	if len(req.ImageURLs) > 0 {
		if err := gormDB.Where("car_id = ?", car.ID).Delete(&models.CarImage{}).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error replacing car images.")
			return
		}
		for i, url := range req.ImageURLs {
			image := models.CarImage{CarID: car.ID, URL: url, Position: i}
			if err := gormDB.Create(&image).Error; err != nil {
				helpers.RespondWithError(c, http.StatusInternalServerError, "Error replacing car images.")
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Car updated successfully.",
		"car":     car,
	})
}

func UploadCarImage(c *gin.Context) {
	carID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var car models.Car
	if err := gormDB.Preload("Images").Where("id = ?", carID).First(&car).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Car not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding car.")
		return
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing image file.")
		return
	}

	imagePath, err := helpers.UploadImage(c, imageFile, "car_images")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	image := models.CarImage{
		CarID:    car.ID,
		URL:      imagePath,
		Position: len(car.Images),
	}
	if err := gormDB.Create(&image).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save car image.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully.",
		"url":     image.URL,
	})
}
