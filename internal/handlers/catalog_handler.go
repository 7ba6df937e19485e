package handlers

import (
	"net/http"

	"github.com/autoplaza/autoplaza/internal/catalog"
	"github.com/autoplaza/autoplaza/internal/helpers"
	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// loadCatalog pulls the full car and offer lists in store order. The grouped
// view is computed fresh on every request; there is deliberately no cache in
// front of it.
func loadCatalog(gormDB *gorm.DB) ([]models.Car, []models.Offer, error) {
	var cars []models.Car
	err := gormDB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("created_at ASC").Find(&cars).Error
	if err != nil {
		return nil, nil, err
	}

	var offers []models.Offer
	err = gormDB.Preload("Dealership").Order("created_at ASC").Find(&offers).Error
	if err != nil {
		return nil, nil, err
	}

	return cars, offers, nil
}

// ListCatalog returns every car with its grouped offers, unfiltered.
func ListCatalog(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	cars, offers, err := loadCatalog(gormDB)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving catalog.")
		return
	}

	views := catalog.PresentAll(catalog.Group(cars, offers))

	c.JSON(http.StatusOK, gin.H{
		"cars":  views,
		"total": len(views),
	})
}

// SearchCatalog filters the grouped view. Numeric filter text that fails to
// parse counts as "no constraint", never as a client error.
func SearchCatalog(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	filters := catalog.ParseFilters(c.Request.URL.Query())

	cars, offers, err := loadCatalog(gormDB)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving catalog.")
		return
	}

	views := catalog.PresentAll(catalog.Search(cars, offers, filters))

	c.JSON(http.StatusOK, gin.H{
		"cars":  views,
		"total": len(views),
	})
}

// GetCatalogCar returns the display view of a single car.
func GetCatalogCar(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid car ID.")
		return
	}

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

	var offers []models.Offer
	if err := gormDB.Preload("Dealership").Where("car_id = ?", car.ID).Order("created_at ASC").Find(&offers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving offers.")
		return
	}

	view := catalog.Present(catalog.DisplayCar{Car: car, Offers: offers})

	c.JSON(http.StatusOK, view)
}
