package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/autoplaza/autoplaza/internal/helpers"
	"github.com/autoplaza/autoplaza/internal/middleware"
	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "autoplaza:admin:stats"
	statsCacheTTL = 60 * time.Second
)

type carStat struct {
	CarID uuid.UUID `json:"car_id"`
	Brand string    `json:"brand"`
	Model string    `json:"model"`
	Count int64     `json:"count"`
}

type ratedCarStat struct {
	CarID         uuid.UUID `json:"car_id"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	AverageRating float64   `json:"average_rating"`
	Reviews       int64     `json:"reviews"`
}

type dealershipStat struct {
	DealershipID uuid.UUID `json:"dealership_id"`
	BusinessName string    `json:"business_name"`
	Delivered    int64     `json:"delivered"`
}

type adminStats struct {
	TopOfferedCars []carStat        `json:"top_offered_cars"`
	TopRatedCars   []ratedCarStat   `json:"top_rated_cars"`
	TopDealerships []dealershipStat `json:"top_dealerships"`
	TotalCars      int64            `json:"total_cars"`
	TotalOffers    int64            `json:"total_offers"`
	TotalPurchases int64            `json:"total_purchases"`
	TotalUsers     int64            `json:"total_users"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// GetAdminStats serves the aggregate dashboard. Results are cached in Redis
// for a short TTL; without a cache every request recomputes. The buyer-facing
// catalog is never cached, only this admin dashboard is.
func GetAdminStats(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	cache := middleware.GetCacheClient(c)
	ctx := c.Request.Context()

	if cache != nil {
		if cached, err := cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats adminStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				c.JSON(http.StatusOK, stats)
				return
			}
		}
	}

	stats, err := computeAdminStats(gormDB)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing statistics.")
		return
	}

	if cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
		}
	}

	c.JSON(http.StatusOK, stats)
}

func computeAdminStats(gormDB *gorm.DB) (*adminStats, error) {
	stats := &adminStats{GeneratedAt: time.Now().UTC()}

	err := gormDB.Model(&models.Offer{}).
		Select("offers.car_id, cars.brand, cars.model, COUNT(*) AS count").
		Joins("JOIN cars ON cars.id = offers.car_id").
		Where("offers.available = ?", true).
		Group("offers.car_id, cars.brand, cars.model").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopOfferedCars).Error
	if err != nil {
		return nil, err
	}

	err = gormDB.Model(&models.Favorite{}).
		Select("favorites.car_id, cars.brand, cars.model, AVG(favorites.rating) AS average_rating, COUNT(*) AS reviews").
		Joins("JOIN cars ON cars.id = favorites.car_id").
		Where("favorites.rating IS NOT NULL").
		Group("favorites.car_id, cars.brand, cars.model").
		Order("average_rating DESC").
		Limit(5).
		Scan(&stats.TopRatedCars).Error
	if err != nil {
		return nil, err
	}

	err = gormDB.Model(&models.Purchase{}).
		Select("offers.dealership_id, dealerships.business_name, COUNT(*) AS delivered").
		Joins("JOIN offers ON offers.id = purchases.offer_id").
		Joins("JOIN dealerships ON dealerships.id = offers.dealership_id").
		Where("purchases.status = ?", models.StatusDelivered).
		Group("offers.dealership_id, dealerships.business_name").
		Order("delivered DESC").
		Limit(5).
		Scan(&stats.TopDealerships).Error
	if err != nil {
		return nil, err
	}

	if err := gormDB.Model(&models.Car{}).Count(&stats.TotalCars).Error; err != nil {
		return nil, err
	}
	if err := gormDB.Model(&models.Offer{}).Count(&stats.TotalOffers).Error; err != nil {
		return nil, err
	}
	if err := gormDB.Model(&models.Purchase{}).Count(&stats.TotalPurchases).Error; err != nil {
		return nil, err
	}
	if err := gormDB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
