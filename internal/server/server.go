package server

import (
	"fmt"
	"os"

	"github.com/autoplaza/autoplaza/config"
	"github.com/autoplaza/autoplaza/internal/handlers"
	"github.com/autoplaza/autoplaza/internal/middleware"
	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/autoplaza/autoplaza/internal/tracing"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	cache := config.InitRedis()

	err = tracing.Init(tracing.Config{
		Enabled:     os.Getenv("JAEGER_ENDPOINT") != "",
		Endpoint:    os.Getenv("JAEGER_ENDPOINT"),
		ServiceName: "autoplaza",
		Environment: os.Getenv("APP_ENV"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %v", err)
	}

	r := gin.Default()

	setupRoutes(r, db, cache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, cache *redis.Client) {
	r.Use(middleware.TracingMiddleware())
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.CacheMiddleware(cache))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		catalogPublic := public.Group("/catalog")
		{
			catalogPublic.GET("", handlers.ListCatalog)
			catalogPublic.GET("/search", handlers.SearchCatalog)
			catalogPublic.GET("/:id", handlers.GetCatalogCar)
		}

		carPublic := public.Group("/cars")
		{
			carPublic.GET("", handlers.ListCars)
			carPublic.GET("/:id", handlers.GetCar)
			carPublic.GET("/:id/reviews", handlers.ListCarReviews)
		}

		dealershipPublic := public.Group("/dealerships")
		{
			dealershipPublic.GET("", handlers.ListDealerships)
			dealershipPublic.GET("/:id", handlers.GetDealership)
		}

		public.GET("/offers", handlers.ListOffers)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		admin := protected.Group("", middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/cars", handlers.CreateCar)
			admin.PUT("/cars/:id", handlers.UpdateCar)
			admin.POST("/cars/:id/images", handlers.UploadCarImage)
			admin.PATCH("/dealerships/:id/active", handlers.SetDealershipActive)
			admin.GET("/admin/stats", handlers.GetAdminStats)
		}

		dealer := protected.Group("", middleware.RequireRole(models.RoleDealer))
		{
			dealer.POST("/offers", handlers.CreateOffer)
			dealer.PUT("/offers/:id", handlers.UpdateOffer)
			dealer.DELETE("/offers/:id", handlers.MarkOfferUnavailable)
			dealer.PUT("/dealerships/me", handlers.UpdateDealership)
			dealer.GET("/purchases/incoming", handlers.ListDealershipPurchases)
			dealer.POST("/purchases/validate-qr", handlers.ValidatePickupQR)
		}

		buyer := protected.Group("", middleware.RequireRole(models.RoleBuyer))
		{
			buyer.POST("/purchases", handlers.CreatePurchase)
			buyer.GET("/purchases/:id/qr", handlers.GeneratePickupQR)
			buyer.POST("/favorites", handlers.SaveFavorite)
			buyer.GET("/favorites", handlers.ListMyFavorites)
			buyer.DELETE("/favorites/:id", handlers.DeleteFavorite)
		}

		protected.GET("/purchases", handlers.ListMyPurchases)
		protected.GET("/purchases/:id", handlers.GetPurchase)
		protected.PATCH("/purchases/:id/status", handlers.UpdatePurchaseStatus)
		protected.GET("/profile", handlers.GetProfile)
	}
}
