// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/optiprice/backend-go/internal/api/handlers"
	"github.com/optiprice/backend-go/internal/api/middleware"
	"github.com/optiprice/backend-go/internal/service"
)

type Services struct {
	ProductService  *service.ProductService
	ForecastService *service.ForecastService
	PricingService  *service.PricingService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ProductService != nil {
			productHandler := handlers.NewProductHandler(services.ProductService)
			productGroup := apiGroup.Group("/products")
			{
				productGroup.GET("", productHandler.List)
				productGroup.POST("", productHandler.Create)
				productGroup.GET("/search", productHandler.Search)
				productGroup.GET("/:id", productHandler.Get)
				productGroup.PUT("/:id", productHandler.Update)
				productGroup.DELETE("/:id", productHandler.Delete)
			}
		}

		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService)
			forecastGroup := apiGroup.Group("/forecasts")
			{
				forecastGroup.GET("", forecastHandler.GetAll)
				forecastGroup.GET("/advanced", forecastHandler.GetAll)
				forecastGroup.GET("/:id", forecastHandler.Get)
			}
		}

		if services.PricingService != nil {
			pricingHandler := handlers.NewPricingHandler(services.PricingService)
			pricingGroup := apiGroup.Group("/pricing")
			{
				pricingGroup.POST("/optimize", pricingHandler.OptimizeAll)
				pricingGroup.POST("/optimize/:id", pricingHandler.OptimizeProduct)
				pricingGroup.POST("/batch-optimize", pricingHandler.BatchOptimize)
				pricingGroup.GET("/recommendation/:id", pricingHandler.Recommendation)
				pricingGroup.GET("/ab-test/:id", pricingHandler.ABTest)
			}

			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("/elasticity-heatmap", pricingHandler.ElasticityHeatmap)
				analyticsGroup.GET("/inventory", pricingHandler.InventoryAnalysis)
				analyticsGroup.GET("/optimization-dashboard", pricingHandler.Dashboard)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
