package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/api/handlers"
	"github.com/andresuchdata/popar-tracker/internal/api/middleware"
	"github.com/andresuchdata/popar-tracker/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	ForecastService *service.ForecastService
	DocumentService *service.DocumentService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
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

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)

	apiGroup := router.Group("/api/v1")
	apiGroup.GET("/health", health)

	if services != nil {
		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService)
			apiGroup.GET("/forecast", forecastHandler.GetForecast)
			apiGroup.GET("/forecast/export", forecastHandler.ExportForecast)
		}

		if services.DocumentService != nil {
			amountHandler := handlers.NewAmountHandler(services.DocumentService)
			apiGroup.POST("/items/total", amountHandler.TotalItems)
			amountGroup := apiGroup.Group("/amount")
			{
				amountGroup.GET("/words", amountHandler.AmountInWords)
				amountGroup.GET("/format", amountHandler.FormatAmount)
			}

			documentHandler := handlers.NewDocumentHandler(services.DocumentService)
			poGroup := apiGroup.Group("/po")
			{
				poGroup.POST("", documentHandler.CreatePurchaseOrder)
				poGroup.GET("/:id/print", documentHandler.PrintPurchaseOrder)
			}
			parGroup := apiGroup.Group("/par")
			{
				parGroup.POST("", documentHandler.CreatePropertyReceipt)
				parGroup.GET("/:id/print", documentHandler.PrintPropertyReceipt)
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
