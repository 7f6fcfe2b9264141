package api

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/sportscard-tracker/internal/api/handlers"
	"github.com/codyseavey/sportscard-tracker/internal/config"
	"github.com/codyseavey/sportscard-tracker/internal/database"
	"github.com/codyseavey/sportscard-tracker/internal/metrics"
	"github.com/codyseavey/sportscard-tracker/internal/services"
)

func SetupRouter(cfg *config.Config, repo *database.Repository, tracker *services.PriceTracker, dealFinder *services.DealFinder, calc *services.Calculator) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from config or use defaults
	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = false
	router.Use(cors.New(corsConfig))

	router.Use(metricsMiddleware())

	// Initialize handlers
	cardHandler := handlers.NewCardHandler(repo, tracker)
	dealHandler := handlers.NewDealHandler(dealFinder, calc)
	inventoryHandler := handlers.NewInventoryHandler(repo)
	priceHandler := handlers.NewPriceHandler(tracker, cfg.Business.SignificantChangePercent)

	// API routes
	api := router.Group("/api")
	{
		// Card routes
		cards := api.Group("/cards")
		{
			cards.GET("", cardHandler.ListCards)
			cards.GET("/search", cardHandler.SearchCards)
			cards.GET("/:id", cardHandler.GetCard)
			cards.POST("/:id/track", cardHandler.TrackCard)
			cards.GET("/:id/history", cardHandler.GetPriceHistory)
			cards.GET("/:id/conditions", dealHandler.CompareConditions)
		}

		// Deal routes
		deals := api.Group("/deals")
		{
			deals.GET("", dealHandler.FindDeals)
			deals.POST("/analyze", dealHandler.AnalyzeDeal)
			deals.POST("/calculate", dealHandler.CalculateProfit)
		}

		// Inventory routes
		inventory := api.Group("/inventory")
		{
			inventory.GET("", inventoryHandler.ListInventory)
			inventory.POST("", inventoryHandler.AddInventoryItem)
			inventory.POST("/:id/sale", inventoryHandler.RecordSale)
			inventory.GET("/report/:year/:month", inventoryHandler.MonthlyReport)
		}

		// Price routes
		prices := api.Group("/prices")
		{
			prices.POST("/refresh/:id", priceHandler.RefreshCard)
			prices.POST("/refresh-all", priceHandler.RefreshAll)
			prices.GET("/changes", priceHandler.SignificantChanges)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// metricsMiddleware records request counts and latency per route.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
