// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"wealthdesk/internal/handlers"
	"wealthdesk/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the HTTP handlers served under /api/v1.
type Handlers struct {
	Investment *handlers.InvestmentHandler
	Redemption *handlers.RedemptionHandler
	Fund       *handlers.FundHandler
	Pipeline   *handlers.PipelineHandler
}

// Options configures the router.
type Options struct {
	JWTSecret      string
	PipelineAPIKey string
	// RequestLogging enables the per-request access log.
	RequestLogging bool
	// Swagger mounts the API docs under /swagger.
	Swagger bool
}

// NewRouter builds the gin engine with every route wired.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.RequestLogging {
		router.Use(middleware.RequestLogging())
	}
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Pipeline routes (API key)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(opts.PipelineAPIKey))
	pipeline.POST("/recompute", h.Pipeline.Recompute)

	// Advisor routes (JWT)
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(opts.JWTSecret))

	investments := protected.Group("/investments")
	investments.POST("", h.Investment.CreateInvestment)
	investments.GET("/:id", h.Investment.GetInvestment)
	investments.PATCH("/:id", h.Investment.UpdateInvestment)
	investments.DELETE("/:id", h.Investment.DeleteInvestment)
	investments.POST("/:id/recompute", h.Investment.RecomputeInvestment)
	investments.GET("/:id/lots", h.Investment.GetLots)
	investments.POST("/:id/redeem", h.Redemption.Redeem)
	investments.GET("/:id/redemptions", h.Redemption.GetRedemptions)

	protected.POST("/redemptions", h.Redemption.RedeemBatch)

	holders := protected.Group("/holders")
	holders.GET("/:id/investments", h.Investment.GetHolderInvestments)
	holders.GET("/:id/portfolio", h.Investment.GetHolderPortfolio)

	protected.GET("/funds/:code/nav", h.Fund.GetNav)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
