package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront-checkout/internal/metrics"
	"github.com/polkiloo/storefront-checkout/internal/server/http/handlers"
	"github.com/polkiloo/storefront-checkout/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	pointsHandler := handlers.NewPointsHandler(facade)
	promotionHandler := handlers.NewPromotionHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.GET("/metrics", gin.WrapH(m.Handler()))
	api.GET("/promotions", promotionHandler.List)
	api.POST("/promotions/validate", promotionHandler.Validate)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/points", pointsHandler.Summary)

	checkout := api.Group("/checkout")
	checkout.Use(middleware.AuthRequired(facade))
	checkout.POST("", checkoutHandler.Start)
	checkout.GET("/:id", checkoutHandler.Get)
	checkout.DELETE("/:id", checkoutHandler.Abandon)
	checkout.PUT("/:id/shipping", checkoutHandler.SetShipping)
	checkout.POST("/:id/points/toggle", checkoutHandler.TogglePoints)
	checkout.POST("/:id/promo", checkoutHandler.ApplyPromo)
	checkout.DELETE("/:id/promo", checkoutHandler.RemovePromo)
	checkout.PUT("/:id/gift-wrap", checkoutHandler.SetGiftWrap)
	checkout.PUT("/:id/gift-message", checkoutHandler.SetGiftMessage)
	checkout.PUT("/:id/notes", checkoutHandler.SetNotes)
	checkout.POST("/:id/submit", checkoutHandler.Submit)

	return engine
}
