// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"offerstock/internal/domain/auth"
	"offerstock/internal/domain/material"
	"offerstock/internal/domain/modification"
	"offerstock/internal/domain/variation"
	"offerstock/internal/infrastructure/http/v1/handlers"
	"offerstock/internal/infrastructure/http/v1/middleware"
	"offerstock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Database backs the readiness and info probes.
	Database handlers.DatabaseProbe

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator guards stock edits.
	JWTValidator middleware.JWTValidator

	Variations    *variation.Service
	Materials     *material.Service
	Modifications *modification.Service

	// Development enables gin debug mode.
	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Database)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	v1 := router.Group("/api/v1")
	{
		registerVariationRoutes(v1, base, cfg)
		registerMaterialRoutes(v1, base, cfg)
		registerModificationRoutes(v1, base, cfg)
	}

	return router
}

func registerVariationRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewVariationHandler(base, cfg.Variations)

	rg.GET("/offers/:offerId/variation", h.GetByOffer)
	rg.GET("/offers/:offerId/variations/in-stock", h.ListInStock)
	rg.GET("/offer-consts/:offerConst/variations", h.ListByOfferConst)
}

func registerMaterialRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewMaterialHandler(base, cfg.Materials)

	rg.GET("/materials/quantity", h.QuantityByArticle)
}

func registerModificationRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewModificationHandler(base, cfg.Modifications)

	quantity := rg.Group("/modifications/:modificationId/quantity")
	quantity.GET("", h.GetQuantity)

	protected := quantity.Group("")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	protected.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleStockManager))
	{
		protected.PUT("", h.UpdateQuantity)
		protected.GET("/history", h.History)
	}
}
