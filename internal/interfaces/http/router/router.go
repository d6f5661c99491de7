// Package router assembles the gin engine: the middleware stack, the
// versioned API groups, and the capability rule guarding each group.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ngkart/backend/internal/domain/identity"
	"github.com/ngkart/backend/internal/infrastructure/auth"
	"github.com/ngkart/backend/internal/infrastructure/config"
	"github.com/ngkart/backend/internal/infrastructure/logger"
	"github.com/ngkart/backend/internal/interfaces/http/handler"
	"github.com/ngkart/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	System         *handler.SystemHandler
	Product        *handler.ProductHandler
	Tax            *handler.TaxHandler
	Tag            *handler.TagHandler
	Category       *handler.CategoryHandler
	Address        *handler.AddressHandler
	Order          *handler.OrderHandler
	Metadata       *handler.MetadataHandler
	Upload         *handler.UploadHandler
	Recommendation *handler.RecommendationHandler
}

// New builds the gin engine with the full middleware stack and all
// API routes mounted under /api/v1.
func New(cfg *config.Config, log *zap.Logger, verifier *auth.TokenVerifier, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// Authentication is optional at the stack level, individual groups
	// tighten access with capability rules.
	engine.Use(middleware.Authenticate(middleware.AuthConfig{
		Verifier: verifier,
		Required: false,
		Logger:   log,
	}))

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	staffOnly := middleware.RequireCapability(identity.RuleStaffOnly)
	authenticated := middleware.RequireCapability(identity.RuleAuthenticated)
	ownerOrStaff := middleware.RequireCapability(identity.RuleOwnerOrStaff)

	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.GET("/slug/:slug", h.Product.GetBySlug)
		products.POST("", staffOnly, h.Product.Create)
		products.PUT("/:id", staffOnly, h.Product.Update)
		products.DELETE("/:id", staffOnly, h.Product.Delete)
	}

	taxes := api.Group("/taxes")
	{
		taxes.GET("", h.Tax.List)
		taxes.GET("/:id", h.Tax.Get)
		taxes.POST("", staffOnly, h.Tax.Create)
		taxes.PUT("/:id", staffOnly, h.Tax.Update)
		taxes.DELETE("/:id", staffOnly, h.Tax.Delete)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", h.Tag.List)
		tags.GET("/:slug", h.Tag.Get)
		tags.POST("", staffOnly, h.Tag.Create)
		tags.DELETE("/:slug", staffOnly, h.Tag.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:slug", h.Category.Get)
		categories.POST("", staffOnly, h.Category.Create)
		categories.PUT("/:slug", staffOnly, h.Category.Update)
		categories.DELETE("/:slug", staffOnly, h.Category.Delete)
	}

	addresses := api.Group("/addresses")
	{
		addresses.GET("", authenticated, h.Address.List)
		addresses.POST("", authenticated, h.Address.Create)
		addresses.GET("/:id", ownerOrStaff, h.Address.Get)
		addresses.PUT("/:id", ownerOrStaff, h.Address.Update)
		addresses.DELETE("/:id", ownerOrStaff, h.Address.Delete)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", authenticated, h.Order.List)
		orders.POST("", authenticated, h.Order.Create)
		orders.GET("/:id", ownerOrStaff, h.Order.Get)
		orders.PUT("/:id", ownerOrStaff, h.Order.Update)
		orders.DELETE("/:id", ownerOrStaff, h.Order.Delete)
		orders.GET("/:id/items", ownerOrStaff, h.Order.ListItems)
		orders.POST("/:id/items", ownerOrStaff, h.Order.AddItem)
		orders.GET("/:id/items/:productId", ownerOrStaff, h.Order.GetItem)
		orders.PUT("/:id/items/:productId", ownerOrStaff, h.Order.UpdateItem)
		orders.DELETE("/:id/items/:productId", ownerOrStaff, h.Order.RemoveItem)
	}

	metadata := api.Group("/site-metadata")
	{
		metadata.GET("", h.Metadata.Get)
		metadata.PUT("", staffOnly, h.Metadata.Update)
	}

	uploads := api.Group("/uploads", staffOnly)
	{
		uploads.GET("", h.Upload.List)
		uploads.GET("/:id", h.Upload.Get)
		uploads.POST("", h.Upload.Create)
		uploads.DELETE("/:id", h.Upload.Delete)
	}

	api.GET("/recommendations", h.Recommendation.Recommend)

	return engine
}
