// internal/router/router.go
package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/handlers"
	"github.com/javajoker/storefront-backend/internal/middleware"
	"github.com/javajoker/storefront-backend/internal/services"
)

// Initialize builds the engine. Rate limiter cleanup stops when ctx is done.
func Initialize(ctx context.Context, cfg *config.Config, svc *services.Container, version string) *gin.Engine {
	secure := cfg.Auth.CookieSecure

	// Initialize handlers
	productHandler := handlers.NewProductHandler(svc.Products, svc.Catalog)
	authHandler := handlers.NewAuthHandler(svc.Auth, secure)
	shopHandler := handlers.NewShopHandler(svc.Catalog)
	cartHandler := handlers.NewCartHandler(svc.Carts, cfg.Cart.IdleTTL, secure)
	adminHandler := handlers.NewAdminHandler(svc.Catalog)
	statusHandler := handlers.NewStatusHandler(svc.Backend, svc.Products, svc.Catalog, version)
	uploadHandler := handlers.NewUploadHandler(svc.Storage)

	generalLimiter := middleware.NewRateLimiter(ctx, rate.Every(100*time.Millisecond), 20)
	authLimiter := middleware.NewRateLimiter(ctx, rate.Every(time.Minute), 5)
	uploadLimiter := middleware.NewRateLimiter(ctx, rate.Every(6*time.Second), 10)
	adminOnly := middleware.AdminRequired(svc.Auth, secure)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(generalLimiter.Middleware())

	r.GET("/health", statusHandler.Health)
	r.Static("/uploads", cfg.Server.UploadDir)

	api := r.Group("/api")
	{
		api.GET("/db-status", statusHandler.DBStatus)
		api.POST("/setup", statusHandler.Setup)

		auth := api.Group("/auth")
		{
			auth.POST("", authLimiter.Middleware(), authHandler.Login)
			auth.DELETE("", authHandler.Logout)
			auth.GET("/session", authHandler.GetSession)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(adminOnly, middleware.AuditLog())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.POST("/initialize", productHandler.InitializeProducts)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		shop := api.Group("/shop")
		{
			shop.GET("/products", shopHandler.GetProducts)
			shop.GET("/products/:id", shopHandler.GetProduct)
			shop.GET("/categories", shopHandler.GetCategories)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/toggle", cartHandler.ToggleCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		admin := api.Group("/admin")
		admin.Use(adminOnly, middleware.AuditLog())
		{
			admin.GET("/catalog", adminHandler.GetCatalog)
			admin.POST("/catalog/refresh", adminHandler.RefreshCatalog)
			admin.POST("/products/:id/toggle-approval", adminHandler.ToggleApproval)
		}

		api.POST("/upload", adminOnly, uploadLimiter.Middleware(), uploadHandler.UploadImage)
	}

	return r
}
