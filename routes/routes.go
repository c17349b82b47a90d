package routes

import (
	"time"

	"github.com/KevinKupervaser/demoflores/cart"
	"github.com/KevinKupervaser/demoflores/firebase"
	"github.com/KevinKupervaser/demoflores/handlers"
	"github.com/KevinKupervaser/demoflores/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storageClient firebase.StorageClient, sessions *cart.SessionStore) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db, Storage: storageClient}
	categoryHandler := &handlers.CategoryHandler{}
	cartHandler := &handlers.CartHandler{Sessions: sessions}
	drawerHandler := &handlers.DrawerHandler{Sessions: sessions}

	authLimiter := middleware.NewRateLimiter(10, 1*time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes (guest-only, rate limited)
		guest := api.Group("/auth")
		guest.Use(authLimiter.Middleware())
		guest.Use(middleware.GuestMiddleware())
		{
			guest.POST("/register", authHandler.Register)
			guest.POST("/login", authHandler.Login)
		}
		api.POST("/auth/refresh", authLimiter.Middleware(), authHandler.RefreshTokenHandler)

		// Public product routes
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		// Public category routes
		api.GET("/categories", categoryHandler.GetCategories)

		// Session cart routes
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart", cartHandler.AddToCart)
		api.PUT("/cart/:id", cartHandler.UpdateCartItem)
		api.DELETE("/cart/:id", cartHandler.RemoveFromCart)

		// Checkout drawer routes
		api.GET("/cart/drawer", drawerHandler.GetDrawer)
		api.POST("/cart/drawer/open", drawerHandler.OpenDrawer)
		api.POST("/cart/drawer/close", drawerHandler.CloseDrawer)
		api.POST("/cart/drawer/back", drawerHandler.Back)
		api.POST("/cart/drawer/page", drawerHandler.SetPage)
		api.POST("/cart/drawer/proceed", drawerHandler.Proceed)
		api.POST("/cart/drawer/submit", drawerHandler.SubmitOrder)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// User profile
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Product management
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.GET("/products", productHandler.GetProductsPaginated)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
