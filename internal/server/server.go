package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sweetshop/backend/config"
	"github.com/sweetshop/backend/internal/auth"
	categoryHandler "github.com/sweetshop/backend/internal/category/handler"
	inventoryHandler "github.com/sweetshop/backend/internal/inventory/handler"
	orderHandler "github.com/sweetshop/backend/internal/order/handler"
	productHandler "github.com/sweetshop/backend/internal/product/handler"
	reportHandler "github.com/sweetshop/backend/internal/report/handler"
	userHandler "github.com/sweetshop/backend/internal/user/handler"
)

// Handlers bundles every HTTP handler mounted on the router.
type Handlers struct {
	Product   *productHandler.ProductHandler
	Category  *categoryHandler.CategoryHandler
	Inventory *inventoryHandler.InventoryHandler
	Order     *orderHandler.OrderHandler
	User      *userHandler.UserHandler
	Report    *reportHandler.ReportHandler
}

// NewRouter wires the public storefront, authenticated customer and
// admin route groups onto a gin engine.
func NewRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// Public storefront.
	v1.GET("/products", h.Product.List)
	v1.GET("/products/:id", h.Product.Get)
	v1.GET("/categories", h.Category.List)
	v1.GET("/categories/:id", h.Category.Get)

	// Auth.
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.User.Register)
		authGroup.POST("/login", h.User.Login)
		authGroup.POST("/refresh", h.User.Refresh)
	}

	// Authenticated customer routes.
	authed := v1.Group("")
	authed.Use(auth.AuthRequired(cfg.JWT.SecretKey))
	{
		authed.POST("/auth/logout", h.User.Logout)
		authed.GET("/auth/profile", h.User.Profile)

		authed.POST("/products/:id/reserve", h.Inventory.Reserve)
		authed.POST("/products/:id/purchase", h.Inventory.Purchase)

		authed.POST("/orders", h.Order.Create)
		authed.GET("/orders", h.Order.ListMine)
		authed.GET("/orders/:id", h.Order.GetByID)
	}

	// Admin routes.
	admin := v1.Group("/admin")
	admin.Use(auth.AuthRequired(cfg.JWT.SecretKey), auth.RequireAdmin)
	{
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.POST("/products/:id/restock", h.Inventory.Restock)

		admin.POST("/categories", h.Category.Create)
		admin.PUT("/categories/:id", h.Category.Update)
		admin.DELETE("/categories/:id", h.Category.Delete)

		admin.GET("/ledger", h.Inventory.ListLedger)

		admin.GET("/orders", h.Order.ListAll)
		admin.PATCH("/orders/:id/status", h.Order.UpdateStatus)

		admin.GET("/reports/top-selling", h.Report.TopSelling)
		admin.GET("/reports/sales-by-day", h.Report.SalesByDay)
		admin.GET("/reports/order-status", h.Report.OrderStatusBreakdown)
	}

	return r
}
