package router

import (
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/config"
	"github.com/JuniorCesarMarques/ecommerce/internal/handler"
	"github.com/JuniorCesarMarques/ecommerce/internal/infra"
	"github.com/JuniorCesarMarques/ecommerce/internal/middleware"
	"github.com/JuniorCesarMarques/ecommerce/internal/model"
	"github.com/JuniorCesarMarques/ecommerce/internal/repository"
	"github.com/JuniorCesarMarques/ecommerce/internal/service"
	"github.com/JuniorCesarMarques/ecommerce/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis/Storage
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage *infra.ObjectStorage, storageCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orphanRepo := repository.NewOrphanUploadRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo, rdb)
	productSvc := service.NewProductService(productRepo, categoryRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	uploadsH := handler.NewUploadsHandler(storage, storageCB, orphanRepo, dispatcher, cfg.MaxUploadBytes)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, storageCB))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/register", authH.Register)
	}

	// Category list is public — the product form fetches it before login state
	// is known.
	r.GET("/api/categories", categoriesH.List)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		// Catalog reads — any authenticated user
		api.GET("/products", productsH.List)
		api.GET("/products/:id", productsH.GetByID)

		// Catalog writes — ADMIN only
		admin := api.Group("", middleware.RequireRole(model.RoleAdmin))
		{
			admin.POST("/products", productsH.Create)
			admin.POST("/categories", categoriesH.Create)
			admin.POST("/uploads", uploadsH.Upload)
			admin.POST("/uploads/orphans", uploadsH.ReportOrphan)
		}

		orders := api.Group("/orders")
		{
			orders.GET("/draft", ordersH.GetDraft)
			orders.POST("/draft/items", ordersH.AddItem)
			orders.POST("/:id/pay", ordersH.Pay)
			orders.POST("/:id/cancel", ordersH.Cancel)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
