package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/loknadh006/product-catalog/docs"
	"github.com/loknadh006/product-catalog/internal/api/handler"
	"github.com/loknadh006/product-catalog/internal/api/middleware"
	"github.com/loknadh006/product-catalog/internal/core/domain"
	"github.com/loknadh006/product-catalog/internal/core/service"
	"github.com/loknadh006/product-catalog/internal/infrastructure/config"
	mongodb "github.com/loknadh006/product-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/loknadh006/product-catalog/internal/infrastructure/db/redis"
	infrahandlers "github.com/loknadh006/product-catalog/internal/infrastructure/http/handlers"
	"github.com/loknadh006/product-catalog/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the audit dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.AuditDispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)

	auditTrail := service.NewAuditTrail(auditRepo, log)
	dispatcher := queue.NewAuditDispatcher(0, auditTrail, log)

	authService := service.NewAuthService(userRepo, hasher, tokens, limiter, log)
	productService := service.NewProductService(productRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	requireAuth := middleware.Auth(tokens)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Product routes: listing is public, mutations are admin-gated ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create, requireAuth, requireAdmin)
	products.PUT("/:id", productHandler.Update, requireAuth, requireAdmin)
	products.DELETE("/:id", productHandler.Delete, requireAuth, requireAdmin)

	// --- Operational endpoints ---
	healthHandler := infrahandlers.NewHealthHandler()
	readinessHandler := infrahandlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
