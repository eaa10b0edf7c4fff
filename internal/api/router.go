package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recruithub/recruiting-system/internal/api/handler"
	"github.com/recruithub/recruiting-system/internal/api/middleware"
	"github.com/recruithub/recruiting-system/internal/core/service"
	mongodb "github.com/recruithub/recruiting-system/internal/infrastructure/db/mongo"
	redisdb "github.com/recruithub/recruiting-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recruiting"))

	// --- Repositories ---
	companyRepo := mongodb.NewCompanyRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	hierarchyRepo := mongodb.NewHierarchyRepository(db)
	campaignRepo := mongodb.NewCampaignRepository(db)
	ownershipStore := mongodb.NewOwnershipStore(db)
	auditRepo := mongodb.NewAuditRepository(db)
	rankCache := redisdb.NewRankCache(rdb)

	// --- Services ---
	tokenService := service.NewTokenService(jwtSecret)
	accessService := service.NewAccessService(companyRepo, userRepo, log)
	hierarchyService := service.NewHierarchyService(hierarchyRepo, rankCache, log)
	tenantService := service.NewTenantService(companyRepo, log)
	contextService := service.NewContextService(userRepo, companyRepo, clientRepo, accessService, tokenService, log)
	authService := service.NewAuthService(userRepo, tokenService, log)
	userService := service.NewUserService(userRepo, roleRepo, hierarchyService, log)
	campaignService := service.NewCampaignService(campaignRepo, accessService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, contextService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(accessService, clientRepo)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	configHandler := handler.NewConfigHandler(companyRepo)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/config", configHandler.Get, middleware.ResolveTenant(tenantService))

	// --- Authenticated routes ---
	authed := e.Group("", middleware.Session(tokenService), middleware.ImpersonationGate(auditRepo, log))

	authed.POST("/auth/switch-context", authHandler.SwitchContext)
	authed.POST("/auth/impersonate", authHandler.Impersonate, middleware.AdminTier())

	authed.GET("/clients", clientHandler.List)

	authed.POST("/users", userHandler.Create)
	authed.GET("/users/:id", userHandler.Get)
	authed.PUT("/users/:id", userHandler.Update)

	campaignGuard := middleware.TenantGuard(ownershipStore, "campaign")
	authed.GET("/campaigns", campaignHandler.List)
	authed.GET("/campaigns/:id", campaignHandler.Get, campaignGuard)
	authed.PUT("/campaigns/:id", campaignHandler.Update, campaignGuard)
	authed.DELETE("/campaigns/:id", campaignHandler.Delete, campaignGuard)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
