package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	budgetapp "github.com/sppg/backend/internal/application/budget"
	distributionapp "github.com/sppg/backend/internal/application/distribution"
	hrapp "github.com/sppg/backend/internal/application/hr"
	identityapp "github.com/sppg/backend/internal/application/identity"
	inventoryapp "github.com/sppg/backend/internal/application/inventory"
	menuapp "github.com/sppg/backend/internal/application/menu"
	partnerapp "github.com/sppg/backend/internal/application/partner"
	procurementapp "github.com/sppg/backend/internal/application/procurement"
	productionapp "github.com/sppg/backend/internal/application/production"
	programapp "github.com/sppg/backend/internal/application/program"
	"github.com/sppg/backend/internal/infrastructure/auth"
	"github.com/sppg/backend/internal/infrastructure/config"
	"github.com/sppg/backend/internal/infrastructure/event"
	"github.com/sppg/backend/internal/infrastructure/logger"
	"github.com/sppg/backend/internal/infrastructure/persistence"
	"github.com/sppg/backend/internal/interfaces/http/handler"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
	"github.com/sppg/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/sppg/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			SPPG Backend API
//	@version		1.0
//	@description	Back-office API for community kitchen units of the school feeding program: schools, programs, menus, inventory, procurement, production, distribution, staffing and budgets.

//	@contact.name	API Support
//	@contact.url	https://github.com/sppg/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SPPG Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel,
		logger.WithSlowThreshold(time.Duration(cfg.Database.SlowQueryMs)*time.Millisecond))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	schoolRepo := persistence.NewGormSchoolRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	programRepo := persistence.NewGormProgramRepository(db.DB)
	enrollmentRepo := persistence.NewGormEnrollmentRepository(db.DB)
	menuRepo := persistence.NewGormMenuRepository(db.DB)
	foodCategoryRepo := persistence.NewGormFoodCategoryRepository(db.DB)
	foodItemRepo := persistence.NewGormFoodItemRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	distributionRepo := persistence.NewGormDistributionRepository(db.DB)
	positionRepo := persistence.NewGormPositionRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	allocationRepo := persistence.NewGormAllocationRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	escalationRepo := persistence.NewGormEscalationRepository(db.DB)

	// Token infrastructure: JWT signing plus a Redis-backed blacklist for revocation
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := blacklist.Close(); err != nil {
			log.Error("Error closing Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, tenantRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, roleRepo)
	roleService := identityapp.NewRoleService(roleRepo)
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, roleRepo, log)
	schoolService := partnerapp.NewSchoolService(schoolRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	programService := programapp.NewProgramService(programRepo)
	enrollmentService := programapp.NewEnrollmentService(enrollmentRepo, programRepo, schoolRepo)
	menuService := menuapp.NewMenuService(menuRepo, foodCategoryRepo)
	foodCategoryService := menuapp.NewFoodCategoryService(foodCategoryRepo)
	foodItemService := inventoryapp.NewFoodItemService(foodItemRepo, stockMovementRepo, foodCategoryRepo)
	purchaseOrderService := procurementapp.NewPurchaseOrderService(purchaseOrderRepo, supplierRepo, foodItemRepo)
	batchService := productionapp.NewBatchService(batchRepo, menuRepo, programRepo)
	distributionService := distributionapp.NewDistributionService(distributionRepo, batchRepo, schoolRepo)
	positionService := hrapp.NewPositionService(positionRepo, employeeRepo)
	employeeService := hrapp.NewEmployeeService(employeeRepo, positionRepo)
	budgetService := budgetapp.NewBudgetService(
		allocationRepo, expenseRepo, escalationRepo, tenantRepo, programRepo, cfg.Budget, log,
	)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Purchase order receiving -> stock increase with movement records
	purchaseReceiptHandler := inventoryapp.NewPurchaseReceiptHandler(
		purchaseOrderRepo, foodItemRepo, stockMovementRepo, log,
	)
	eventBus.Subscribe(purchaseReceiptHandler)

	log.Info("Event handlers registered",
		zap.Strings("purchase_receipt_events", purchaseReceiptHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	enrollmentService.SetEventPublisher(eventBus)
	foodItemService.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)
	batchService.SetEventPublisher(eventBus)
	distributionService.SetEventPublisher(eventBus)
	employeeService.SetEventPublisher(eventBus)
	budgetService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	schoolHandler := handler.NewSchoolHandler(schoolService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	programHandler := handler.NewProgramHandler(programService, enrollmentService)
	menuHandler := handler.NewMenuHandler(menuService, foodCategoryService)
	foodItemHandler := handler.NewFoodItemHandler(foodItemService)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseOrderService)
	batchHandler := handler.NewProductionBatchHandler(batchService)
	distributionHandler := handler.NewDistributionHandler(distributionService)
	positionHandler := handler.NewPositionHandler(positionService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	budgetHandler := handler.NewBudgetHandler(budgetService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. Tenant - Resolve tenant from header when present
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Tenant context from X-Tenant-ID, required pre-auth for login
	engine.Use(middleware.OptionalTenantMiddleware())

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Authentication
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Identity domain (users, roles). The group mixes two permission
	// resources, so each route carries its own guard.
	userGuard := middleware.RequireResource("users")
	roleGuard := middleware.RequireResource("roles")
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.POST("/users", userGuard, userHandler.Create)
	identityRoutes.GET("/users", userGuard, userHandler.List)
	identityRoutes.GET("/users/:id", userGuard, userHandler.GetByID)
	identityRoutes.PUT("/users/:id", userGuard, userHandler.Update)
	identityRoutes.DELETE("/users/:id", userGuard, userHandler.Delete)
	identityRoutes.POST("/users/:id/activate", userGuard, userHandler.Activate)
	identityRoutes.POST("/users/:id/deactivate", userGuard, userHandler.Deactivate)
	identityRoutes.PUT("/users/:id/password", userGuard, userHandler.ResetPassword)
	identityRoutes.PUT("/users/:id/roles", userGuard, userHandler.AssignRoles)
	identityRoutes.POST("/roles", roleGuard, roleHandler.Create)
	identityRoutes.GET("/roles", roleGuard, roleHandler.List)
	identityRoutes.GET("/roles/:id", roleGuard, roleHandler.GetByID)
	identityRoutes.PUT("/roles/:id", roleGuard, roleHandler.Update)
	identityRoutes.DELETE("/roles/:id", roleGuard, roleHandler.Delete)

	// Tenant management (platform level, super admin only)
	tenantRoutes := router.NewDomainGroup("tenant", "/tenants")
	tenantRoutes.Use(middleware.RequireRole("super_admin"))
	tenantRoutes.POST("", tenantHandler.Register)
	tenantRoutes.GET("", tenantHandler.List)
	tenantRoutes.GET("/:id", tenantHandler.GetByID)
	tenantRoutes.PUT("/:id", tenantHandler.Update)
	tenantRoutes.POST("/:id/activate", tenantHandler.Activate)
	tenantRoutes.POST("/:id/suspend", tenantHandler.Suspend)
	tenantRoutes.POST("/:id/close", tenantHandler.Close)

	// Partner domain (schools, suppliers)
	schoolGuard := middleware.RequireResource("schools")
	supplierGuard := middleware.RequireResource("suppliers")
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/schools", schoolGuard, schoolHandler.Create)
	partnerRoutes.GET("/schools", schoolGuard, schoolHandler.List)
	partnerRoutes.GET("/schools/stats", schoolGuard, schoolHandler.Stats)
	partnerRoutes.GET("/schools/code/:code", schoolGuard, schoolHandler.GetByCode)
	partnerRoutes.GET("/schools/:id", schoolGuard, schoolHandler.GetByID)
	partnerRoutes.PUT("/schools/:id", schoolGuard, schoolHandler.Update)
	partnerRoutes.DELETE("/schools/:id", schoolGuard, schoolHandler.Delete)
	partnerRoutes.POST("/schools/:id/activate", schoolGuard, schoolHandler.Activate)
	partnerRoutes.POST("/schools/:id/deactivate", schoolGuard, schoolHandler.Deactivate)
	partnerRoutes.POST("/suppliers", supplierGuard, supplierHandler.Create)
	partnerRoutes.GET("/suppliers", supplierGuard, supplierHandler.List)
	partnerRoutes.GET("/suppliers/stats/count", supplierGuard, supplierHandler.CountByStatus)
	partnerRoutes.GET("/suppliers/code/:code", supplierGuard, supplierHandler.GetByCode)
	partnerRoutes.GET("/suppliers/:id", supplierGuard, supplierHandler.GetByID)
	partnerRoutes.PUT("/suppliers/:id", supplierGuard, supplierHandler.Update)
	partnerRoutes.DELETE("/suppliers/:id", supplierGuard, supplierHandler.Delete)
	partnerRoutes.POST("/suppliers/:id/activate", supplierGuard, supplierHandler.Activate)
	partnerRoutes.POST("/suppliers/:id/deactivate", supplierGuard, supplierHandler.Deactivate)
	partnerRoutes.POST("/suppliers/:id/block", supplierGuard, supplierHandler.Block)

	// Feeding programs and school enrollments. Enrollment routes live
	// under the program prefix but are their own permission resource.
	programGuard := middleware.RequireResource("programs")
	enrollmentGuard := middleware.RequireResource("enrollments")
	programRoutes := router.NewDomainGroup("program", "/programs")
	programRoutes.POST("", programGuard, programHandler.Create)
	programRoutes.GET("", programGuard, programHandler.List)
	programRoutes.GET("/active", programGuard, programHandler.ListActive)
	programRoutes.GET("/:id", programGuard, programHandler.GetByID)
	programRoutes.PUT("/:id", programGuard, programHandler.Update)
	programRoutes.DELETE("/:id", programGuard, programHandler.Delete)
	programRoutes.POST("/:id/activate", programGuard, programHandler.Activate)
	programRoutes.POST("/:id/suspend", programGuard, programHandler.Suspend)
	programRoutes.POST("/:id/complete", programGuard, programHandler.Complete)
	programRoutes.POST("/:id/enrollments", enrollmentGuard, programHandler.Enroll)
	programRoutes.GET("/:id/enrollments", enrollmentGuard, programHandler.ListEnrollments)
	programRoutes.GET("/:id/coverage", programGuard, programHandler.Coverage)

	enrollmentRoutes := router.NewDomainGroup("enrollment", "/enrollments")
	enrollmentRoutes.Use(enrollmentGuard)
	enrollmentRoutes.GET("/:id", programHandler.GetEnrollment)
	enrollmentRoutes.PUT("/:id", programHandler.UpdateEnrollment)
	enrollmentRoutes.POST("/:id/withdraw", programHandler.WithdrawEnrollment)

	// Menus and nutrition compliance
	menuRoutes := router.NewDomainGroup("menu", "/menus")
	menuRoutes.Use(middleware.RequireResource("menus"))
	menuRoutes.POST("/categories", menuHandler.CreateCategory)
	menuRoutes.GET("/categories", menuHandler.ListCategories)
	menuRoutes.PUT("/categories/:id", menuHandler.UpdateCategory)
	menuRoutes.DELETE("/categories/:id", menuHandler.DeleteCategory)
	menuRoutes.GET("/approved/:meal_type", menuHandler.ListApproved)
	menuRoutes.POST("", menuHandler.Create)
	menuRoutes.GET("", menuHandler.List)
	menuRoutes.GET("/:id", menuHandler.GetByID)
	menuRoutes.PUT("/:id", menuHandler.Update)
	menuRoutes.DELETE("/:id", menuHandler.Delete)
	menuRoutes.POST("/:id/approve", menuHandler.Approve)
	menuRoutes.POST("/:id/retire", menuHandler.Retire)
	menuRoutes.GET("/:id/compliance", menuHandler.CheckCompliance)

	// Inventory domain (food items, stock movements)
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.Use(middleware.RequireResource("inventory"))
	inventoryRoutes.POST("/items", foodItemHandler.Create)
	inventoryRoutes.GET("/items", foodItemHandler.List)
	inventoryRoutes.GET("/items/low-stock", foodItemHandler.ListLowStock)
	inventoryRoutes.GET("/items/:id", foodItemHandler.GetByID)
	inventoryRoutes.PUT("/items/:id", foodItemHandler.Update)
	inventoryRoutes.DELETE("/items/:id", foodItemHandler.Delete)
	inventoryRoutes.POST("/items/:id/adjust", foodItemHandler.AdjustStock)
	inventoryRoutes.GET("/items/:id/movements", foodItemHandler.ListMovements)
	inventoryRoutes.POST("/items/:id/activate", foodItemHandler.Activate)
	inventoryRoutes.POST("/items/:id/deactivate", foodItemHandler.Deactivate)

	// Procurement domain (purchase orders)
	procurementRoutes := router.NewDomainGroup("procurement", "/procurement")
	procurementRoutes.Use(middleware.RequireResource("procurement"))
	procurementRoutes.POST("/orders", purchaseOrderHandler.Create)
	procurementRoutes.GET("/orders", purchaseOrderHandler.List)
	procurementRoutes.GET("/orders/number/:number", purchaseOrderHandler.GetByNumber)
	procurementRoutes.GET("/orders/:id", purchaseOrderHandler.GetByID)
	procurementRoutes.PUT("/orders/:id", purchaseOrderHandler.Update)
	procurementRoutes.DELETE("/orders/:id", purchaseOrderHandler.Delete)
	procurementRoutes.POST("/orders/:id/lines", purchaseOrderHandler.AddLine)
	procurementRoutes.DELETE("/orders/:id/lines/:line_id", purchaseOrderHandler.RemoveLine)
	procurementRoutes.POST("/orders/:id/submit", purchaseOrderHandler.Submit)
	procurementRoutes.POST("/orders/:id/approve", purchaseOrderHandler.Approve)
	procurementRoutes.POST("/orders/:id/receive", purchaseOrderHandler.Receive)
	procurementRoutes.POST("/orders/:id/cancel", purchaseOrderHandler.Cancel)

	// Production domain (cooking batches)
	productionRoutes := router.NewDomainGroup("production", "/production")
	productionRoutes.Use(middleware.RequireResource("production"))
	productionRoutes.POST("/batches", batchHandler.Create)
	productionRoutes.GET("/batches", batchHandler.List)
	productionRoutes.GET("/batches/number/:number", batchHandler.GetByNumber)
	productionRoutes.GET("/batches/date/:date", batchHandler.ListByDate)
	productionRoutes.GET("/batches/:id", batchHandler.GetByID)
	productionRoutes.PUT("/batches/:id", batchHandler.Update)
	productionRoutes.DELETE("/batches/:id", batchHandler.Delete)
	productionRoutes.POST("/batches/:id/start", batchHandler.Start)
	productionRoutes.POST("/batches/:id/complete", batchHandler.Complete)
	productionRoutes.POST("/batches/:id/cancel", batchHandler.Cancel)

	// Distribution domain (deliveries to schools)
	distributionRoutes := router.NewDomainGroup("distribution", "/distribution")
	distributionRoutes.Use(middleware.RequireResource("distribution"))
	distributionRoutes.POST("/deliveries", distributionHandler.Create)
	distributionRoutes.GET("/deliveries", distributionHandler.List)
	distributionRoutes.GET("/deliveries/batch/:batch_id", distributionHandler.ListByBatch)
	distributionRoutes.GET("/deliveries/school/:school_id", distributionHandler.ListBySchool)
	distributionRoutes.GET("/deliveries/date/:date", distributionHandler.ListByDate)
	distributionRoutes.GET("/deliveries/:id", distributionHandler.GetByID)
	distributionRoutes.PUT("/deliveries/:id/transport", distributionHandler.AssignTransport)
	distributionRoutes.POST("/deliveries/:id/depart", distributionHandler.Depart)
	distributionRoutes.POST("/deliveries/:id/confirm", distributionHandler.ConfirmDelivery)
	distributionRoutes.POST("/deliveries/:id/cancel", distributionHandler.Cancel)

	// HR domain (positions, employees)
	hrRoutes := router.NewDomainGroup("hr", "/hr")
	hrRoutes.Use(middleware.RequireResource("hr"))
	hrRoutes.POST("/positions", positionHandler.Create)
	hrRoutes.GET("/positions", positionHandler.List)
	hrRoutes.GET("/positions/code/:code", positionHandler.GetByCode)
	hrRoutes.GET("/positions/:id", positionHandler.GetByID)
	hrRoutes.PUT("/positions/:id", positionHandler.Update)
	hrRoutes.DELETE("/positions/:id", positionHandler.Delete)
	hrRoutes.GET("/positions/:id/headcount", positionHandler.Headcount)
	hrRoutes.POST("/employees", employeeHandler.Hire)
	hrRoutes.GET("/employees", employeeHandler.List)
	hrRoutes.GET("/employees/number/:number", employeeHandler.GetByNumber)
	hrRoutes.GET("/employees/position/:position_id", employeeHandler.ListByPosition)
	hrRoutes.GET("/employees/:id", employeeHandler.GetByID)
	hrRoutes.PUT("/employees/:id", employeeHandler.Update)
	hrRoutes.PUT("/employees/:id/contract-end", employeeHandler.SetContractEnd)
	hrRoutes.PUT("/employees/:id/salary", employeeHandler.AdjustSalary)
	hrRoutes.POST("/employees/:id/transfer", employeeHandler.Transfer)
	hrRoutes.POST("/employees/:id/leave/start", employeeHandler.StartLeave)
	hrRoutes.POST("/employees/:id/leave/end", employeeHandler.EndLeave)
	hrRoutes.POST("/employees/:id/terminate", employeeHandler.Terminate)

	// Budget domain (allocations, expenses, escalations)
	budgetRoutes := router.NewDomainGroup("budget", "/budget")
	budgetRoutes.Use(middleware.RequireResource("budget"))
	budgetRoutes.POST("/allocations", budgetHandler.Propose)
	budgetRoutes.GET("/allocations", budgetHandler.List)
	budgetRoutes.GET("/allocations/program/:program_id", budgetHandler.ListByProgram)
	budgetRoutes.GET("/allocations/:id", budgetHandler.GetByID)
	budgetRoutes.DELETE("/allocations/:id", budgetHandler.Delete)
	budgetRoutes.POST("/allocations/:id/approve", budgetHandler.Approve)
	budgetRoutes.POST("/allocations/:id/reject", budgetHandler.Reject)
	budgetRoutes.POST("/allocations/:id/close", budgetHandler.Close)
	budgetRoutes.POST("/allocations/:id/expenses", budgetHandler.RecordExpense)
	budgetRoutes.GET("/allocations/:id/expenses", budgetHandler.ListExpenses)
	budgetRoutes.GET("/allocations/:id/utilization", budgetHandler.Utilization)
	budgetRoutes.GET("/allocations/:id/escalations", budgetHandler.ListAllocationEscalations)
	budgetRoutes.GET("/escalations", budgetHandler.ListEscalations)
	budgetRoutes.GET("/fiscal-years/:year", budgetHandler.FiscalYearSummary)

	// Register all domain groups
	r.Register(authRoutes).
		Register(identityRoutes).
		Register(tenantRoutes).
		Register(partnerRoutes).
		Register(programRoutes).
		Register(enrollmentRoutes).
		Register(menuRoutes).
		Register(inventoryRoutes).
		Register(procurementRoutes).
		Register(productionRoutes).
		Register(distributionRoutes).
		Register(hrRoutes).
		Register(budgetRoutes)

	// Setup routes
	r.Setup()

	// Simple ping at root API level for basic liveness probes
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			body["pool"] = stats
		}
		c.JSON(http.StatusOK, body)
	}
}
