package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/megapixel-app/megapixel-api/api/swagger"
	"github.com/megapixel-app/megapixel-api/internal/handler"
	"github.com/megapixel-app/megapixel-api/internal/middleware"
	"github.com/megapixel-app/megapixel-api/internal/models"
	"github.com/megapixel-app/megapixel-api/internal/repository"
	"github.com/megapixel-app/megapixel-api/internal/service"
	"github.com/megapixel-app/megapixel-api/pkg/cache"
	"github.com/megapixel-app/megapixel-api/pkg/config"
	"github.com/megapixel-app/megapixel-api/pkg/database"
	"github.com/megapixel-app/megapixel-api/pkg/export"
	"github.com/megapixel-app/megapixel-api/pkg/logger"
	corsmiddleware "github.com/megapixel-app/megapixel-api/pkg/middleware/cors"
	reqidmiddleware "github.com/megapixel-app/megapixel-api/pkg/middleware/requestid"
	"github.com/megapixel-app/megapixel-api/pkg/payments"
)

// @title Megapixel API
// @version 1.0.0
// @description Class marketplace backend: catalog, review workflow, cart and paid enrollment
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			// The catalog cache is an optimization. The API serves every
			// request from Postgres when Redis is down.
			logr.Warn("redis unavailable, running without cache", zap.Error(err))
			redisClient = nil
		}
	} else {
		logr.Info("class cache disabled by configuration")
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr, cfg.Store.Timeout)
	classSvc := service.NewClassService(classRepo, cacheRepo, metricsSvc, validate, logr,
		cfg.Store.Timeout, cfg.Cache.ClassesTTL, cfg.Cache.KeyPrefix)
	selectionSvc := service.NewSelectionService(selectionRepo, classRepo, validate, logr, cfg.Store.Timeout)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, classRepo, export.NewPDFExporter(),
		validate, logr, cfg.Store.Timeout)
	paymentSvc := service.NewPaymentService(payments.NewStripeClient(cfg.Payments.StripeSecretKey),
		cfg.Payments.Currency, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc, logr)
	userHandler := handler.NewUserHandler(userSvc, logr)
	classHandler := handler.NewClassHandler(classSvc, logr)
	selectionHandler := handler.NewSelectionHandler(selectionSvc, logr)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc, logr)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, logr)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := setupRouter(routerDeps{
		cfg:        cfg,
		logger:     logr,
		auth:       authSvc,
		metrics:    metricsSvc,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		authH:      authHandler,
		userH:      userHandler,
		classH:     classHandler,
		selectionH: selectionHandler,
		enrollH:    enrollmentHandler,
		paymentH:   paymentHandler,
		metricsH:   metricsHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// routerDeps carries everything setupRouter needs to assemble the route
// table and its gates.
type routerDeps struct {
	cfg       *config.Config
	logger    *zap.Logger
	auth      *service.AuthService
	metrics   *service.MetricsService
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditRepository

	authH      *handler.AuthHandler
	userH      *handler.UserHandler
	classH     *handler.ClassHandler
	selectionH *handler.SelectionHandler
	enrollH    *handler.EnrollmentHandler
	paymentH   *handler.PaymentHandler
	metricsH   *handler.MetricsHandler
}

func setupRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.logger))
	r.Use(corsmiddleware.New(d.cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", d.metricsH.Expose)

	if d.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public surface.
	r.POST("/jwt", d.authH.IssueToken)
	r.POST("/newUser", d.userH.Register)
	r.GET("/classes", d.classH.ListApproved)
	r.GET("/instructors", d.userH.Instructors)
	r.GET("/findSelectedClass/:id", d.selectionH.Find)

	// Everything below requires a valid bearer token.
	authed := r.Group("/", middleware.JWT(d.auth))

	authed.GET("/users/admin/:email", d.userH.CheckAdmin)
	authed.GET("/users/instructor/:email", d.userH.CheckInstructor)
	authed.GET("/users/student/:email", d.userH.CheckStudent)
	authed.GET("/userRole/:email", d.userH.FindByEmail)

	authed.POST("/selectedClass", d.selectionH.Select)
	authed.GET("/myclass/:email", d.selectionH.ListByStudent)
	authed.DELETE("/deleteSelectedClass/:id", d.selectionH.Remove)

	authed.POST("/create-payment-intent", d.paymentH.CreateIntent)
	authed.POST("/payments", middleware.Audit(d.auditRepo, models.AuditActionPayment, "enrollment"),
		d.enrollH.RecordPayment)
	authed.GET("/myEnrolledClass/:email", d.enrollH.ListByStudent)
	authed.GET("/myEnrolledClass/:email/receipt", d.enrollH.Receipt)
	authed.PUT("/updateavailableseats/:id", d.classH.DecrementSeats)

	// Submission and feedback take any bearer; no role check.
	authed.POST("/instructorAddedClasses", d.classH.Submit)
	authed.PATCH("/classes/feedback/:id", d.classH.SetFeedback)

	instructor := authed.Group("/", middleware.RequireRole(d.userRepo, models.RoleInstructor))
	instructor.GET("/instructorsAddedClass/:email", d.classH.ListByInstructor)

	admin := authed.Group("/", middleware.RequireRole(d.userRepo, models.RoleAdmin))
	admin.GET("/manageClasses", d.classH.ListAll)
	admin.PUT("/classes/approve/:id", middleware.Audit(d.auditRepo, models.AuditActionClassReview, "class"),
		d.classH.Review)
	admin.GET("/allRegisteredUsers", d.userH.ListAll)
	admin.GET("/allRegisteredUsers/export", d.userH.Export)
	admin.PUT("/users/role/:id", middleware.Audit(d.auditRepo, models.AuditActionRoleUpdate, "user"),
		d.userH.UpdateRole)

	return r
}
