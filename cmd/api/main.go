package main

import (
	"log"
	"time"

	"errorfree/internal/config"
	"errorfree/internal/database"
	"errorfree/internal/middleware"
	"errorfree/internal/modules/admin"
	"errorfree/internal/modules/booking"
	"errorfree/internal/modules/catalog"
	"errorfree/internal/modules/checkout"
	jwtsvc "errorfree/internal/pkg/jwt"
	"errorfree/internal/pkg/logger"
	"errorfree/internal/pkg/response"
	"errorfree/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}

	stripe.Key = cfg.StripeSecretKey

	bookingRepo := repository.NewBookingRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	gateway, err := checkout.NewGateway(cfg, zlog)
	if err != nil {
		zlog.Fatal("checkout gateway init failed", zap.Error(err))
	}

	j := jwtsvc.New(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	bookingService := booking.NewService(bookingRepo, gateway, zlog)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(serviceRepo, cfg.Currency)
	catalogHandler := catalog.NewHandler(catalogService)

	adminService := admin.NewService(adminRepo, bookingRepo, j, zlog)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(middleware.RequestLogger(zlog))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			response.Success(c, 200, gin.H{"status": "ok"})
		})

		// public
		bookingHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)

		// protected staff surface
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			adminHandler.RegisterRoutes(protected)
		}
	}

	zlog.Info("starting api",
		zap.String("port", cfg.AppPort),
		zap.String("payment_mode", cfg.PaymentMode),
	)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
