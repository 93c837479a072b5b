package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flatmate/config"
	"flatmate/internal/handler"
	"flatmate/internal/model"
	"flatmate/internal/repository"
	"flatmate/internal/service"
	dbPkg "flatmate/pkg/db"
	"flatmate/pkg/jwt"
	"flatmate/pkg/logger"
	"flatmate/pkg/mailer"
	redisPkg "flatmate/pkg/redis"
	"flatmate/pkg/response"
	"flatmate/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== flatMATE starting ===")
	log.Info("server configuration",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("log_level", cfg.Log.Level),
	)

	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("database close failed", zap.Error(err))
		}
	}()
	log.Info("database connected")

	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.College{},
		&model.Listing{},
		&model.Location{},
		&model.ConnectionRequest{},
		&model.VerificationToken{},
	); err != nil {
		log.Fatal("auto migration failed", zap.Error(err))
	}
	log.Info("auto migration complete")

	// redis holds derived state only; the service runs degraded without it
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("redis unavailable, counters and caches disabled", zap.Error(err))
	} else {
		defer redisPkg.Close()
		log.Info("redis connected")
	}

	jwtSvc := jwt.NewJWTService(cfg.JWT)
	verificationMailer := mailer.NewMailer(cfg.SMTP, cfg.Server.BaseURL)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	listingRepo := repository.NewListingRepository(db)
	requestRepo := repository.NewConnectionRequestRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)

	userSvc := service.NewUserService(userRepo, tokenRepo, verificationMailer, jwtSvc)
	listingSvc := service.NewListingService(listingRepo)
	connectionSvc := service.NewConnectionService(requestRepo, listingRepo, websocket.GetManager())
	collegeSvc := service.NewCollegeService(collegeRepo)

	userHandler := handler.NewUserHandler(userSvc)
	listingHandler := handler.NewListingHandler(listingSvc)
	connectionHandler := handler.NewConnectionHandler(connectionSvc)
	collegeHandler := handler.NewCollegeHandler(collegeSvc)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// jwt/ws config for the websocket upgrade handler
	router.Use(func(c *gin.Context) {
		c.Set("jwt_config", cfg.JWT)
		c.Set("ws_config", cfg.WebSocket)
		c.Next()
	})

	router.Use(logger.LoggerMiddleware())
	router.Use(logger.ErrorLoggerMiddleware())

	setupBasicRoutes(router)

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("/verify-email", userHandler.VerifyEmail)

			authUsers := users.Group("")
			authUsers.Use(jwtSvc.AuthMiddleware())
			{
				authUsers.GET("/profile", userHandler.GetProfile)
			}
		}

		listings := v1.Group("/listings")
		{
			listings.GET("", listingHandler.Feed)
			listings.GET("/:id", listingHandler.Get)

			authListings := listings.Group("")
			authListings.Use(jwtSvc.AuthMiddleware())
			{
				authListings.POST("", listingHandler.Create)
				authListings.GET("/my", listingHandler.Mine)
				authListings.DELETE("/:id", listingHandler.Close)
			}
		}

		requests := v1.Group("/requests")
		requests.Use(jwtSvc.AuthMiddleware())
		{
			requests.POST("", connectionHandler.Create)
			requests.POST("/respond", connectionHandler.Respond)
			requests.GET("/incoming", connectionHandler.Incoming)
			requests.GET("/incoming/count", connectionHandler.PendingCount)
		}

		connections := v1.Group("/connections")
		connections.Use(jwtSvc.AuthMiddleware())
		{
			connections.GET("/:listing_id/contact", connectionHandler.Contact)
		}

		v1.GET("/colleges", collegeHandler.List)
	}

	router.GET("/ws", websocket.WsHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}

func setupBasicRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "flatMATE API",
			"version": "1.0.0",
		})
	})
}
