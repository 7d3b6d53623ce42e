// Package main runs the travel marketplace HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ulmj7/fulltravelapp/config"
	"github.com/Ulmj7/fulltravelapp/internal/admin"
	"github.com/Ulmj7/fulltravelapp/internal/auth"
	"github.com/Ulmj7/fulltravelapp/internal/middleware"
	"github.com/Ulmj7/fulltravelapp/internal/models"
	"github.com/Ulmj7/fulltravelapp/internal/orders"
	"github.com/Ulmj7/fulltravelapp/internal/programs"
	"github.com/Ulmj7/fulltravelapp/pkg/database"
	redisclient "github.com/Ulmj7/fulltravelapp/pkg/redis"
	"github.com/Ulmj7/fulltravelapp/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Redis only backs the auth rate limiter; the API runs without it.
	var rdb *redisclient.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisclient.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("redis disabled", zap.Error(err))
		} else {
			defer rdb.Close()
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, cfg.Admin, cfg.Signup, logger)

	// Admin
	adminRepo := admin.NewRepository(pool)
	adminHandler := admin.NewHandler(adminRepo, logger)

	// Programs
	programRepo := programs.NewRepository(pool)
	programHandler := programs.NewHandler(programRepo, logger)

	// Orders
	orderRepo := orders.NewRepository(pool)
	orderHandler := orders.NewHandler(orderRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Prometheus())

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var counter middleware.Counter
	if rdb != nil {
		counter = middleware.RedisCounter(rdb.Client)
	}
	limiter := middleware.RateLimit(counter, cfg.RateLimit.LoginLimit,
		time.Duration(cfg.RateLimit.LoginWindowSec)*time.Second, logger)

	// Auth (public, rate limited)
	authGroup := router.Group("/auth")
	authGroup.Use(limiter)
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}

	// Public catalog
	router.GET("/programs/all", programHandler.ListAll)

	// Admin (JWT + admin role)
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.JWT(jwtService), middleware.RequireRole(models.RoleAdmin))
	{
		adminGroup.POST("/create-organization", adminHandler.CreateOrganization)
		adminGroup.GET("/organizations", adminHandler.ListOrganizations)
		adminGroup.GET("/statistics", adminHandler.GetStatistics)
		adminGroup.DELETE("/organizations/:id", adminHandler.DeleteOrganization)
	}

	// Orders (any authenticated identity; queries are scoped to the caller)
	orderGroup := router.Group("/orders")
	orderGroup.Use(middleware.JWT(jwtService))
	{
		orderGroup.POST("/create", orderHandler.Create)
		orderGroup.POST("/:id/complete-payment", orderHandler.CompletePayment)
		orderGroup.GET("/my-orders", orderHandler.ListMine)
		orderGroup.GET("/:id", orderHandler.GetByID)
		orderGroup.POST("/:id/cancel", orderHandler.Cancel)
	}

	// Programs (authenticated; create additionally checks the organization role)
	programGroup := router.Group("/programs")
	programGroup.Use(middleware.JWT(jwtService))
	{
		programGroup.POST("/create", programHandler.Create)
		programGroup.GET("/my-programs", programHandler.ListMine)
		programGroup.PUT("/:id", programHandler.Update)
		programGroup.DELETE("/:id", programHandler.Delete)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
