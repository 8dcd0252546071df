package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"portalgambit/backend/internal/auth"
	"portalgambit/backend/internal/config"
	"portalgambit/backend/internal/database"
	"portalgambit/backend/internal/handler"
	"portalgambit/backend/internal/identity"
	"portalgambit/backend/internal/logging"
	"portalgambit/backend/internal/scheduler"
	"portalgambit/backend/internal/service"
	"portalgambit/backend/pkg/jwt"

	// Swagger imports
	_ "portalgambit/backend/docs" // This is important for swag to find the generated docs
)

// @title           Portal Gambit API
// @version         1.0
// @description     Backend for the Portal Gambit chess variant: sessions, profiles, friends, game history and analytics.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Debug = cfg.Debug
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	store, err := database.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing document store: %v", err)
		}
	}()

	codec := jwt.NewCodec(cfg.JWTSecret, cfg.TokenTTL())

	var provider identity.Provider
	if cfg.IdentityConfigured() {
		fp, err := identity.NewFirebaseProvider(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize identity provider: %v", err)
		}
		provider = fp
	} else {
		log.Println("Warning: no Firebase credentials configured, token exchange is disabled")
	}

	var limiter auth.Limiter
	if cfg.RedisAddr != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		limiter = auth.NewRedisLimiter(rdb, cfg.TokenRateLimit, cfg.TokenRateWindow())
	}

	profiles := service.NewProfileService(store)
	friends := service.NewFriendService(store)
	history := service.NewHistoryService(store, profiles)
	analytics := service.NewAnalyticsService(store)

	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	if origins := cfg.Origins(); len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	handler.RegisterRoutes(router, handler.Handlers{
		Auth:      handler.NewAuthHandler(identity.NewGateway(provider, codec)),
		Profiles:  handler.NewProfileHandler(profiles),
		Friends:   handler.NewFriendHandler(friends),
		History:   handler.NewHistoryHandler(history),
		Analytics: handler.NewAnalyticsHandler(analytics),
	}, codec, limiter)

	if cfg.EnableScheduler {
		sched := scheduler.NewScheduler(analytics)
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Server is running on :%s\n", cfg.Port)
		fmt.Printf("Swagger UI is available at http://localhost:%s/swagger/index.html\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
