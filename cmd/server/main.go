package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucasmn/autocare-server/internal/alerts"
	"github.com/lucasmn/autocare-server/internal/api"
	"github.com/lucasmn/autocare-server/internal/config"
	"github.com/lucasmn/autocare-server/internal/repository"
	"github.com/lucasmn/autocare-server/internal/service"
	"github.com/lucasmn/autocare-server/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Set up logging
	logger, err := utils.NewLogger(utils.LoggerConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		sugar.Fatalf("failed to set up database: %v", err)
	}
	defer db.Close()

	// Create repository
	repo := repository.NewSQLRepository(db)

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed the first admin account on an empty install
	created, err := svc.EnsureAdminAccount(ctx)
	if err != nil {
		sugar.Fatalf("failed to ensure admin account: %v", err)
	}
	if created {
		sugar.Warn("seeded default admin account (username 'admin'); change the password on first login")
	}

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start the background alert scanner
	scanner := alerts.NewScanner(svc, sugar, cfg.Alerts)
	go scanner.Run(ctx)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		sugar.Infof("starting server on %s (db driver %s)", srv.Addr, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Warnf("server shutdown: %v", err)
	}
}
