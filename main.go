// file: main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MYR/config"
	"MYR/controllers"
	"MYR/database"
	"MYR/repos"
	"MYR/routes"
	"MYR/services"
	"MYR/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx := context.Background()

	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if cfg.AutoMigrate {
		if err := database.MigrateTables(db); err != nil {
			return err
		}
	}

	rdb, err := database.NewRedis(ctx, cfg)
	if err != nil {
		// The cache is optional; run without it.
		logger.Warn("redis unavailable, overlap cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = utils.GenerateInvitationCode(32)
		logger.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	userRepo := repos.NewUserRepo(db, logger)
	teamRepo := repos.NewTeamRepo(db, logger)
	reservationRepo := repos.NewReservationRepo(db, logger)

	overlap := services.NewOverlapService(
		repos.NewAvailabilityRepo(db, logger),
		services.NewOverlapCache(rdb, cfg.OverlapCacheTTL(), logger),
		logger,
	)
	accounts := services.NewAccountService(userRepo, logger)
	catalog, err := services.LoadCatalog(nil)
	if err != nil {
		return err
	}
	reservations := services.NewReservationService(reservationRepo, catalog, cfg.ReservationMaxDuration(), logger)

	if _, err := accounts.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminName); err != nil {
		return err
	}
	if _, err := reservations.SeedCatalog(ctx); err != nil {
		return err
	}

	scheduler, err := services.SetupCron(cfg.CleanupCron, reservations, cfg.ReservationRetention(), cfg.Location(), logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	h := &controllers.Handler{
		DB:           db,
		Accounts:     accounts,
		Availability: services.NewAvailabilityService(userRepo, overlap, logger),
		Teams:        services.NewTeamService(teamRepo, userRepo, overlap, logger),
		Reservations: reservations,
		Tokens:       utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL()),
		Loc:          cfg.Location(),
		Log:          logger,
	}
	r := routes.SetupRouter(h, routes.Options{
		AllowedOrigins:  cfg.AllowedOrigins(),
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
