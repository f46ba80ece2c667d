package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/goals-course/authenticator/internal/api"
	"github.com/goals-course/authenticator/internal/core/ports"
	"github.com/goals-course/authenticator/internal/core/service"
	"github.com/goals-course/authenticator/internal/infrastructure/config"
	"github.com/goals-course/authenticator/internal/infrastructure/db/postgres"
	redisdb "github.com/goals-course/authenticator/internal/infrastructure/db/redis"
	"github.com/goals-course/authenticator/pkg/logger"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	refreshRepo := postgres.NewRefreshTokenRepository(db)

	tokenService := service.NewTokenService(service.TokenServiceConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Issuer:        cfg.JWT.Issuer,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	}, log)

	// The login throttle only runs when a Redis address is configured.
	var throttle ports.LoginThrottle
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(context.Background(), redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		rdb = client
		throttle = redisdb.NewLoginThrottle(client, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)
	}

	authenticator := service.NewAuthenticator(userRepo)
	refreshService := service.NewRefreshTokenService(refreshRepo, userRepo, tokenService, log)
	sessionService := service.NewSessionService(userRepo, authenticator, tokenService, refreshService, throttle, log)
	userService := service.NewUserService(userRepo, roleRepo)

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = service.NewSeeder(userRepo, roleRepo, log).Run(seedCtx, service.AdminSeed{
		Username:  cfg.Admin.Username,
		Password:  cfg.Admin.Password,
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	e := api.NewRouter(api.Dependencies{
		Users:    userRepo,
		Tokens:   tokenService,
		Sessions: sessionService,
		Accounts: userService,
		DB:       db,
		Redis:    rdb,
		Log:      log,
	})
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("authenticator listening")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
