package main

import (
	"context"
	"fmt"
	"os"

	authhttp "github.com/AlibekovAA/carsle-auth/internal/auth/http"
	"github.com/AlibekovAA/carsle-auth/internal/auth/service"
	"github.com/AlibekovAA/carsle-auth/internal/common/clock"
	"github.com/AlibekovAA/carsle-auth/internal/common/config"
	"github.com/AlibekovAA/carsle-auth/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/carsle-auth/internal/common/crypto"
	"github.com/AlibekovAA/carsle-auth/internal/common/db"
	commonhttp "github.com/AlibekovAA/carsle-auth/internal/common/http"
	"github.com/AlibekovAA/carsle-auth/internal/common/logger"
	srv "github.com/AlibekovAA/carsle-auth/internal/common/server"
	"github.com/AlibekovAA/carsle-auth/internal/common/token"
	userrepo "github.com/AlibekovAA/carsle-auth/internal/user/repository"
)

func main() {
	cfg, err := config.LoadAuthConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, constants.ServiceName, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.InsecureJWTSecret {
		log.Warnf("JWT_SECRET is not set, using the built-in fallback secret; tokens can be forged by anyone who knows it")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, log, pool); err != nil {
			pool.Close()
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)

	clk := clock.NewRealClock()
	authService := service.NewAuthService(service.AuthServiceDeps{
		Repo:        userrepo.NewPgRepository(pool),
		Hasher:      commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		Tokens:      token.NewService(cfg.JWTSecret, cfg.TokenTTL, clk),
		IDGenerator: commoncrypto.NewUUIDGenerator(),
		Clock:       clk,
		Referrals:   service.AcceptAllReferrals{},
		Log:         log,
	})
	otpService := service.NewOTPService(log)

	router := authhttp.NewHandler(authService, otpService, log, authhttp.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), commonhttp.BuildBaseHandler(log, router))

	srv.StartWithGracefulShutdown(server, log, constants.ServiceName,
		func(ctx context.Context) error {
			log.Infof("%s service: stopping pool metrics", constants.ServiceName)
			cancel()
			return nil
		},
		func(ctx context.Context) error {
			log.Infof("%s service: closing database pool", constants.ServiceName)
			pool.Close()
			return nil
		},
	)
}
