package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"decentratrust/internal/config"
	apihttp "decentratrust/internal/http"
	"decentratrust/internal/ledger"
	"decentratrust/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Sin configuracion de ledger el servicio arranca en modo stub: las
	// publicaciones se registran localmente y no bloquean la evaluacion.
	var ledgerClient ledger.Client = ledger.NewDisabledClient("ledger not configured - stub mode")
	if cfg.LedgerConfigured() {
		ctxDial, cancel := context.WithTimeout(ctx, 10*time.Second)
		ethClient, err := ledger.NewEthClient(
			ctxDial,
			logger,
			cfg.RPCURL,
			cfg.OracleAddress,
			cfg.PrivateKey,
			cfg.ChainID,
			time.Duration(cfg.SubmitTimeoutSeconds)*time.Second,
		)
		cancel()
		if err != nil {
			logger.Warn("ledger connection failed, falling back to stub mode", zap.Error(err))
		} else {
			ledgerClient = ethClient
			defer ethClient.Close()
		}
	} else {
		logger.Info("ledger not configured, running in stub mode")
	}

	limiter := service.NewPublishRateLimiter(
		time.Duration(cfg.PushRateWindowSeconds)*time.Second,
		cfg.PushRateMax,
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisPublishRateLimiter(
				redisClient,
				time.Duration(cfg.PushRateWindowSeconds)*time.Second,
				cfg.PushRateMax,
			)
		}
		cancel()
	}

	var tokenSvc *service.TokenService
	if cfg.AuthSecret != "" {
		tokenSvc = service.NewTokenService(cfg.AuthSecret, time.Duration(cfg.AuthTokenTTLMinutes)*time.Minute)
	} else {
		logger.Warn("auth secret not configured, write endpoints are open")
	}

	trustSvc := service.NewTrustService(logger, ledgerClient, limiter)
	scoreHandler := apihttp.NewScoreHandler(logger, trustSvc)
	healthHandler := apihttp.NewHealthHandler(version, ledgerClient)
	router := apihttp.NewRouter(logger, scoreHandler, healthHandler, tokenSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.Bool("ledger_connected", ledgerClient.Connected()))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
