package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabclean/internal/cleaner"
	"github.com/inferloop/tabclean/internal/server"
	"github.com/inferloop/tabclean/internal/storage/redis"
	"github.com/inferloop/tabclean/pkg/constants"
	"github.com/inferloop/tabclean/pkg/interfaces"
)

func main() {
	config := ParseFlags()

	logger := setupLogger(config.LogLevel, config.LogFormat)

	logger.WithFields(logrus.Fields{
		"version":   Version,
		"commit":    GitCommit,
		"buildDate": BuildDate,
	}).Info("Starting Tabular Dataset Cleaning Server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	engineConfig := cleaner.DefaultConfig()
	engineConfig.ParallelWorkers = config.ParallelWorkers
	engine := cleaner.NewEngine(engineConfig, logger)

	var cache interfaces.ResultCache
	if config.RedisAddr != "" {
		redisCache, err := redis.NewResultCache(&redis.Config{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
			TTL:      config.CacheTTL,
		}, logger)
		if err != nil {
			logger.WithError(err).Fatal("Invalid Redis configuration")
		}
		if err := redisCache.Connect(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisCache.Close()
		cache = redisCache
	}

	serverConfig := &server.Config{
		Host:            config.Host,
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		ReadTimeout:     constants.DefaultReadTimeout,
		WriteTimeout:    constants.DefaultWriteTimeout,
		IdleTimeout:     constants.DefaultIdleTimeout,
		ShutdownTimeout: constants.DefaultShutdownTimeout,
		EnableMetrics:   true,
		EnableCORS:      true,
		MaxRequestSize:  constants.MaxUploadSize,
	}
	if config.EnableTLS {
		serverConfig.TLSCertFile = config.TLSCert
		serverConfig.TLSKeyFile = config.TLSKey
	}
	srv, err := server.NewServer(serverConfig, engine, cache, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create server")
	}

	go func() {
		if err := srv.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-sigChan
	logger.Info("Shutdown signal received")

	if err := srv.Stop(context.Background()); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	logger.Info("Server stopped")
}

func setupLogger(level, format string) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
