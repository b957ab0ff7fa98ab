package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/taskloop/taskloop/config"
	"github.com/taskloop/taskloop/internal/digest"
	"github.com/taskloop/taskloop/internal/email"
	"github.com/taskloop/taskloop/internal/health"
	"github.com/taskloop/taskloop/internal/infrastructure/postgres"
	ctxlog "github.com/taskloop/taskloop/internal/log"
	"github.com/taskloop/taskloop/internal/metrics"
	"github.com/taskloop/taskloop/internal/token"
	httptransport "github.com/taskloop/taskloop/internal/transport/http"
	"github.com/taskloop/taskloop/internal/transport/http/handler"
	"github.com/taskloop/taskloop/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	tokens := token.NewManager([]byte(cfg.JWTSecret), time.Duration(cfg.JWTTTLHours)*time.Hour)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, tokens, sender, logger, cfg.BcryptCost)
	userUsecase := usecase.NewUserUsecase(userRepo)
	taskUsecase := usecase.NewTaskUsecase(taskRepo)

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	userHandler := handler.NewUserHandler(userUsecase, logger)
	taskHandler := handler.NewTaskHandler(taskUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, userHandler, taskHandler, tokens),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	var digestCron *cron.Cron
	if cfg.DigestEnabled {
		d := digest.New(taskRepo, sender, logger)
		digestCron = cron.New()
		if _, err := digestCron.AddFunc(cfg.DigestCron, func() { d.Run(ctx) }); err != nil {
			stop()
			log.Fatalf("digest cron: %v", err)
		}
		digestCron.Start()
		logger.Info("digest scheduled", "cron", cfg.DigestCron)
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	if digestCron != nil {
		<-digestCron.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
