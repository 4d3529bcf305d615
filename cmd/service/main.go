package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/skills-messenger/internal/client/kafka"
	"github.com/s21platform/skills-messenger/internal/config"
	api "github.com/s21platform/skills-messenger/internal/generated"
	"github.com/s21platform/skills-messenger/internal/infra"
	"github.com/s21platform/skills-messenger/internal/messaging"
	"github.com/s21platform/skills-messenger/internal/pkg/jwt"
	"github.com/s21platform/skills-messenger/internal/pkg/validator"
	"github.com/s21platform/skills-messenger/internal/presence"
	"github.com/s21platform/skills-messenger/internal/realtime"
	"github.com/s21platform/skills-messenger/internal/repository/mongo"
	"github.com/s21platform/skills-messenger/internal/repository/postgres"
	"github.com/s21platform/skills-messenger/internal/repository/redis"
	"github.com/s21platform/skills-messenger/internal/rest"
	"github.com/s21platform/skills-messenger/internal/service"
	"github.com/s21platform/skills-messenger/pkg/messenger"
)

const (
	shutdownTimeout   = 10 * time.Second
	limiterIdleWindow = 5 * time.Minute
)

type storage interface {
	messaging.DBRepo
	Close()
}

func newStorage(cfg *config.Config) storage {
	if cfg.Service.Storage == config.StorageMongo {
		return mongo.New(cfg)
	}
	return postgres.New(cfg)
}

func main() {
	cfg := config.MustLoad()
	logger := logger_lib.New(cfg.Logger.Host, cfg.Logger.Port, cfg.Service.Name, cfg.Platform.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbRepo := newStorage(cfg)
	defer dbRepo.Close()

	var publisher messaging.EventPublisher = kafka.NopPublisher{}
	if cfg.Kafka.Host != "" {
		producer := kafka.New(cfg)
		defer producer.Close()
		publisher = producer
	}

	registry := presence.New()

	var (
		mirror      realtime.PresenceMirror
		lookup      service.PresenceLookup = registry
		redisMirror *redis.Presence
	)
	if cfg.Redis.Host != "" {
		redisMirror = redis.New(cfg)
		defer redisMirror.Close()
		mirror = redisMirror
		lookup = redisMirror
	}

	vldtr := validator.New()
	jwtGenerator := jwt.New(cfg.Realtime.JWTSecret, cfg.Realtime.TokenTTL)
	store := messaging.New(dbRepo, publisher, vldtr)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := infra.NewHTTPMetrics(reg)
	limiter := infra.NewRateLimiter(cfg.RateLimit)

	gateway := realtime.New(store, jwtGenerator, registry, mirror, realtime.NewMetrics(reg), logger, cfg.Realtime)

	messengerService := service.New(store, lookup)
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			infra.AuthInterceptorGRPC,
			infra.LoggerGRPC(logger),
		),
	)
	messenger.RegisterMessengerServiceServer(grpcServer, messengerService)

	handler := rest.New(store, gateway, registry, jwtGenerator)
	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(httpMetrics.Middleware)
	router.Use(infra.RateLimitHTTP(limiter))

	router.Get("/api/health", handler.Health)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	router.Handle("/ws", gateway)

	router.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return infra.AuthInterceptorHTTP(next)
		})
		r.Use(func(next http.Handler) http.Handler {
			return infra.LoggerHTTP(next, logger)
		})

		api.HandlerWithOptions(handler, api.ChiServerOptions{
			BaseRouter:       r,
			ErrorHandlerFunc: rest.ErrorHandler,
		})
	})

	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Service.Port))
	if err != nil {
		logger.Error(fmt.Sprintf("failed to start TCP listener: %v", err))
		return
	}

	m := cmux.New(listener)

	grpcListener := m.MatchWithWriters(cmux.HTTP2MatchHeaderFieldPrefixSendSettings("content-type", "application/grpc"))
	httpListener := m.Match(cmux.HTTP1Fast())

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) && !errors.Is(err, cmux.ErrListenerClosed) {
			return fmt.Errorf("gRPC server error: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, cmux.ErrListenerClosed) {
			return fmt.Errorf("HTTP server error: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := m.Serve(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("cannot start service: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				limiter.Prune(limiterIdleWindow)

				if redisMirror == nil {
					continue
				}
				if _, err := redisMirror.Prune(gCtx); err != nil {
					logger.Warn(fmt.Sprintf("failed to prune presence: %v", err))
				}
			}
		}
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(fmt.Sprintf("failed to shutdown HTTP server: %v", err))
		}
		grpcServer.GracefulStop()
		m.Close()

		return nil
	})

	logger.Info(fmt.Sprintf("%s listening on :%s with %s storage", cfg.Service.Name, cfg.Service.Port, cfg.Service.Storage))

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("server error: %v", err))
	}
}
