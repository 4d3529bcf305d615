package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/skills-messenger/internal/client/kafka"
	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/databus/user"
	"github.com/s21platform/skills-messenger/internal/repository/mongo"
	"github.com/s21platform/skills-messenger/internal/repository/postgres"
)

const (
	userUpdateConsumerGroupID = "messenger-user-updater"
	shutdownTimeout           = 5 * time.Second
)

type storage interface {
	user.DBRepo
	Close()
}

func main() {
	cfg := config.MustLoad()
	logger := logger_lib.New(cfg.Logger.Host, cfg.Logger.Port, cfg.Service.Name, cfg.Platform.Env)

	var dbRepo storage
	if cfg.Service.Storage == config.StorageMongo {
		dbRepo = mongo.New(cfg)
	} else {
		dbRepo = postgres.New(cfg)
	}
	defer dbRepo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = context.WithValue(ctx, config.KeyLogger, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	consumer := kafka.NewConsumer(cfg, cfg.Kafka.UserTopic, userUpdateConsumerGroupID, kafka.NewConsumerMetrics(reg))
	defer consumer.Close()

	userHandler := user.New(dbRepo)

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Worker.MetricsPort),
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server error: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		return consumer.Run(gCtx, userHandler.Handler)
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(fmt.Sprintf("failed to shutdown metrics server: %v", err))
		}
		return nil
	})

	logger.Info(fmt.Sprintf("consuming %s as %s, metrics on :%s", cfg.Kafka.UserTopic, userUpdateConsumerGroupID, cfg.Worker.MetricsPort))

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("worker stopped: %v", err))
	}
}
