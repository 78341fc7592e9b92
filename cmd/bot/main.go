package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"pushup-bot/internal/bot"
	"pushup-bot/internal/command"
	"pushup-bot/internal/config"
	"pushup-bot/internal/logging"
	"pushup-bot/internal/metrics"
	"pushup-bot/internal/pushups"
	"pushup-bot/internal/report"
	"pushup-bot/internal/repository"
)

var version = "dev"

func main() {
	// Загружаем переменные окружения из .env файла
	loaded, dotenvErr := config.LoadDotEnv()

	// Разбираем флаги и окружение; без токена разбор вернет ошибку
	cfg, _, err := config.Parse(os.Args[1:], kong.Vars{"version": version})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch {
	case dotenvErr != nil:
		logger.Warnf("Warning: %v", dotenvErr)
	case !loaded:
		logger.Infof(".env file not found, using system environment variables")
	}

	if err := run(cfg, logger); err != nil {
		logger.Errorf("❌ %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.ZapLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Инициализируем репозиторий для работы с данными
	store, err := repository.Open(ctx, cfg.Storage, cfg.DataDir, cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer store.Close()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.MetricsAddr != "" {
		reg := metrics.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		srv := metrics.NewServer(cfg.MetricsAddr, reg)
		startMetricsServer(srv, logger)
		defer shutdownServer(srv, logger)
	}

	service := pushups.NewService(store,
		pushups.WithGoals(cfg.Goals),
		pushups.WithLogger(logger),
		pushups.WithMetrics(recorder),
	)
	router := command.NewRouter()
	service.Register(router)

	// Создаем и запускаем бота
	botInstance, err := bot.NewBot(cfg.Token, router, logger,
		bot.WithPollTimeout(cfg.PollTimeout),
		bot.WithAPIURL(cfg.APIURL),
	)
	if err != nil {
		return err
	}

	if cfg.ReportChat != 0 {
		reporter, err := report.New(service, botInstance, cfg.ReportChat, cfg.ReportAt, logger)
		if err != nil {
			return err
		}
		reporter.Start()
		defer func() {
			if err := reporter.Stop(); err != nil {
				logger.Warnf("Failed to stop report scheduler: %v", err)
			}
		}()
	}

	logger.Infof("Starting pushup bot (storage=%s, goals=%t)...", cfg.Storage, cfg.Goals)
	botInstance.Start(ctx)
	logger.Infof("Bot stopped")
	return nil
}

func startMetricsServer(srv *http.Server, logger logging.Logger) {
	go func() {
		logger.Infof("Metrics listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("❌ Metrics server failed: %v", err)
		}
	}()
}

func shutdownServer(srv *http.Server, logger logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warnf("Failed to stop metrics server: %v", err)
	}
}
