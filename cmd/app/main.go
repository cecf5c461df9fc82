// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-announce-relay/internal/application"
	"telegram-announce-relay/internal/config"
	tele "telegram-announce-relay/internal/infra/adapters/telegram"
	httpapi "telegram-announce-relay/internal/infra/http"
	"telegram-announce-relay/internal/infra/i18n"
	"telegram-announce-relay/internal/infra/logging"
	"telegram-announce-relay/internal/infra/memstore"
	"telegram-announce-relay/internal/infra/metrics"
	"telegram-announce-relay/internal/usecase"
)

// set via -ldflags "-X main.version=... -X main.commit=..."
var (
	version = "dev"
	commit  = "none"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- Config ----
	cfg, err := config.LoadConfig()
	if err != nil {
		boot := logging.New(config.LogConfig{Level: "info", Format: "console"})
		boot.Fatal().Err(err).Msg("config")
	}
	cfg.Runtime.Version = version
	cfg.Runtime.Commit = commit

	logger := logging.New(cfg.Log)
	metrics.MustRegister()
	metrics.SetBuildInfo(cfg.Runtime.Version, cfg.Runtime.Commit)
	logger.Info().
		Str("version", cfg.Runtime.Version).
		Str("operator", cfg.Bot.Operator).
		Int("mentions", len(cfg.Bot.Mentions)).
		Int("workers", cfg.Bot.Workers).
		Msg("starting announce relay")

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}

	// ---- Stores ----
	drafts := memstore.NewDraftRepo()
	states := memstore.NewStateRepo()
	flowMsgs := memstore.NewFlowMessageRepo()

	// ---- Use cases ----
	tr := i18n.MustDefault()
	broadcastUC := usecase.NewBroadcastUseCase(botAdapter, cfg.Bot.Mentions, logger)
	announceUC := usecase.NewAnnounceUseCase(botAdapter, drafts, states, flowMsgs, broadcastUC, tr, logger)

	// ---- Facade ----
	facade, err := application.NewBotFacade(cfg.Bot.Operator, announceUC, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("facade")
	}

	if err := announceUC.RegisterCommands(ctx); err != nil {
		logger.Warn().Err(err).Msg("set bot commands")
	}

	// ---- HTTP ----
	servers := []*httpapi.Server{
		httpapi.NewServer("health", cfg.HTTP.Port, httpapi.NewHealthRouter(logger), logger),
	}
	if cfg.HTTP.MetricsPort != 0 {
		servers = append(servers, httpapi.NewServer("metrics", cfg.HTTP.MetricsPort, httpapi.NewMetricsRouter(logger), logger))
	}
	srvErr := make(chan error, len(servers))
	for _, s := range servers {
		go func(s *httpapi.Server) {
			if err := s.Start(); err != nil {
				srvErr <- err
			}
		}(s)
	}

	// ---- Polling ----
	pollErr := make(chan error, 1)
	go func() {
		pollErr <- botAdapter.StartPolling(ctx, facade)
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	pollDone := false
	select {
	case sig := <-sigc:
		logger.Info().Str("signal", sig.String()).Msg("shutdown requested")
	case err := <-pollErr:
		pollDone = true
		if err != nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
			exitCode = 1
		}
	case err := <-srvErr:
		logger.Error().Err(err).Msg("http server failed")
		exitCode = 1
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("http shutdown")
		}
	}

	// a long poll in flight only returns when its request completes
	if !pollDone {
		select {
		case err := <-pollErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn().Err(err).Msg("telegram polling stopped")
			}
		case <-shutdownCtx.Done():
			logger.Warn().Msg("polling did not stop in time")
		}
	}

	logger.Info().Int("exit_code", exitCode).Msg("bye")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
