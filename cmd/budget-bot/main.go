package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/jlgsjlgs/telegram-budget-bot/internal/backend"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/bot"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/config"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/expense"
	apphttp "github.com/jlgsjlgs/telegram-budget-bot/internal/http"
	applog "github.com/jlgsjlgs/telegram-budget-bot/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}

	allowed, err := cfg.ParseAuthorizedUsers()
	if err != nil {
		logger.Error("cannot parse allow-list", applog.FieldError, err.Error())
		os.Exit(1)
	}

	categoryNames := cfg.ParseCategories()
	if categoryNames == nil {
		categoryNames = expense.DefaultCategories
	}
	categories := expense.NewCategorySet(categoryNames)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, err := tgbot.New(cfg.BotToken)
	if err != nil {
		logger.Error("failed to create Telegram client", applog.FieldError, err.Error())
		os.Exit(1)
	}

	submitter, err := backend.NewFactory(logger).Create(ctx, backend.Config{
		Type:          backend.Type(cfg.Backend),
		ScriptURL:     cfg.ScriptURL,
		AppKey:        cfg.AppKey,
		SubmitTimeout: cfg.SubmitTimeout,
	})
	if err != nil {
		logger.Error("failed to initialize spreadsheet backend", applog.FieldError, err.Error())
		os.Exit(1)
	}

	dispatcher := bot.NewDispatcher(
		bot.NewGate(allowed),
		categories,
		submitter,
		bot.NewTelegramSender(api, logger),
		logger,
	)

	srv := apphttp.NewServer(":"+cfg.Port, cfg.WebhookSecret, dispatcher, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second // one update can wait on two outbound calls
	srv.IdleTimeout = 120 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting webhook server",
			applog.FieldOperation, applog.OpStartup,
			"port", cfg.Port,
			applog.FieldBackend, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
