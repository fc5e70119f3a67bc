// farewatch-bot serves the Telegram command surface: per-user search
// configuration and on-demand round-trip fare searches.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/farewatch/farewatch/internal/amadeus"
	"github.com/farewatch/farewatch/internal/bot"
	"github.com/farewatch/farewatch/internal/config"
	"github.com/farewatch/farewatch/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(cfg.LoggerLevel, cfg.LoggerFormat, cfg.Environment)
	defer logger.Sync()

	if err := cfg.RequireAmadeus(); err != nil {
		logger.Logger.Fatal("missing credentials", zap.Error(err))
	}
	if err := cfg.RequireTelegram(); err != nil {
		logger.Logger.Fatal("missing credentials", zap.Error(err))
	}

	client := &amadeus.Client{
		APIKey:    cfg.AmadeusAPIKey,
		APISecret: cfg.AmadeusAPISecret,
		TokenURL:  cfg.TokenURL,
		SearchURL: cfg.SearchURL,
	}
	handler := bot.NewHandler(client, cfg.AuthorizedChatID, cfg.MaxOffers, logger.Logger)

	b, err := bot.New(cfg.TelegramToken, handler, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("telegram init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b.Run(ctx)
}
