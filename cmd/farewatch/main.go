// farewatch polls flight fares for a fixed route list every six hours and
// prints an alert when the cheapest offer drops below the configured
// ceiling.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/farewatch/farewatch/internal/amadeus"
	"github.com/farewatch/farewatch/internal/config"
	"github.com/farewatch/farewatch/internal/history"
	"github.com/farewatch/farewatch/internal/logger"
	"github.com/farewatch/farewatch/internal/poller"
)

func main() {
	once := flag.Bool("once", false, "run a single poll cycle and exit")
	interval := flag.Duration("interval", 0, "override the poll interval")
	flag.Parse()

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
	ceiling, err := cfg.Ceiling()
	if err != nil {
		logger.Logger.Fatal("invalid FAREWATCH_MAX_PRICE", zap.Error(err))
	}

	p := &poller.Poller{
		Client: &amadeus.Client{
			APIKey:    cfg.AmadeusAPIKey,
			APISecret: cfg.AmadeusAPISecret,
			TokenURL:  cfg.TokenURL,
			SearchURL: cfg.SearchURL,
		},
		Origin:        cfg.Origin,
		Destinations:  cfg.Destinations,
		DepartureDate: cfg.DepartureDate,
		Ceiling:       ceiling,
		MaxOffers:     cfg.MaxOffers,
		History:       history.Store{Path: cfg.HistoryFile},
		ErrorLog:      history.ErrorLog{Path: cfg.ErrorLogFile},
		Out:           os.Stdout,
		Log:           logger.Logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		p.RunCycle(ctx)
		return
	}
	p.Run(ctx, resolveInterval(*interval, cfg.PollInterval))
}

func resolveInterval(override, configured time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	if configured > 0 {
		return configured
	}
	return 6 * time.Hour
}
