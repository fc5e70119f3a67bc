// Package poller runs the unattended polling cycle: one token, then every
// watched destination in sequence, selecting the cheapest offer, appending
// history, and printing an alert or status line.
package poller

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/farewatch/farewatch/internal/alert"
	"github.com/farewatch/farewatch/internal/amadeus"
	"github.com/farewatch/farewatch/internal/history"
	"github.com/farewatch/farewatch/internal/offer"
)

// Error-log source labels for failures that are not tied to one route.
const (
	sourceAuth = "AUTH"
	sourceLog  = "LOG"
)

type Poller struct {
	Client        *amadeus.Client
	Origin        string
	Destinations  []string
	DepartureDate string
	Ceiling       decimal.Decimal
	MaxOffers     int

	History  history.Store
	ErrorLog history.ErrorLog

	// Out receives alert/status text. Defaults to io.Discard when nil so
	// tests can run silent.
	Out io.Writer
	Log *zap.Logger

	// Tick is the coarse sleep granularity between due-cycle checks.
	// Defaults to one minute.
	Tick time.Duration
}

// Run executes one cycle immediately, then re-runs every interval until the
// context is cancelled. Between cycles it wakes every Tick to check whether
// a cycle is due instead of sleeping the whole interval.
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	p.log().Info("poller starting",
		zap.String("origin", p.Origin),
		zap.Strings("destinations", p.Destinations),
		zap.Duration("interval", interval),
	)
	p.RunCycle(ctx)
	next := time.Now().Add(interval)

	ticker := time.NewTicker(p.tick())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.log().Info("poller stopping")
			return
		case <-ticker.C:
			if time.Now().Before(next) {
				continue
			}
			p.RunCycle(ctx)
			next = time.Now().Add(interval)
		}
	}
}

// RunCycle polls every destination once. A token failure skips the whole
// cycle; any per-destination failure is logged and the cycle moves on.
func (p *Poller) RunCycle(ctx context.Context) {
	start := time.Now()
	token, err := p.Client.Token(ctx)
	if err != nil {
		p.log().Error("token exchange failed", zap.Error(err))
		p.logError(sourceAuth, err.Error())
		fmt.Fprintln(p.out(), "could not obtain access token, skipping cycle")
		return
	}

	for _, dest := range p.Destinations {
		p.checkDestination(ctx, token, dest)
	}
	p.log().Info("poll cycle finished",
		zap.Int("destinations", len(p.Destinations)),
		zap.Duration("took", time.Since(start)),
	)
}

func (p *Poller) checkDestination(ctx context.Context, token, dest string) {
	offers, err := p.Client.SearchOffers(ctx, token, amadeus.SearchQuery{
		Origin:        p.Origin,
		Destination:   dest,
		DepartureDate: p.DepartureDate,
		Adults:        1,
		Currency:      "USD",
		Max:           p.MaxOffers,
	})
	if err != nil {
		p.log().Warn("destination check failed", zap.String("destination", dest), zap.Error(err))
		p.logError(dest, err.Error())
		fmt.Fprintf(p.out(), "error checking %s: %v\n", dest, err)
		return
	}

	best, ok := offer.Cheapest(offers)
	if !ok {
		return
	}
	summary := offer.Summarize(best)

	rec := history.Record{
		ID:           uuid.NewString(),
		Time:         time.Now(),
		Price:        summary.Price,
		Carrier:      summary.Carrier,
		Origin:       summary.Origin,
		Destination:  summary.Destination,
		Departure:    summary.Departure,
		Arrival:      summary.Arrival,
		Duration:     summary.Duration,
		Stops:        summary.Stops,
		FlightNumber: summary.FlightNumber,
	}
	// Persistence failures are captured here, never propagated.
	if err := p.History.Append(dest, rec); err != nil {
		p.log().Error("history append failed", zap.String("destination", dest), zap.Error(err))
		p.logError(sourceLog, fmt.Sprintf("saving price failed: %v", err))
	}

	res := alert.Evaluate(summary, p.Ceiling, dest, p.DepartureDate)
	fmt.Fprintln(p.out(), res.Text)
	if res.Triggered {
		p.log().Info("price alert",
			zap.String("destination", dest),
			zap.String("price", summary.Price.String()),
			zap.String("ceiling", p.Ceiling.String()),
		)
	}
}

func (p *Poller) logError(source, message string) {
	if err := p.ErrorLog.Append(source, message); err != nil {
		p.log().Error("error log append failed", zap.Error(err))
	}
}

func (p *Poller) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return io.Discard
}

func (p *Poller) log() *zap.Logger {
	if p.Log != nil {
		return p.Log
	}
	return zap.NewNop()
}

func (p *Poller) tick() time.Duration {
	if p.Tick > 0 {
		return p.Tick
	}
	return time.Minute
}
