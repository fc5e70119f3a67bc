// Package bot implements the Telegram command surface: per-user search
// sessions and the on-demand round-trip search.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/farewatch/farewatch/internal/alert"
	"github.com/farewatch/farewatch/internal/amadeus"
	"github.com/farewatch/farewatch/internal/offer"
)

const (
	replyDenied     = "you are not authorized to use this bot."
	replyStartFirst = "use /start first."
	replySearchFail = "an error occurred while searching flights."
	replyNoFlights  = "no flights found."

	dateLayout = "2006-01-02"
)

// Request is one incoming command, stripped of transport detail.
type Request struct {
	ChatID int64
	UserID int64
	Arg    string
}

type commandFunc func(ctx context.Context, req Request) string

// Handler owns the session store and dispatches the fixed command set.
// Every handler is wrapped by the authorized-chat guard.
type Handler struct {
	Sessions *SessionStore

	client           *amadeus.Client
	authorizedChatID int64
	maxOffers        int
	log              *zap.Logger

	commands map[string]commandFunc
}

func NewHandler(client *amadeus.Client, authorizedChatID int64, maxOffers int, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{
		Sessions:         NewSessionStore(),
		client:           client,
		authorizedChatID: authorizedChatID,
		maxOffers:        maxOffers,
		log:              log,
	}
	h.commands = map[string]commandFunc{
		"start":           h.authorizedOnly(h.cmdStart),
		"set_origin":      h.authorizedOnly(h.cmdSetOrigin),
		"set_destination": h.authorizedOnly(h.cmdSetDestination),
		"set_date":        h.authorizedOnly(h.cmdSetDate),
		"set_window":      h.authorizedOnly(h.cmdSetWindow),
		"status":          h.authorizedOnly(h.cmdStatus),
		"stop":            h.authorizedOnly(h.cmdStop),
		"search":          h.authorizedOnly(h.cmdSearch),
	}
	return h
}

// Handle runs one command to completion and returns the reply text. Unknown
// commands return "" and no reply is sent.
func (h *Handler) Handle(ctx context.Context, command string, req Request) string {
	fn, ok := h.commands[command]
	if !ok {
		return ""
	}
	return fn(ctx, req)
}

// authorizedOnly short-circuits every command to a fixed denial when an
// authorized chat is configured and the caller's chat differs.
func (h *Handler) authorizedOnly(fn commandFunc) commandFunc {
	return func(ctx context.Context, req Request) string {
		if h.authorizedChatID != 0 && req.ChatID != h.authorizedChatID {
			h.log.Warn("unauthorized command", zap.Int64("chat_id", req.ChatID))
			return replyDenied
		}
		return fn(ctx, req)
	}
}

func (h *Handler) cmdStart(_ context.Context, req Request) string {
	h.Sessions.Put(req.UserID, defaultSession())
	h.log.Info("session started", zap.Int64("user_id", req.UserID))
	return "bot activated. use /search to find flights.\n" +
		"available commands:\n" +
		"/set_origin XXX\n" +
		"/set_destination XXX\n" +
		"/set_date YYYY-MM-DD\n" +
		"/set_window N\n" +
		"/status\n" +
		"/stop"
}

func (h *Handler) cmdSetOrigin(_ context.Context, req Request) string {
	code := strings.ToUpper(strings.TrimSpace(req.Arg))
	if code == "" {
		return "usage: /set_origin XXX"
	}
	if !h.Sessions.Update(req.UserID, func(s *Session) { s.Origin = code }) {
		return replyStartFirst
	}
	return fmt.Sprintf("origin updated to %s", code)
}

func (h *Handler) cmdSetDestination(_ context.Context, req Request) string {
	code := strings.ToUpper(strings.TrimSpace(req.Arg))
	if code == "" {
		return "usage: /set_destination XXX"
	}
	if !h.Sessions.Update(req.UserID, func(s *Session) { s.Destination = code }) {
		return replyStartFirst
	}
	return fmt.Sprintf("destination updated to %s", code)
}

func (h *Handler) cmdSetDate(_ context.Context, req Request) string {
	date := strings.TrimSpace(req.Arg)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "usage: /set_date YYYY-MM-DD"
	}
	if !h.Sessions.Update(req.UserID, func(s *Session) { s.Date = date }) {
		return replyStartFirst
	}
	return fmt.Sprintf("date updated to %s", date)
}

func (h *Handler) cmdSetWindow(_ context.Context, req Request) string {
	days, err := strconv.Atoi(strings.TrimSpace(req.Arg))
	if err != nil || days < 0 {
		return "usage: /set_window N"
	}
	if !h.Sessions.Update(req.UserID, func(s *Session) { s.Window = days }) {
		return replyStartFirst
	}
	return fmt.Sprintf("search window updated to %d days", days)
}

func (h *Handler) cmdStatus(_ context.Context, req Request) string {
	sess, ok := h.Sessions.Get(req.UserID)
	if !ok {
		return replyStartFirst
	}
	return fmt.Sprintf("current parameters:\norigin: %s\ndestination: %s\ndate: %s\nwindow: +/-%d days",
		sess.Origin, sess.Destination, sess.Date, sess.Window)
}

func (h *Handler) cmdStop(_ context.Context, req Request) string {
	if h.Sessions.Delete(req.UserID) {
		return "session stopped and configuration cleared."
	}
	return "no active session."
}

// cmdSearch derives a round-trip date pair from the configured date and
// window, runs the token exchange and search synchronously, and replies
// with the cheapest offer's full detail.
func (h *Handler) cmdSearch(ctx context.Context, req Request) string {
	sess, ok := h.Sessions.Get(req.UserID)
	if !ok {
		return replyStartFirst
	}
	center, err := time.Parse(dateLayout, sess.Date)
	if err != nil {
		return "usage: /set_date YYYY-MM-DD"
	}
	window := time.Duration(sess.Window) * 24 * time.Hour
	q := amadeus.SearchQuery{
		Origin:        sess.Origin,
		Destination:   sess.Destination,
		DepartureDate: center.Add(-window).Format(dateLayout),
		ReturnDate:    center.Add(window).Format(dateLayout),
		Adults:        1,
		Currency:      "USD",
		Max:           h.maxOffers,
	}
	h.log.Info("running search",
		zap.Int64("user_id", req.UserID),
		zap.String("origin", q.Origin),
		zap.String("destination", q.Destination),
		zap.String("departure", q.DepartureDate),
		zap.String("return", q.ReturnDate),
	)

	token, err := h.client.Token(ctx)
	if err != nil {
		h.log.Error("search failed", zap.Error(err))
		return replySearchFail
	}
	offers, err := h.client.SearchOffers(ctx, token, q)
	if err != nil {
		if errors.Is(err, amadeus.ErrNoOffers) {
			return replyNoFlights
		}
		h.log.Error("search failed", zap.Error(err))
		return replySearchFail
	}
	best, ok := offer.Cheapest(offers)
	if !ok {
		return replyNoFlights
	}
	return alert.RenderRoundTrip(best)
}
