package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot drives the Telegram long-polling loop and hands each command to the
// Handler. Updates are processed one at a time, in arrival order.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	log     *zap.Logger
}

func New(token string, handler *Handler, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{api: api, handler: handler, log: log}, nil
}

func (b *Bot) Run(ctx context.Context) {
	b.log.Info("bot running", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("bot stopping")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() || msg.From == nil {
		return
	}
	reply := b.handler.Handle(ctx, msg.Command(), Request{
		ChatID: msg.Chat.ID,
		UserID: msg.From.ID,
		Arg:    msg.CommandArguments(),
	})
	if reply == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		b.log.Error("send reply failed", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
}
