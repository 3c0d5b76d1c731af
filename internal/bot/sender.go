package bot

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	applog "github.com/jlgsjlgs/telegram-budget-bot/internal/log"
)

// Sender delivers one reply to one chat. Delivery failures are the
// caller's to log; they never abort update handling.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// replyParseMode is legacy Markdown ("Markdown"), not MarkdownV2: V2
// treats . ! - | ( ) as reserved and would reject nearly every reply
// text unless exhaustively escaped.
const replyParseMode = models.ParseModeMarkdownV1

// TelegramSender sends replies through the Bot API.
type TelegramSender struct {
	api    *tgbot.Bot
	logger *applog.Logger
}

var _ Sender = (*TelegramSender)(nil)

func NewTelegramSender(api *tgbot.Bot, logger *applog.Logger) *TelegramSender {
	return &TelegramSender{
		api:    api,
		logger: logger.WithComponent(applog.ComponentTelegram),
	}
}

func (s *TelegramSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := s.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: replyParseMode,
	})
	return err
}
