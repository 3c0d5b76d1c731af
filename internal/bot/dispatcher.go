package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/jlgsjlgs/telegram-budget-bot/internal/expense"
	applog "github.com/jlgsjlgs/telegram-budget-bot/internal/log"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets"
)

// Dispatcher routes one update to one command handler. It is stateless:
// nothing persists between updates, and every path ends after at most one
// final reply.
type Dispatcher struct {
	gate       *Gate
	categories *expense.CategorySet
	submitter  sheets.Submitter
	sender     Sender
	logger     *applog.Logger
}

func NewDispatcher(gate *Gate, categories *expense.CategorySet, submitter sheets.Submitter, sender Sender, logger *applog.Logger) *Dispatcher {
	return &Dispatcher{
		gate:       gate,
		categories: categories,
		submitter:  submitter,
		sender:     sender,
		logger:     logger.WithComponent(applog.ComponentBot),
	}
}

// HandleUpdate processes one inbound update. Updates without a text
// message are a no-op; unauthorized senders are dropped without a reply so
// strangers probing the bot learn nothing.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}
	msg := update.Message
	userID := msg.From.ID
	chatID := msg.Chat.ID
	updatesReceived.Inc()

	if !d.gate.Allowed(userID) {
		unauthorizedDropped.Inc()
		d.logger.Warn("dropped message from unauthorized sender",
			applog.FieldOperation, applog.OpAuthorize,
			applog.FieldUserID, userID)
		return
	}

	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "/start":
		commandsProcessed.WithLabelValues("start").Inc()
		d.reply(ctx, chatID, welcomeReply())
	case text == "/help":
		commandsProcessed.WithLabelValues("help").Inc()
		d.reply(ctx, chatID, helpReply(d.categories))
	case text == "/categories":
		commandsProcessed.WithLabelValues("categories").Inc()
		d.reply(ctx, chatID, categoriesReply(d.categories))
	case text == expense.Command || strings.HasPrefix(text, expense.Command+" "):
		commandsProcessed.WithLabelValues("expense").Inc()
		d.handleExpense(ctx, chatID, userID, text)
	default:
		commandsProcessed.WithLabelValues("unknown").Inc()
		d.reply(ctx, chatID, unknownCommandReply())
	}
}

func (d *Dispatcher) handleExpense(ctx context.Context, chatID, userID int64, text string) {
	rec, err := expense.Parse(text, d.categories)
	if err != nil {
		parseFailures.WithLabelValues(parseFailureKind(err)).Inc()
		d.logger.Debug("rejected expense entry",
			applog.FieldOperation, applog.OpParse,
			applog.FieldUserID, userID,
			applog.FieldError, err.Error())
		d.reply(ctx, chatID, parseErrorReply(err, d.categories))
		return
	}

	// The spreadsheet call can take a noticeable moment, so acknowledge
	// before submitting.
	d.reply(ctx, chatID, processingReply())

	conf, err := d.submitter.Submit(ctx, userID, rec)
	if err != nil {
		submissions.WithLabelValues("error").Inc()
		d.logger.Error("expense submission failed",
			applog.FieldOperation, applog.OpSubmit,
			applog.FieldUserID, userID,
			applog.FieldError, err.Error())
		d.reply(ctx, chatID, failureReply(err))
		return
	}

	submissions.WithLabelValues("ok").Inc()
	d.logger.Info("expense recorded",
		applog.FieldUserID, userID,
		applog.FieldCategory, rec.Category,
		applog.FieldAmount, rec.Amount.String(),
		applog.FieldSheet, conf.SheetName)
	d.reply(ctx, chatID, successReply(conf))
}

func parseFailureKind(err error) string {
	var ice *expense.InvalidCategoryError
	switch {
	case errors.Is(err, expense.ErrWrongFieldCount):
		return "field_count"
	case errors.Is(err, expense.ErrInvalidAmount):
		return "amount"
	case errors.As(err, &ice):
		return "category"
	default:
		return "other"
	}
}

// reply sends a message to the chat. Delivery failures are logged and
// swallowed; they must not bubble up to the webhook response.
func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) {
	if err := d.sender.SendMessage(ctx, chatID, text); err != nil {
		replyFailures.Inc()
		d.logger.Error("failed to send reply",
			applog.FieldOperation, applog.OpReply,
			applog.FieldChatID, chatID,
			applog.FieldError, err.Error())
	}
}
