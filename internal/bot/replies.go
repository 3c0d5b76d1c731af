package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jlgsjlgs/telegram-budget-bot/internal/expense"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets"
)

// Reply texts. All functions here are pure: outcome in, message out.

const expenseExample = "/expense food | Lunch | Cash | 9.50"

// escapeMarkdown neutralizes legacy-Markdown styling characters in text we
// did not author (user input, service echoes) so a stray * or _ cannot make
// the Bot API reject the whole reply.
func escapeMarkdown(s string) string {
	return strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"`", "\\`",
		"[", "\\[",
	).Replace(s)
}

func welcomeReply() string {
	return "👋 Welcome!\n\n" +
		"I record expenses straight into your budget spreadsheet.\n\n" +
		"Use /help to see what I understand."
}

func helpReply(categories *expense.CategorySet) string {
	return "Commands:\n" +
		"/start - welcome message\n" +
		"/categories - list valid categories\n" +
		"/help - this message\n" +
		"/expense <category> | <description> | <payment mode> | <amount> - record an expense\n\n" +
		"Example:\n" + expenseExample + "\n\n" +
		"Valid categories: " + strings.Join(categories.Names(), ", ")
}

func categoriesReply(categories *expense.CategorySet) string {
	var b strings.Builder
	b.WriteString("Valid categories:\n")
	for _, c := range categories.Names() {
		b.WriteString("• " + c + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func processingReply() string {
	return "Processing your expense..."
}

func parseErrorReply(err error, categories *expense.CategorySet) string {
	var ice *expense.InvalidCategoryError
	if errors.As(err, &ice) {
		return fmt.Sprintf("*%s* is not a category I know.\n\n%s", escapeMarkdown(ice.Attempted), categoriesReply(categories))
	}

	guidance := "Please use this format:\n" +
		"/expense <category> | <description> | <payment mode> | <amount>\n\n" +
		"Example:\n" + expenseExample
	if errors.Is(err, expense.ErrInvalidAmount) {
		return "The amount must be a positive number.\n\n" + guidance
	}
	return "I couldn't read that entry.\n\n" + guidance
}

func successReply(conf sheets.Confirmation) string {
	return "✅ Expense recorded!\n\n" +
		"📅 Date: " + escapeMarkdown(conf.Date) + "\n" +
		"🏷 Category: " + escapeMarkdown(conf.Category) + "\n" +
		"📝 Description: " + escapeMarkdown(conf.Description) + "\n" +
		"💳 Payment: " + escapeMarkdown(conf.PaymentMode) + "\n" +
		"💰 Amount: " + strconv.FormatFloat(conf.Amount, 'f', 2, 64) + "\n" +
		"📄 Sheet: " + escapeMarkdown(conf.SheetName)
}

func failureReply(err error) string {
	reason := "the spreadsheet service did not respond properly, please try again later"
	var se *sheets.SubmissionError
	if errors.As(err, &se) && se.Reason != "" {
		reason = escapeMarkdown(se.Reason)
	}
	return "❌ Could not record the expense: " + reason
}

func unknownCommandReply() string {
	return "I don't understand that command.\n\n" +
		"Available commands: /start, /help, /categories, /expense"
}
