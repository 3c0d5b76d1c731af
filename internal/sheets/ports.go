package sheets

import (
	"context"
	"strings"
	"unicode"

	"github.com/jlgsjlgs/telegram-budget-bot/internal/expense"
)

// Submitter is the outbound port to the spreadsheet side. One call, one
// outbound write; no retry.
type Submitter interface {
	Submit(ctx context.Context, userID int64, rec expense.Record) (Confirmation, error)
}

// Confirmation echoes what the spreadsheet side actually stored.
type Confirmation struct {
	Date        string
	Category    string
	Description string
	PaymentMode string
	Amount      float64
	SheetName   string
}

// SubmissionError is a submission failure that is safe to show to the
// user. Reason is the service's own message when it supplied one; empty
// means the caller should fall back to a generic message. The underlying
// transport error, if any, stays behind Unwrap for logging.
type SubmissionError struct {
	Reason string
	cause  error
}

// NewSubmissionError builds a SubmissionError wrapping cause.
func NewSubmissionError(reason string, cause error) *SubmissionError {
	return &SubmissionError{Reason: reason, cause: cause}
}

func (e *SubmissionError) Error() string {
	if e.Reason != "" {
		return "submission failed: " + e.Reason
	}
	if e.cause != nil {
		return "submission failed: " + e.cause.Error()
	}
	return "submission failed"
}

func (e *SubmissionError) Unwrap() error {
	return e.cause
}

// FormatLabel renders a stored lower-case value the way the spreadsheet
// displays it: first letter upper-cased.
func FormatLabel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
