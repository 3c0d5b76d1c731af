package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/jlgsjlgs/telegram-budget-bot/internal/expense"
	applog "github.com/jlgsjlgs/telegram-budget-bot/internal/log"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, _ int64, text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

type fakeSubmitter struct {
	calls []expense.Record
	users []int64
	conf  sheets.Confirmation
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, userID int64, rec expense.Record) (sheets.Confirmation, error) {
	f.calls = append(f.calls, rec)
	f.users = append(f.users, userID)
	return f.conf, f.err
}

func newTestDispatcher(sub *fakeSubmitter, snd *fakeSender) *Dispatcher {
	gate := NewGate(map[int64]struct{}{42: {}})
	cats := expense.NewCategorySet(expense.DefaultCategories)
	return NewDispatcher(gate, cats, sub, snd, applog.New(applog.DefaultConfig()))
}

func update(userID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: 1000 + userID},
			Text: text,
		},
	}
}

func TestUnauthorizedSenderIsSilentlyDropped(t *testing.T) {
	sub := &fakeSubmitter{}
	snd := &fakeSender{}
	d := newTestDispatcher(sub, snd)

	d.HandleUpdate(context.Background(), update(999, "/expense Food | Lunch | Cash | 5"))

	if len(snd.sent) != 0 {
		t.Fatalf("expected no replies, got %v", snd.sent)
	}
	if len(sub.calls) != 0 {
		t.Fatalf("expected no submissions, got %d", len(sub.calls))
	}
}

func TestEmptyUpdateIsNoOp(t *testing.T) {
	snd := &fakeSender{}
	d := newTestDispatcher(&fakeSubmitter{}, snd)

	d.HandleUpdate(context.Background(), nil)
	d.HandleUpdate(context.Background(), &models.Update{})
	d.HandleUpdate(context.Background(), &models.Update{Message: &models.Message{From: &models.User{ID: 42}}})

	if len(snd.sent) != 0 {
		t.Fatalf("expected no replies, got %v", snd.sent)
	}
}

func TestExpenseSuccessFlow(t *testing.T) {
	sub := &fakeSubmitter{conf: sheets.Confirmation{
		Date:        "2025-01-02",
		Category:    "Food",
		Description: "Lunch Chicken Rice",
		PaymentMode: "Cash",
		Amount:      5,
		SheetName:   "Jan 2025",
	}}
	snd := &fakeSender{}
	d := newTestDispatcher(sub, snd)

	d.HandleUpdate(context.Background(), update(42, "/expense Food | Lunch Chicken Rice | Cash | 5"))

	if len(snd.sent) != 2 {
		t.Fatalf("expected processing + success replies, got %v", snd.sent)
	}
	if !strings.Contains(snd.sent[0], "Processing") {
		t.Fatalf("first reply = %q", snd.sent[0])
	}
	if len(sub.calls) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.calls))
	}
	if sub.users[0] != 42 {
		t.Fatalf("submitted user = %d", sub.users[0])
	}
	if sub.calls[0].Category != "food" || sub.calls[0].Amount.InexactFloat64() != 5.0 {
		t.Fatalf("submitted record = %+v", sub.calls[0])
	}
	final := snd.sent[1]
	for _, want := range []string{"2025-01-02", "Food", "5.00", "Jan 2025"} {
		if !strings.Contains(final, want) {
			t.Fatalf("success reply missing %q: %q", want, final)
		}
	}
}

func TestExpenseInvalidCategoryNoSubmission(t *testing.T) {
	sub := &fakeSubmitter{}
	snd := &fakeSender{}
	d := newTestDispatcher(sub, snd)

	d.HandleUpdate(context.Background(), update(42, "/expense Drinks | Soda | Cash | 3"))

	if len(sub.calls) != 0 {
		t.Fatalf("expected no submission, got %d", len(sub.calls))
	}
	if len(snd.sent) != 1 {
		t.Fatalf("expected one reply, got %v", snd.sent)
	}
	reply := snd.sent[0]
	if !strings.Contains(reply, "Drinks") {
		t.Fatalf("reply does not name the bad category: %q", reply)
	}
	for _, c := range expense.DefaultCategories {
		if !strings.Contains(reply, c) {
			t.Fatalf("reply missing category %q: %q", c, reply)
		}
	}
}

func TestExpenseInvalidAmountNoSubmission(t *testing.T) {
	sub := &fakeSubmitter{}
	snd := &fakeSender{}
	d := newTestDispatcher(sub, snd)

	d.HandleUpdate(context.Background(), update(42, "/expense Food | Lunch | Cash | -5"))

	if len(sub.calls) != 0 {
		t.Fatalf("expected no submission, got %d", len(sub.calls))
	}
	if len(snd.sent) != 1 || !strings.Contains(snd.sent[0], "positive number") {
		t.Fatalf("replies = %v", snd.sent)
	}
}

func TestExpenseSubmissionFailure(t *testing.T) {
	sub := &fakeSubmitter{err: sheets.NewSubmissionError("", context.DeadlineExceeded)}
	snd := &fakeSender{}
	d := newTestDispatcher(sub, snd)

	d.HandleUpdate(context.Background(), update(42, "/expense Food | Lunch | Cash | 5"))

	if len(snd.sent) != 2 {
		t.Fatalf("expected processing + failure replies, got %v", snd.sent)
	}
	if !strings.Contains(snd.sent[1], "did not respond properly") {
		t.Fatalf("failure reply = %q", snd.sent[1])
	}
}

func TestInformationalCommands(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"/start", "Welcome"},
		{"/help", expenseExample},
		{"/categories", "bills"},
		{"what is this", "don't understand"},
	}
	for _, tc := range cases {
		snd := &fakeSender{}
		d := newTestDispatcher(&fakeSubmitter{}, snd)
		d.HandleUpdate(context.Background(), update(42, tc.text))
		if len(snd.sent) != 1 || !strings.Contains(snd.sent[0], tc.want) {
			t.Fatalf("%q: replies = %v", tc.text, snd.sent)
		}
	}
}

func TestExpenseKeywordEndsAtWordBoundary(t *testing.T) {
	// Near-miss keywords are not expense entries.
	for _, text := range []string{"/expenses food | a | b | 1", "/expenseX"} {
		sub := &fakeSubmitter{}
		snd := &fakeSender{}
		d := newTestDispatcher(sub, snd)
		d.HandleUpdate(context.Background(), update(42, text))
		if len(sub.calls) != 0 {
			t.Fatalf("%q: unexpected submission", text)
		}
		if len(snd.sent) != 1 || !strings.Contains(snd.sent[0], "don't understand") {
			t.Fatalf("%q: replies = %v", text, snd.sent)
		}
	}

	// The bare keyword still gets format guidance, not unknown-command.
	snd := &fakeSender{}
	d := newTestDispatcher(&fakeSubmitter{}, snd)
	d.HandleUpdate(context.Background(), update(42, "/expense"))
	if len(snd.sent) != 1 || !strings.Contains(snd.sent[0], expenseExample) {
		t.Fatalf("bare keyword: replies = %v", snd.sent)
	}
}

func TestReplyDeliveryFailureIsSwallowed(t *testing.T) {
	snd := &fakeSender{err: context.DeadlineExceeded}
	d := newTestDispatcher(&fakeSubmitter{}, snd)

	// Must not panic or propagate.
	d.HandleUpdate(context.Background(), update(42, "/start"))
	if len(snd.sent) != 1 {
		t.Fatalf("expected attempted reply, got %v", snd.sent)
	}
}

func TestGate(t *testing.T) {
	g := NewGate(map[int64]struct{}{1: {}, 2: {}})
	if !g.Allowed(1) || !g.Allowed(2) {
		t.Fatalf("expected members allowed")
	}
	if g.Allowed(3) {
		t.Fatalf("expected non-member denied")
	}
}
