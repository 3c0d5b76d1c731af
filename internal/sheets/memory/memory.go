// Package memory is an in-process Submitter for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jlgsjlgs/telegram-budget-bot/internal/expense"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets"
)

type entry struct {
	UserID int64
	Record expense.Record
}

type Store struct {
	mu    sync.Mutex
	items []entry

	// now is swappable for deterministic tests.
	now func() time.Time
}

var _ sheets.Submitter = (*Store)(nil)

func New() *Store {
	return &Store{now: time.Now}
}

// Submit stores the record and fabricates the confirmation a real backend
// would echo.
func (s *Store) Submit(_ context.Context, userID int64, rec expense.Record) (sheets.Confirmation, error) {
	s.mu.Lock()
	s.items = append(s.items, entry{UserID: userID, Record: rec})
	n := len(s.items)
	s.mu.Unlock()

	now := s.now()
	return sheets.Confirmation{
		Date:        now.Format("2006-01-02"),
		Category:    sheets.FormatLabel(rec.Category),
		Description: rec.Description,
		PaymentMode: sheets.FormatLabel(rec.PaymentMode),
		Amount:      rec.Amount.InexactFloat64(),
		SheetName:   fmt.Sprintf("mem:%d", n),
	}, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
