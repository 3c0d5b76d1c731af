// Package google writes expenses straight into the budget spreadsheet via
// the Sheets API, for deployments that skip the Apps Script relay. It keeps
// the same one-sheet-per-month layout the script maintains.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/jlgsjlgs/telegram-budget-bot/internal/expense"
	applog "github.com/jlgsjlgs/telegram-budget-bot/internal/log"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	logger        *applog.Logger

	mu     sync.Mutex
	warmed map[string]bool // month sheets known to exist
}

var _ sheets.Submitter = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID, plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context, logger *applog.Logger) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger.WithComponent(applog.ComponentSheets),
		warmed:        make(map[string]bool),
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

// monthSheetName returns the sheet title for the month of t, e.g. "Jan 2025".
func monthSheetName(t time.Time) string {
	return t.Format("Jan 2006")
}

// Submit appends one row to the current month's sheet, creating the sheet
// first if this is the month's first expense. API failures come back as a
// generic *sheets.SubmissionError with the cause wrapped for logging.
func (c *Client) Submit(ctx context.Context, userID int64, rec expense.Record) (sheets.Confirmation, error) {
	now := time.Now()
	sheetName := monthSheetName(now)
	date := now.Format("2006-01-02")
	category := sheets.FormatLabel(rec.Category)
	paymentMode := sheets.FormatLabel(rec.PaymentMode)
	amount := rec.Amount.InexactFloat64()

	if err := c.ensureSheet(ctx, sheetName); err != nil {
		return sheets.Confirmation{}, sheets.NewSubmissionError("", err)
	}

	row := []interface{}{date, category, rec.Description, paymentMode, amount}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, sheetName+"!A:E", &gsheet.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return sheets.Confirmation{}, sheets.NewSubmissionError("", fmt.Errorf("append row: %w", err))
	}

	c.logger.Debug("expense appended",
		applog.FieldUserID, userID,
		applog.FieldSheet, sheetName,
		applog.FieldCategory, rec.Category)

	return sheets.Confirmation{
		Date:        date,
		Category:    category,
		Description: rec.Description,
		PaymentMode: paymentMode,
		Amount:      amount,
		SheetName:   sheetName,
	}, nil
}

// ensureSheet creates the month sheet if the spreadsheet does not have it
// yet. Known-good names are cached so steady-state submits cost one call.
func (c *Client) ensureSheet(ctx context.Context, name string) error {
	c.mu.Lock()
	warmed := c.warmed[name]
	c.mu.Unlock()
	if warmed {
		return nil
	}

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet: %w", err)
	}
	exists := false
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			exists = true
			break
		}
	}

	if !exists {
		_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
			Requests: []*gsheet.Request{{
				AddSheet: &gsheet.AddSheetRequest{
					Properties: &gsheet.SheetProperties{Title: name},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("create month sheet %q: %w", name, err)
		}
		c.logger.Info("created month sheet", applog.FieldSheet, name)
	}

	c.mu.Lock()
	c.warmed[name] = true
	c.mu.Unlock()
	return nil
}
