// Package script submits expenses to the Apps Script web app that owns the
// budget spreadsheet. The web app manages its own monthly sheets; this
// client only relays one record per call.
package script

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jlgsjlgs/telegram-budget-bot/internal/expense"
	applog "github.com/jlgsjlgs/telegram-budget-bot/internal/log"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	httpClient *http.Client
	url        string
	appKey     string
	logger     *applog.Logger
}

var _ sheets.Submitter = (*Client)(nil)

// New creates a client for the Apps Script endpoint at url. appKey is the
// shared secret the script checks on every request. A non-positive timeout
// falls back to the default.
func New(url, appKey string, timeout time.Duration, logger *applog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		appKey:     appKey,
		logger:     logger.WithComponent(applog.ComponentSheets),
	}
}

type submitRequest struct {
	UserID      int64   `json:"userId"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	PaymentMode string  `json:"paymentMode"`
	Amount      float64 `json:"amount"`
	AppKey      string  `json:"appKey"`
}

type submitResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Data    *submitPayload `json:"data"`
}

type submitPayload struct {
	Date                 string  `json:"date"`
	FormattedCategory    string  `json:"formattedCategory"`
	Description          string  `json:"description"`
	FormattedPaymentMode string  `json:"formattedPaymentMode"`
	Amount               float64 `json:"amount"`
	SheetName            string  `json:"sheetName"`
}

// Submit posts the record to the Apps Script endpoint. Transport-level
// failures never escape as-is: they come back as a *sheets.SubmissionError
// with no user-visible reason, and the cause stays wrapped for logging.
func (c *Client) Submit(ctx context.Context, userID int64, rec expense.Record) (sheets.Confirmation, error) {
	body, err := json.Marshal(submitRequest{
		UserID:      userID,
		Category:    rec.Category,
		Description: rec.Description,
		PaymentMode: rec.PaymentMode,
		Amount:      rec.Amount.InexactFloat64(),
		AppKey:      c.appKey,
	})
	if err != nil {
		return sheets.Confirmation{}, sheets.NewSubmissionError("", fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return sheets.Confirmation{}, sheets.NewSubmissionError("", fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sheets.Confirmation{}, sheets.NewSubmissionError("", fmt.Errorf("call script endpoint: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return sheets.Confirmation{}, sheets.NewSubmissionError("", fmt.Errorf("script endpoint returned status %d", resp.StatusCode))
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return sheets.Confirmation{}, sheets.NewSubmissionError("", fmt.Errorf("decode response: %w", err))
	}

	if !out.Success {
		return sheets.Confirmation{}, sheets.NewSubmissionError(out.Error, nil)
	}
	if out.Data == nil {
		return sheets.Confirmation{}, sheets.NewSubmissionError("", fmt.Errorf("success response without data payload"))
	}

	c.logger.Debug("expense submitted",
		applog.FieldUserID, userID,
		applog.FieldCategory, rec.Category,
		applog.FieldSheet, out.Data.SheetName)

	return sheets.Confirmation{
		Date:        out.Data.Date,
		Category:    out.Data.FormattedCategory,
		Description: out.Data.Description,
		PaymentMode: out.Data.FormattedPaymentMode,
		Amount:      out.Data.Amount,
		SheetName:   out.Data.SheetName,
	}, nil
}
