package script

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jlgsjlgs/telegram-budget-bot/internal/expense"
	applog "github.com/jlgsjlgs/telegram-budget-bot/internal/log"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets"
)

func testLogger() *applog.Logger {
	return applog.New(applog.DefaultConfig())
}

func testRecord(t *testing.T) expense.Record {
	t.Helper()
	rec, err := expense.Parse("/expense Food | Lunch | Cash | 5", expense.NewCategorySet(expense.DefaultCategories))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return rec
}

func TestSubmitSuccess(t *testing.T) {
	var got submitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(submitResponse{
			Success: true,
			Data: &submitPayload{
				Date:                 "2025-01-02",
				FormattedCategory:    "Food",
				Description:          "Lunch",
				FormattedPaymentMode: "Cash",
				Amount:               5,
				SheetName:            "Jan 2025",
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "k3y", time.Second, testLogger())
	conf, err := c.Submit(context.Background(), 42, testRecord(t))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.UserID != 42 || got.Category != "food" || got.Amount != 5.0 || got.AppKey != "k3y" {
		t.Fatalf("request payload = %+v", got)
	}
	if conf.Date != "2025-01-02" || conf.Category != "Food" || conf.SheetName != "Jan 2025" {
		t.Fatalf("confirmation = %+v", conf)
	}
}

func TestSubmitServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(submitResponse{Success: false, Error: "sheet is locked"})
	}))
	defer srv.Close()

	c := New(srv.URL, "k", time.Second, testLogger())
	_, err := c.Submit(context.Background(), 1, testRecord(t))
	var se *sheets.SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	if se.Reason != "sheet is locked" {
		t.Fatalf("reason = %q", se.Reason)
	}
}

func TestSubmitTransportFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"non-2xx": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		},
		"success without data": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(submitResponse{Success: true})
		},
	}
	for name, h := range cases {
		srv := httptest.NewServer(h)
		c := New(srv.URL, "k", time.Second, testLogger())
		_, err := c.Submit(context.Background(), 1, testRecord(t))
		srv.Close()

		var se *sheets.SubmissionError
		if !errors.As(err, &se) {
			t.Fatalf("%s: expected SubmissionError, got %v", name, err)
		}
		// Transport failures stay generic, nothing service-authored to show.
		if se.Reason != "" {
			t.Fatalf("%s: unexpected user-visible reason %q", name, se.Reason)
		}
	}
}

func TestSubmitConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, "k", time.Second, testLogger())
	_, err := c.Submit(context.Background(), 1, testRecord(t))
	var se *sheets.SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	if se.Unwrap() == nil {
		t.Fatalf("expected wrapped transport cause")
	}
}
