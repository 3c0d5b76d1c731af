// Package http hosts the webhook endpoint the messaging platform calls.
// Everything behind it is synchronous: one request, one handled update.
package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "github.com/jlgsjlgs/telegram-budget-bot/internal/log"
)

// secretTokenHeader carries the webhook secret Telegram echoes back on
// every delivery when one was set with setWebhook.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler processes one decoded update end to end.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *models.Update)
}

type Server struct {
	http.Server
	webhookSecret string
	handler       UpdateHandler
	logger        *applog.Logger
}

// NewServer configures routes, returning a ready-to-run http.Server.
// An empty webhookSecret disables the header check.
func NewServer(addr, webhookSecret string, handler UpdateHandler, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		webhookSecret: webhookSecret,
		handler:       handler,
		logger:        logger.WithComponent(applog.ComponentHTTP),
	}

	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// handleWebhook is the inbound boundary. Rejections here (405, 401, 500)
// never produce a chat reply; once an update is dispatched the response is
// 200 "OK" regardless of the command's outcome.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("panic while handling update", applog.FieldError, rec)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.webhookSecret != "" {
		got := r.Header.Get(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.webhookSecret)) != 1 {
			s.logger.Warn("webhook secret mismatch", applog.FieldPath, r.URL.Path)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	// Decode into the typed update shape; anything that does not fit the
	// schema is rejected before it can reach the dispatcher.
	var update models.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.logger.Error("malformed update payload", applog.FieldError, err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s.handler.HandleUpdate(r.Context(), &update)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
