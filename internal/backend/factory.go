// Package backend selects the spreadsheet submitter implementation from
// configuration.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	applog "github.com/jlgsjlgs/telegram-budget-bot/internal/log"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets/google"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets/memory"
	"github.com/jlgsjlgs/telegram-budget-bot/internal/sheets/script"
)

// Type selects a submitter implementation.
type Type string

const (
	// ScriptBackend relays records to the Apps Script web app.
	ScriptBackend Type = "script"
	// GoogleBackend writes rows directly via the Sheets API.
	GoogleBackend Type = "google"
	// MemoryBackend keeps records in process, for tests and local runs.
	MemoryBackend Type = "memory"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case ScriptBackend, GoogleBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds what each backend needs to come up.
type Config struct {
	Type Type

	// Apps Script relay
	ScriptURL     string
	AppKey        string
	SubmitTimeout time.Duration
}

// Validate checks the configuration for the selected type.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type %q", c.Type)
	}
	if c.Type == ScriptBackend && c.ScriptURL == "" {
		return errors.New("script backend requires SCRIPT_URL")
	}
	return nil
}

// Factory creates submitters based on configuration.
type Factory struct {
	logger *applog.Logger
}

func NewFactory(logger *applog.Logger) *Factory {
	return &Factory{logger: logger.WithComponent(applog.ComponentBackend)}
}

// Create builds the submitter for the configured type.
func (f *Factory) Create(ctx context.Context, cfg Config) (sheets.Submitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case ScriptBackend:
		f.logger.Info("using Apps Script backend", applog.FieldBackend, cfg.Type.String())
		return script.New(cfg.ScriptURL, cfg.AppKey, cfg.SubmitTimeout, f.logger), nil
	case GoogleBackend:
		cli, err := google.NewFromEnv(ctx, f.logger)
		if err != nil {
			return nil, fmt.Errorf("initialize Sheets API backend: %w", err)
		}
		f.logger.Info("using Sheets API backend", applog.FieldBackend, cfg.Type.String())
		return cli, nil
	case MemoryBackend:
		f.logger.Info("using in-memory backend", applog.FieldBackend, cfg.Type.String())
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type %q", cfg.Type)
	}
}
