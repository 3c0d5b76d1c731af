package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Telegram
	BotToken        string
	WebhookSecret   string
	AuthorizedUsers string // comma-separated numeric sender ids

	// Spreadsheet backend
	Backend       string
	ScriptURL     string
	AppKey        string
	SubmitTimeout time.Duration

	// Expense categories; empty means the built-in default set
	Categories string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		BotToken:        getEnv("BOT_TOKEN", ""),
		WebhookSecret:   getEnv("WEBHOOK_SECRET", ""),
		AuthorizedUsers: getEnv("AUTHORIZED_USERS", ""),

		Backend:       getEnv("SHEETS_BACKEND", "script"),
		ScriptURL:     getEnv("SCRIPT_URL", ""),
		AppKey:        getEnv("APP_KEY", ""),
		SubmitTimeout: getEnvDuration("SUBMIT_TIMEOUT", 30*time.Second),

		Categories: getEnv("CATEGORIES", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.BotToken == "" {
		errors = append(errors, "BOT_TOKEN is required")
	}

	if _, err := c.ParseAuthorizedUsers(); err != nil {
		errors = append(errors, err.Error())
	}

	validBackends := []string{"script", "google", "memory"}
	isValidBackend := false
	for _, b := range validBackends {
		if c.Backend == b {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	if c.Backend == "script" {
		if c.ScriptURL == "" {
			errors = append(errors, "SCRIPT_URL is required when using the script backend")
		} else if parsed, err := url.Parse(c.ScriptURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid SCRIPT_URL '%s': %v", c.ScriptURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid SCRIPT_URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
		if c.AppKey == "" {
			errors = append(errors, "APP_KEY is required when using the script backend")
		}
	}

	if c.SubmitTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid submit timeout %v: must be at least 1 second", c.SubmitTimeout))
	} else if c.SubmitTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid submit timeout %v: must be at most 5 minutes", c.SubmitTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ParseAuthorizedUsers parses the comma-separated allow-list into a set of
// sender ids. At least one id must be present: an empty allow-list would
// silently drop every message.
func (c *Config) ParseAuthorizedUsers() (map[int64]struct{}, error) {
	users := make(map[int64]struct{})
	for _, tok := range strings.Split(c.AuthorizedUsers, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTHORIZED_USERS entry '%s': must be a numeric id", tok)
		}
		users[id] = struct{}{}
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("AUTHORIZED_USERS must contain at least one numeric id")
	}
	return users, nil
}

// ParseCategories returns the configured category names, or nil when the
// built-in defaults should apply.
func (c *Config) ParseCategories() []string {
	if strings.TrimSpace(c.Categories) == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(c.Categories, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
