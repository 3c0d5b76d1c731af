package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_updates_received_total",
			Help: "Total number of updates carrying a text message",
		},
	)

	commandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_processed_total",
			Help: "Total number of processed commands by keyword",
		},
		[]string{"command"}, // start, help, categories, expense, unknown
	)

	unauthorizedDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_unauthorized_dropped_total",
			Help: "Total number of messages silently dropped from unknown senders",
		},
	)

	parseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_expense_parse_failures_total",
			Help: "Total number of rejected expense entries by failure kind",
		},
		[]string{"kind"}, // field_count, amount, category, other
	)

	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_submissions_total",
			Help: "Total number of spreadsheet submissions by outcome",
		},
		[]string{"outcome"}, // ok, error
	)

	replyFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_reply_failures_total",
			Help: "Total number of replies that could not be delivered",
		},
	)
)
