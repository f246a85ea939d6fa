// Package toolsutil holds shared helpers for the task tools: tolerant input
// normalization and the payload shapes returned to the model.
package toolsutil

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/elee1766/taskchat/src/storage"
)

// Package-level logger for tools
var logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
	Level: slog.LevelError, // Default to only showing errors
}))

// SetLogger allows setting a custom logger for the tools package
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// GetLogger returns the package logger
func GetLogger() *slog.Logger {
	return logger
}

// CoercePriority maps any input to one of the three valid priority literals.
// Empty and invalid values become medium; invalid values log a warning but
// never raise, the documented tolerant-input policy.
func CoercePriority(priority string) string {
	if priority == "" {
		return storage.PriorityMedium
	}
	p := strings.ToLower(strings.TrimSpace(priority))
	if !storage.IsValidPriority(p) {
		logger.Warn("invalid priority coerced to medium", "priority", priority)
		return storage.PriorityMedium
	}
	return p
}

// recurrenceSynonyms maps common model phrasings to canonical patterns.
var recurrenceSynonyms = map[string]string{
	"daily":       "daily",
	"every day":   "daily",
	"each day":    "daily",
	"weekly":      "weekly",
	"every week":  "weekly",
	"each week":   "weekly",
	"monthly":     "monthly",
	"every month": "monthly",
	"each month":  "monthly",
	"yearly":      "yearly",
	"annually":    "yearly",
	"every year":  "yearly",
}

// NormalizeRecurrence lowercases and maps recurrence phrasing to one of
// {daily, weekly, monthly, yearly}. Unrecognized text passes through
// unchanged rather than erroring.
func NormalizeRecurrence(text string) string {
	if text == "" {
		return ""
	}
	normalized := strings.ToLower(strings.TrimSpace(text))
	if canonical, ok := recurrenceSynonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// ParseDueDate parses a due date string best-effort. Unparseable input is not
// an error: it yields no due date with a warning for observability.
func ParseDueDate(text string) *time.Time {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	t, err := dateparse.ParseAny(text)
	if err != nil {
		logger.Warn("could not parse due date, ignoring", "due_date", text, "error", err)
		return nil
	}
	return &t
}

// ParseLooseBool interprets the loose boolean spellings the model produces
// for completion flags.
func ParseLooseBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes", "on":
			return true, true
		case "false", "0", "no", "off":
			return false, true
		}
	}
	return false, false
}

// TaskPayload is the public view of a task embedded in tool results.
type TaskPayload struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Description       *string `json:"description"`
	Completed         bool    `json:"completed"`
	Priority          string  `json:"priority"`
	DueDate           *string `json:"due_date"`
	Tags              *string `json:"tags"`
	Recurring         bool    `json:"recurring"`
	RecurrencePattern *string `json:"recurrence_pattern"`
	CreatedAt         string  `json:"created_at"`
}

// NewTaskPayload converts a stored task into its public payload form.
func NewTaskPayload(t *storage.Task) *TaskPayload {
	p := &TaskPayload{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Completed:         t.Completed,
		Priority:          t.Priority,
		Tags:              t.Tags,
		Recurring:         t.Recurring,
		RecurrencePattern: t.RecurrencePattern,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(time.RFC3339)
		p.DueDate = &due
	}
	return p
}
