package storage

import "time"

// Task priority levels. Anything else is coerced to PriorityMedium before it
// reaches a row.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// IsValidPriority reports whether p is one of the three accepted literals.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Stored message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type User struct {
	ID            string    `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	Name          *string   `json:"name,omitempty" db:"name"`
	EmailVerified bool      `json:"email_verified" db:"email_verified"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type Task struct {
	ID                int64      `json:"id" db:"id"`
	UserID            string     `json:"user_id" db:"user_id"`
	Title             string     `json:"title" db:"title"`
	Description       *string    `json:"description,omitempty" db:"description"`
	Completed         bool       `json:"completed" db:"completed"`
	Priority          string     `json:"priority" db:"priority"`
	Tags              *string    `json:"tags,omitempty" db:"tags"`
	DueDate           *time.Time `json:"due_date,omitempty" db:"due_date"`
	Recurring         bool       `json:"recurring" db:"recurring"`
	RecurrencePattern *string    `json:"recurrence_pattern,omitempty" db:"recurrence_pattern"`
	// RecurringInterval is a legacy column; alias normalization clears it
	// whenever a recurrence pattern is written.
	RecurringInterval *string   `json:"recurring_interval,omitempty" db:"recurring_interval"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type Conversation struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Message content is nullable at the row level; the history sanitizer
// guarantees it never crosses the provider boundary as null.
type Message struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	Role           string    `json:"role" db:"role"`
	Content        *string   `json:"content" db:"content"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type ToolExecution struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	ToolName       string    `json:"tool_name" db:"tool_name"`
	Input          string    `json:"input" db:"input"`
	Output         string    `json:"output" db:"output"`
	Error          string    `json:"error" db:"error"`
	DurationMs     int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
