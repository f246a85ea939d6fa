package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/aisdk"
	"github.com/elee1766/taskchat/src/storage"
)

// Fixed replies produced by the loop itself rather than the model.
const (
	addTaskLimitReply = "Limit Reached: I can only add up to 3 tasks at a time to save resources. Please break your request into smaller parts."
	maxStepsReply     = "Maximum processing steps reached. Some actions may be incomplete."
	defaultReply      = "Processing completed."
)

// Config tunes the conversation loop.
type Config struct {
	// Models is tried in order; a later entry is used only when the provider
	// rejects the earlier one as not-found or unauthorized.
	Models []string
	// MaxTurns bounds how many model round trips a single request may take.
	MaxTurns int
	// AddTaskLimit is the most add_task calls accepted from one model
	// response before the whole turn is refused.
	AddTaskLimit int
	Preamble     string
	MaxTokens    int
	Temperature  float64
}

// DefaultConfig returns the production loop configuration.
func DefaultConfig() Config {
	return Config{
		Models:       []string{"command-r-08-2024", "command-light"},
		MaxTurns:     10,
		AddTaskLimit: 3,
		MaxTokens:    150,
		Temperature:  0.3,
	}
}

// Controller drives the tool-calling loop for one request at a time. It is
// safe for concurrent use; all per-request state lives on the stack.
type Controller struct {
	provider   aisdk.Provider
	toolbox    *agent.Toolbox
	dispatcher *Dispatcher
	db         *storage.DB
	cfg        Config
	logger     *slog.Logger
}

// NewController wires the loop together.
func NewController(provider aisdk.Provider, toolbox *agent.Toolbox, db *storage.DB, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultConfig().MaxTurns
	}
	if cfg.AddTaskLimit <= 0 {
		cfg.AddTaskLimit = DefaultConfig().AddTaskLimit
	}
	if len(cfg.Models) == 0 {
		cfg.Models = DefaultConfig().Models
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultConfig().Temperature
	}
	return &Controller{
		provider:   provider,
		toolbox:    toolbox,
		dispatcher: NewDispatcher(toolbox, logger),
		db:         db,
		cfg:        cfg,
		logger:     logger,
	}
}

// Run executes the loop for one user message and returns the assistant reply.
// The user message is expected to already be persisted and included in
// history. Replies that represent a completed turn are persisted as assistant
// messages; the add_task limit refusal is returned without being persisted.
func (c *Controller) Run(ctx context.Context, conversationID, userID, message string, history []aisdk.ChatMessage) (string, error) {
	tools := agent.ToProviderTools(c.toolbox.Tools())

	currentMessage := message
	var toolResults []aisdk.ToolResult
	ceilingHit := true

	for turn := 0; turn < c.cfg.MaxTurns; turn++ {
		c.logger.Debug("conversation loop turn", "turn", turn+1, "conversation_id", conversationID)

		resp, err := c.chatWithFallback(ctx, &aisdk.ChatRequest{
			Message:     currentMessage,
			ChatHistory: history,
			ToolResults: toolResults,
			Tools:       tools,
			Preamble:    c.cfg.Preamble,
			MaxTokens:   &c.cfg.MaxTokens,
			Temperature: &c.cfg.Temperature,
		})
		if err != nil {
			return "", err
		}

		if resp.HasToolCalls() {
			if c.countAddTaskCalls(resp.ToolCalls) > c.cfg.AddTaskLimit {
				c.logger.Warn("refusing batch task creation",
					"conversation_id", conversationID, "calls", len(resp.ToolCalls))
				return addTaskLimitReply, nil
			}

			results, err := c.dispatchAll(ctx, conversationID, userID, resp.ToolCalls)
			if err != nil {
				return "", err
			}

			history = append(history,
				aisdk.ChatMessage{Role: aisdk.RoleUser, Message: ""},
				aisdk.ChatMessage{Role: aisdk.RoleChatbot, Message: ""},
			)
			currentMessage = ""
			toolResults = results
			continue
		}

		if resp.Text != "" {
			if err := c.persistReply(ctx, conversationID, resp.Text); err != nil {
				return "", err
			}
			return resp.Text, nil
		}

		// Neither tool calls nor text; nothing left to do.
		ceilingHit = false
		break
	}

	reply := defaultReply
	if ceilingHit {
		reply = maxStepsReply
	}
	if err := c.persistReply(ctx, conversationID, reply); err != nil {
		return "", err
	}
	return reply, nil
}

// chatWithFallback tries each configured model in order, moving on only when
// the provider says the model itself is unavailable to us.
func (c *Controller) chatWithFallback(ctx context.Context, req *aisdk.ChatRequest) (*aisdk.ChatResponse, error) {
	var lastErr error
	for i, model := range c.cfg.Models {
		req.Model = model
		resp, err := c.provider.Chat(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !aisdk.IsModelUnavailable(err) {
			return nil, err
		}
		if i < len(c.cfg.Models)-1 {
			c.logger.Warn("model unavailable, falling back",
				"model", model, "next", c.cfg.Models[i+1], "error", err)
		}
	}
	return nil, fmt.Errorf("all models unavailable: %w", lastErr)
}

func (c *Controller) countAddTaskCalls(calls []aisdk.ToolCall) int {
	n := 0
	for _, call := range calls {
		if call.Name == "add_task" {
			n++
		}
	}
	return n
}

// dispatchAll executes the calls sequentially in the order received; later
// calls may depend on side effects of earlier ones.
func (c *Controller) dispatchAll(ctx context.Context, conversationID, userID string, calls []aisdk.ToolCall) ([]aisdk.ToolResult, error) {
	results := make([]aisdk.ToolResult, 0, len(calls))
	for i := range calls {
		call := calls[i]
		start := time.Now()
		outputs, err := c.dispatcher.Dispatch(ctx, userID, &call)
		c.recordExecution(ctx, conversationID, &call, outputs, err, time.Since(start))
		if err != nil {
			return nil, err
		}
		results = append(results, aisdk.ToolResult{Call: call, Outputs: outputs})
	}
	return results, nil
}

// recordExecution writes an audit row for a tool call. Auditing is best
// effort and never fails the request.
func (c *Controller) recordExecution(ctx context.Context, conversationID string, call *aisdk.ToolCall, outputs []map[string]any, execErr error, elapsed time.Duration) {
	rec := &storage.ToolExecution{
		ConversationID: conversationID,
		ToolName:       call.Name,
		Input:          string(call.Parameters),
		DurationMs:     elapsed.Milliseconds(),
	}
	if execErr != nil {
		rec.Error = execErr.Error()
	} else if raw, err := json.Marshal(outputs); err == nil {
		rec.Output = string(raw)
	}
	if err := storage.CreateToolExecution(ctx, c.db.DB(), rec); err != nil {
		c.logger.Warn("failed to record tool execution", "tool", call.Name, "error", err)
	}
}

func (c *Controller) persistReply(ctx context.Context, conversationID, text string) error {
	msg := &storage.Message{
		ConversationID: conversationID,
		Role:           storage.RoleAssistant,
		Content:        &text,
	}
	return storage.CreateMessage(ctx, c.db.DB(), msg)
}
