package taskagent

import (
	"fmt"
	"log/slog"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_addtask"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_completetask"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_deletetask"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_listtasks"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_updatetask"
	"github.com/elee1766/taskchat/src/taskagent/toolsutil"
)

type toolConstructor func(db *storage.DB) (agent.Tool, error)

var toolConstructors = []toolConstructor{
	tool_addtask.Tool,
	tool_listtasks.Tool,
	tool_completetask.Tool,
	tool_updatetask.Tool,
	tool_deletetask.Tool,
}

// DefaultToolbox builds the toolbox with all task tools registered.
func DefaultToolbox(db *storage.DB, logger *slog.Logger) (*agent.Toolbox, error) {
	toolsutil.SetLogger(logger)

	tb := agent.NewToolbox()
	tb.RegisterMiddleware(agent.LoggingMiddleware(logger))

	for _, constructor := range toolConstructors {
		tool, err := constructor(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create tool: %w", err)
		}
		if err := tb.RegisterTool(tool); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", tool.GetName(), err)
		}
	}

	return tb, nil
}
