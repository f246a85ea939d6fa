package tool_updatetask

import (
	"time"

	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent/toolsutil"
)

// recurrenceAliases are the parameter names the model has been observed using
// for the recurrence pattern. The first one present wins; all collapse into
// the canonical recurrence_pattern field.
var recurrenceAliases = []string{
	"recurrance_pattern",
	"recurring_pattern",
	"recurring_interval",
	"recurringInterval",
	"repeat",
	"frequency",
	"pattern",
}

// taskPatch is a typed partial update. Every field is optional-with-presence
// so absent fields stay untouched while explicit values (including clears)
// apply.
type taskPatch struct {
	title               *string
	description         *string
	descriptionSet      bool
	completed           *bool
	priority            *string
	dueDate             *time.Time
	tags                *string
	tagsSet             bool
	recurring           *bool
	recurrencePattern   *string
	clearLegacyInterval bool
}

// buildPatch normalizes a raw updates mapping into a typed patch. Tolerant
// inputs are coerced or dropped here; nothing in this function errors.
func buildPatch(updates map[string]any) taskPatch {
	logger := toolsutil.GetLogger()
	var p taskPatch

	// Collapse recurrence aliases. Any alias present forces the recurring
	// flag on and clears the legacy recurring_interval column.
	for _, key := range recurrenceAliases {
		v, ok := updates[key]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			pattern := toolsutil.NormalizeRecurrence(s)
			on := true
			p.recurrencePattern = &pattern
			p.recurring = &on
			p.clearLegacyInterval = true
		}
		delete(updates, key)
		break
	}

	if v, ok := updates["recurrence_pattern"]; ok {
		if s, ok := v.(string); ok && s != "" {
			pattern := toolsutil.NormalizeRecurrence(s)
			p.recurrencePattern = &pattern
		}
	}

	if v, ok := updates["recurring"]; ok {
		if b, ok := toolsutil.ParseLooseBool(v); ok {
			p.recurring = &b
		}
	}

	// Both due date spellings are accepted, dueDate taking precedence.
	// Unparseable input drops the update rather than applying garbage.
	for _, key := range []string{"dueDate", "due_date"} {
		v, ok := updates[key]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			p.dueDate = toolsutil.ParseDueDate(s)
		}
		break
	}

	if v, ok := updates["title"]; ok {
		if s, ok := v.(string); ok && s != "" {
			p.title = &s
		}
	}

	if v, ok := updates["description"]; ok {
		p.descriptionSet = true
		if s, ok := v.(string); ok {
			p.description = &s
		}
	}

	if v, ok := updates["completed"]; ok {
		if b, ok := toolsutil.ParseLooseBool(v); ok {
			p.completed = &b
		}
	}

	// Invalid priorities are silently ignored, never applied.
	if v, ok := updates["priority"]; ok {
		if s, ok := v.(string); ok {
			if storage.IsValidPriority(s) {
				p.priority = &s
			} else {
				logger.Warn("ignoring invalid priority update", "priority", s)
			}
		}
	}

	// 'tag' aliases to 'tags'.
	if v, ok := updates["tag"]; ok {
		updates["tags"] = v
		delete(updates, "tag")
	}
	if v, ok := updates["tags"]; ok {
		p.tagsSet = true
		if s, ok := v.(string); ok {
			p.tags = &s
		}
	}

	return p
}

// apply writes the present fields onto the task. Absent fields are untouched.
func (p *taskPatch) apply(t *storage.Task) {
	if p.title != nil {
		t.Title = *p.title
	}
	if p.descriptionSet {
		t.Description = p.description
	}
	if p.completed != nil {
		t.Completed = *p.completed
	}
	if p.priority != nil {
		t.Priority = *p.priority
	}
	if p.dueDate != nil {
		t.DueDate = p.dueDate
	}
	if p.tagsSet {
		t.Tags = p.tags
	}
	if p.recurring != nil {
		t.Recurring = *p.recurring
	}
	if p.recurrencePattern != nil {
		t.RecurrencePattern = p.recurrencePattern
	}
	if p.clearLegacyInterval {
		t.RecurringInterval = nil
	}
}
