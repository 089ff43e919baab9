package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// ToolCall is a tool invocation requested by the model within an assistant turn
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ChatTurn is a single entry in a conversation log. Turns are appended and
// never reordered or deleted; the ordered sequence is the model's whole
// context.
type ChatTurn struct {
	Role    types.TurnRole `json:"role"`
	Content string         `json:"content,omitempty"`

	// ToolCalls is set on assistant turns that request tool invocations
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID and ToolName are set on tool turns and reference the
	// assistant turn that requested the invocation
	ToolCallID string `json:"tool_call_id,omitempty"`
	ToolName   string `json:"tool_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewSystemTurn creates a system turn
func NewSystemTurn(content string) ChatTurn {
	return ChatTurn{Role: types.TurnRoleSystem, Content: content, CreatedAt: time.Now().UTC()}
}

// NewUserTurn creates a user turn
func NewUserTurn(content string) ChatTurn {
	return ChatTurn{Role: types.TurnRoleUser, Content: content, CreatedAt: time.Now().UTC()}
}

// NewAssistantTurn creates an assistant turn carrying a final textual answer
func NewAssistantTurn(content string) ChatTurn {
	return ChatTurn{Role: types.TurnRoleAssistant, Content: content, CreatedAt: time.Now().UTC()}
}

// NewToolCallTurn creates an assistant turn that requests tool invocations
func NewToolCallTurn(calls []ToolCall) ChatTurn {
	return ChatTurn{Role: types.TurnRoleAssistant, ToolCalls: calls, CreatedAt: time.Now().UTC()}
}

// NewToolResultTurn creates a tool turn holding the result (or error text)
// of the invocation identified by callID
func NewToolResultTurn(callID, toolName, content string) ChatTurn {
	return ChatTurn{
		Role:       types.TurnRoleTool,
		Content:    content,
		ToolCallID: callID,
		ToolName:   toolName,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate checks structural requirements of a turn. Cross-turn invariants
// (a tool turn referencing a known call ID) are enforced by the history.
func (t *ChatTurn) Validate() error {
	if err := t.Role.Validate(); err != nil {
		return err
	}

	switch t.Role {
	case types.TurnRoleTool:
		if t.ToolCallID == "" {
			return goerr.New("tool turn requires tool_call_id")
		}
		if t.ToolName == "" {
			return goerr.New("tool turn requires tool_name", goerr.V("tool_call_id", t.ToolCallID))
		}
	case types.TurnRoleAssistant:
		for i, call := range t.ToolCalls {
			if call.ID == "" || call.Name == "" {
				return goerr.New("tool call requires id and name", goerr.V("index", i))
			}
		}
	case types.TurnRoleSystem, types.TurnRoleUser:
		if t.Content == "" {
			return goerr.New("turn requires content", goerr.V("role", t.Role))
		}
	}

	return nil
}
