package chat

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// History is the append-only log of conversation turns. Turns are never
// edited, reordered, or deleted; corrections happen by appending new turns.
type History struct {
	mu    sync.RWMutex
	turns []model.ChatTurn

	// requestedCalls tracks tool-call IDs announced by assistant turns so
	// that a tool turn can never reference a call that was not requested
	requestedCalls map[string]string // call ID -> tool name
}

// NewHistory creates an empty history. When systemPrompt is not empty it is
// recorded as the leading system turn.
func NewHistory(systemPrompt string) *History {
	h := &History{
		requestedCalls: map[string]string{},
	}
	if systemPrompt != "" {
		h.turns = append(h.turns, model.NewSystemTurn(systemPrompt))
	}
	return h
}

// Append validates the turn and adds it to the end of the log
func (h *History) Append(turn model.ChatTurn) error {
	if err := turn.Validate(); err != nil {
		return goerr.Wrap(ErrMalformedTurn, err.Error())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch turn.Role {
	case types.TurnRoleAssistant:
		for _, call := range turn.ToolCalls {
			h.requestedCalls[call.ID] = call.Name
		}

	case types.TurnRoleTool:
		name, ok := h.requestedCalls[turn.ToolCallID]
		if !ok {
			return goerr.Wrap(ErrDanglingToolResult, "no assistant turn requested this call",
				goerr.V("tool_call_id", turn.ToolCallID),
				goerr.V("tool_name", turn.ToolName),
			)
		}
		if name != turn.ToolName {
			return goerr.Wrap(ErrDanglingToolResult, "tool name does not match the request",
				goerr.V("tool_call_id", turn.ToolCallID),
				goerr.V("requested", name),
				goerr.V("got", turn.ToolName),
			)
		}
	}

	h.turns = append(h.turns, turn)
	return nil
}

// Snapshot returns a copy of the ordered turn sequence. Mutating the
// returned slice does not affect the history.
func (h *History) Snapshot() []model.ChatTurn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]model.ChatTurn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of turns in the log
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}
