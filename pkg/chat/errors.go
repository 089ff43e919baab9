package chat

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the conversation core. Registry errors are recoverable
// at the orchestration level: they become tool-turn content so the model can
// self-correct instead of aborting the session.
var (
	ErrToolAlreadyRegistered = goerr.New("tool already registered")
	ErrUnknownTool           = goerr.New("unknown tool")
	ErrInvalidToolArguments  = goerr.New("invalid tool arguments")
	ErrMalformedTurn         = goerr.New("malformed chat turn")
	ErrDanglingToolResult    = goerr.New("tool result references unknown tool call")
)
