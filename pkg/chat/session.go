package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/utils/logging"
)

// State is the orchestration loop's position in its lifecycle
type State string

const (
	StateAwaitingUser State = "awaiting_user"
	StateModelCall    State = "model_call"
	StateToolDispatch State = "tool_dispatch"
	StateFinal        State = "final"
	StateCapped       State = "capped"
	StateFailed       State = "failed"
)

// DefaultMaxIterations bounds model calls per user message so a model that
// keeps requesting tools cannot loop forever
const DefaultMaxIterations = 8

const (
	fallbackReply = "I'm sorry, I wasn't able to put together a response. Could you rephrase your request?"
	cappedReply   = "I had to stop before completing your request because it needed too many steps. Please narrow it down and try again."
)

// Session drives one conversation: it appends user input to the history,
// calls the model with the history and tool declarations, dispatches
// requested tool calls through the registry, and repeats until the model
// produces a final answer or the iteration cap is reached.
//
// A session is owned by a single caller-visible conversation. Concurrent
// Converse calls on the same session serialize; distinct sessions share
// nothing but the injected clients.
type Session struct {
	id            types.SessionID
	llm           gollem.LLMClient
	registry      *Registry
	history       *History
	systemPrompt  string
	maxIterations int

	mu    sync.Mutex
	wire  gollem.Session
	state State
}

// Option configures a Session
type Option func(*Session)

// WithID sets the session identifier
func WithID(id types.SessionID) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithSystemPrompt sets the system prompt recorded as the first turn and
// passed to the model session
func WithSystemPrompt(prompt string) Option {
	return func(s *Session) {
		s.systemPrompt = prompt
	}
}

// WithMaxIterations overrides the model-call cap. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(s *Session) {
		if n >= 1 {
			s.maxIterations = n
		}
	}
}

// NewSession creates a conversation session bound to the given model client
// and tool registry
func NewSession(llm gollem.LLMClient, registry *Registry, opts ...Option) *Session {
	s := &Session{
		id:            types.NewSessionID(),
		llm:           llm,
		registry:      registry,
		maxIterations: DefaultMaxIterations,
		state:         StateAwaitingUser,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = NewHistory(s.systemPrompt)
	return s
}

// ID returns the session identifier
func (s *Session) ID() types.SessionID {
	return s.id
}

// State returns the loop's current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns an immutable copy of the conversation log
func (s *Session) Snapshot() []model.ChatTurn {
	return s.history.Snapshot()
}

// Converse submits one user message and runs the loop to a final answer.
// The returned text is always non-empty on a nil error: a model that stops
// responding yields a placeholder, and hitting the iteration cap yields an
// explanatory notice (state Capped) rather than an error.
func (s *Session) Converse(ctx context.Context, userText string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := logging.From(ctx)

	if strings.TrimSpace(userText) == "" {
		return "", goerr.New("user message is required", goerr.T(types.ErrTagValidation))
	}

	if err := s.history.Append(model.NewUserTurn(userText)); err != nil {
		return "", err
	}

	wire, err := s.wireSession(ctx)
	if err != nil {
		return "", s.fail(ctx, err, "failed to open model session")
	}

	inputs := []gollem.Input{gollem.Text(userText)}

	for iter := 1; iter <= s.maxIterations; iter++ {
		s.state = StateModelCall

		resp, err := wire.GenerateContent(ctx, inputs...)
		if err != nil {
			return "", s.fail(ctx, err, "model call failed")
		}
		if resp == nil {
			// Treat a protocol-level empty response as a final answer so
			// the caller always receives a response turn
			resp = &gollem.Response{}
		}

		// Final answer: no tool calls requested
		if len(resp.FunctionCalls) == 0 {
			text := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
			if text == "" {
				logger.Warn("model returned empty final answer, using fallback",
					"session_id", s.id, "iteration", iter)
				text = fallbackReply
			}
			if err := s.history.Append(model.NewAssistantTurn(text)); err != nil {
				return "", err
			}
			s.state = StateFinal
			return text, nil
		}

		// Record the model's intent before any dispatch so the request is
		// part of history even if a tool fails
		calls := make([]model.ToolCall, 0, len(resp.FunctionCalls))
		for _, fc := range resp.FunctionCalls {
			calls = append(calls, model.ToolCall{ID: fc.ID, Name: fc.Name, Arguments: fc.Arguments})
		}
		if err := s.history.Append(model.NewToolCallTurn(calls)); err != nil {
			return "", err
		}

		s.state = StateToolDispatch
		inputs = inputs[:0]

		// Dispatch sequentially in request order: a later call never starts
		// before the earlier call's result is appended
		for _, fc := range resp.FunctionCalls {
			result, invokeErr := s.registry.Invoke(ctx, fc.Name, fc.Arguments)
			if invokeErr != nil {
				if ctx.Err() != nil {
					return "", s.fail(ctx, invokeErr, "tool call aborted")
				}

				logger.Warn("tool call failed, reporting back to model",
					"session_id", s.id,
					"tool", fc.Name,
					"error", invokeErr.Error(),
				)
				if err := s.history.Append(model.NewToolResultTurn(fc.ID, fc.Name, "ERROR: "+invokeErr.Error())); err != nil {
					return "", err
				}
				inputs = append(inputs, gollem.FunctionResponse{
					ID:    fc.ID,
					Name:  fc.Name,
					Error: invokeErr,
				})
				continue
			}

			if err := s.history.Append(model.NewToolResultTurn(fc.ID, fc.Name, renderToolResult(result))); err != nil {
				return "", err
			}
			inputs = append(inputs, gollem.FunctionResponse{
				ID:   fc.ID,
				Name: fc.Name,
				Data: result,
			})
		}
	}

	logger.Warn("conversation hit the iteration cap",
		"session_id", s.id, "max_iterations", s.maxIterations)

	if err := s.history.Append(model.NewAssistantTurn(cappedReply)); err != nil {
		return "", err
	}
	s.state = StateCapped
	return cappedReply, nil
}

// wireSession lazily creates the underlying model session with the system
// prompt and the registry's tool declarations bound to it
func (s *Session) wireSession(ctx context.Context) (gollem.Session, error) {
	if s.wire != nil {
		return s.wire, nil
	}

	opts := []gollem.SessionOption{
		gollem.WithSessionTools(s.registry.Tools()...),
	}
	if s.systemPrompt != "" {
		opts = append(opts, gollem.WithSessionSystemPrompt(s.systemPrompt))
	}

	wire, err := s.llm.NewSession(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create model session")
	}
	s.wire = wire
	return wire, nil
}

// fail moves the loop to the Failed terminal state, distinguishing caller
// cancellation from capability faults
func (s *Session) fail(ctx context.Context, err error, msg string) error {
	s.state = StateFailed
	if ctx.Err() != nil {
		return goerr.Wrap(err, msg+": cancelled",
			goerr.T(types.ErrTagCancelled),
			goerr.V("session_id", s.id),
		)
	}
	return goerr.Wrap(err, msg,
		goerr.T(types.ErrTagCapability),
		goerr.V("session_id", s.id),
	)
}

func renderToolResult(result map[string]any) string {
	if len(result) == 0 {
		return "(no output)"
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("%v", result)
	}
	return string(raw)
}
