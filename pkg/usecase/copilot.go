package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/agent/tool/hotel"
	"github.com/stayops-lab/xenia/pkg/chat"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/utils/async"
)

//go:embed prompt/copilot_system.md
var copilotSystemPromptTmpl string

var copilotSystemPrompt = template.Must(template.New("copilot_system").Parse(copilotSystemPromptTmpl))

// Chat routes one user message to its conversation session and returns the
// copilot's reply. An empty session ID starts a new conversation; the
// returned ID addresses follow-up messages to the same session.
func (uc *UseCases) Chat(ctx context.Context, sessionID types.SessionID, message string) (types.SessionID, string, error) {
	session, err := uc.session(ctx, sessionID)
	if err != nil {
		return "", "", err
	}

	reply, err := session.Converse(ctx, message)
	if err != nil {
		return session.ID(), "", goerr.Wrap(err, "conversation failed", goerr.V("session_id", session.ID()))
	}

	if uc.archive != nil {
		transcript := model.NewTranscript(session.ID(), session.Snapshot())
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.archive.SaveTranscript(ctx, transcript)
		})
	}

	return session.ID(), reply, nil
}

// SessionTurns returns the conversation log of an existing session
func (uc *UseCases) SessionTurns(ctx context.Context, sessionID types.SessionID) ([]model.ChatTurn, error) {
	uc.sessionMu.Lock()
	session, ok := uc.sessions[sessionID]
	uc.sessionMu.Unlock()
	if !ok {
		return nil, goerr.Wrap(ErrSessionNotFound, "no such session",
			goerr.T(types.ErrTagValidation),
			goerr.V("session_id", sessionID),
		)
	}
	return session.Snapshot(), nil
}

func (uc *UseCases) session(ctx context.Context, sessionID types.SessionID) (*chat.Session, error) {
	uc.sessionMu.Lock()
	defer uc.sessionMu.Unlock()

	if sessionID != "" {
		session, ok := uc.sessions[sessionID]
		if !ok {
			return nil, goerr.Wrap(ErrSessionNotFound, "no such session",
				goerr.T(types.ErrTagValidation),
				goerr.V("session_id", sessionID),
			)
		}
		return session, nil
	}

	session, err := uc.buildSession(ctx)
	if err != nil {
		return nil, err
	}
	uc.sessions[session.ID()] = session
	return session, nil
}

// buildSession assembles a fresh conversation: its own planner, its own tool
// set, and a system prompt carrying the current hotel catalog
func (uc *UseCases) buildSession(ctx context.Context) (*chat.Session, error) {
	hotels, err := uc.ListHotels(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := copilotSystemPrompt.Execute(&buf, map[string]any{
		"Hotels": hotels,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to render system prompt")
	}

	planner := hotel.NewPlanner()
	registry, err := chat.NewRegistry(hotel.New(uc, uc, planner)...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build tool registry")
	}

	return chat.NewSession(uc.llm, registry,
		chat.WithSystemPrompt(buf.String()),
		chat.WithMaxIterations(uc.maxIterations),
	), nil
}
