package model

import (
	"time"

	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// Transcript is an archived snapshot of one conversation session
type Transcript struct {
	SessionID  types.SessionID `json:"session_id"`
	Turns      []ChatTurn      `json:"turns"`
	ArchivedAt time.Time       `json:"archived_at"`
}

// NewTranscript builds a transcript from a history snapshot
func NewTranscript(sessionID types.SessionID, turns []ChatTurn) *Transcript {
	return &Transcript{
		SessionID:  sessionID,
		Turns:      turns,
		ArchivedAt: time.Now().UTC(),
	}
}
