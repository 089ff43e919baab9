package model

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// EmbeddingDimension is the dimension of the embedding vector
// Gemini text-embedding-004 uses 768 dimensions
const EmbeddingDimension = 768

// SourceCustomer marks requests submitted through the guest-facing copilot
const SourceCustomer = "customer"

// MaintenanceRequest is a hotel maintenance request. A staged candidate has
// no ID; the ID is assigned exactly once, when the candidate is committed to
// the store, and is never reused or reassigned.
type MaintenanceRequest struct {
	ID         types.RequestID
	HotelID    types.HotelID
	HotelName  string
	Details    string
	RoomNumber int    // 0 when the request is not tied to a room
	Location   string // free-form, e.g. "lobby", "pool deck"
	Source     string
	Embedding  []float32
	CreatedAt  time.Time
}

// PartitionKey returns the shard key the request is persisted under so that
// all requests for one hotel co-locate.
func (m *MaintenanceRequest) PartitionKey() string {
	return fmt.Sprintf("hotel-%d", m.HotelID)
}

// Committed reports whether the request has been persisted
func (m *MaintenanceRequest) Committed() bool {
	return m.ID != ""
}

// Validate checks the fields required for staging
func (m *MaintenanceRequest) Validate() error {
	if m.HotelID <= 0 {
		return goerr.New("hotel_id is required", goerr.V("hotel_id", m.HotelID))
	}
	if m.HotelName == "" {
		return goerr.New("hotel_name is required")
	}
	if m.Details == "" {
		return goerr.New("details is required")
	}
	if m.RoomNumber < 0 {
		return goerr.New("room_number must not be negative", goerr.V("room_number", m.RoomNumber))
	}
	return nil
}

// StageInput carries the caller-supplied fields of a request candidate.
// Identity, source, and timestamps are filled in by the lifecycle, not the
// caller.
type StageInput struct {
	HotelID    types.HotelID `json:"hotel_id"`
	HotelName  string        `json:"hotel_name"`
	Details    string        `json:"details"`
	RoomNumber int           `json:"room_number,omitempty"`
	Location   string        `json:"location,omitempty"`
}

// ScoredRequest is a maintenance request paired with its similarity to a
// query vector. Scores are in [0, 1]; 1 means identical direction.
type ScoredRequest struct {
	Request *MaintenanceRequest
	Score   float64
}
