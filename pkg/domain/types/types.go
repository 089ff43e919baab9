package types

import (
	"strconv"

	"github.com/google/uuid"
)

// RequestID is a UUID-based identifier for a persisted maintenance request.
// It is assigned exactly once, when a staged candidate is committed.
type RequestID string

// NewRequestID generates a new UUIDv7 RequestID
func NewRequestID() RequestID {
	return RequestID(uuid.Must(uuid.NewV7()).String())
}

// SessionID identifies one copilot conversation session
type SessionID string

// NewSessionID generates a new UUIDv7 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.Must(uuid.NewV7()).String())
}

// HotelID is the numeric identifier of a hotel in the catalog
type HotelID int64

func (id HotelID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseHotelID parses a decimal hotel ID
func ParseHotelID(s string) (HotelID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return HotelID(v), nil
}

// BookingID is the numeric identifier of a booking
type BookingID int64
