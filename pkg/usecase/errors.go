package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrRequestNotFound = errors.New("maintenance request not found")
	ErrSessionNotFound = errors.New("session not found")

	// Lifecycle errors
	ErrAlreadyCommitted = errors.New("maintenance request is already committed")

	// Input errors
	ErrEmptyText = errors.New("text is required")
)
