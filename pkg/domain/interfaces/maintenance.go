package interfaces

import (
	"context"

	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// MaintenanceRepository defines the interface for maintenance request persistence
type MaintenanceRepository interface {
	// Create persists a committed request under its partition key. The
	// request must already carry an ID; creation fails on ID conflict.
	Create(ctx context.Context, req *model.MaintenanceRequest) error

	// Get retrieves a request by ID; returns nil when not found
	Get(ctx context.Context, id types.RequestID) (*model.MaintenanceRequest, error)

	// ListByHotelID retrieves all requests co-located under one hotel's
	// partition, newest first
	ListByHotelID(ctx context.Context, hotelID types.HotelID) ([]*model.MaintenanceRequest, error)

	// FindSimilar returns up to limit requests nearest to the embedding,
	// ordered by similarity descending, each with its score
	FindSimilar(ctx context.Context, embedding []float32, limit int) ([]*model.ScoredRequest, error)
}
