package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

type maintenanceRepository struct {
	mu       sync.RWMutex
	requests map[types.RequestID]*model.MaintenanceRequest
}

func newMaintenanceRepository() *maintenanceRepository {
	return &maintenanceRepository{
		requests: make(map[types.RequestID]*model.MaintenanceRequest),
	}
}

func (r *maintenanceRepository) Create(ctx context.Context, req *model.MaintenanceRequest) error {
	if req.ID == "" {
		return goerr.New("request ID must be assigned before persisting")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[req.ID]; ok {
		return goerr.Wrap(ErrAlreadyExists, "request ID conflict", goerr.V("id", req.ID))
	}

	clone := *req
	r.requests[req.ID] = &clone
	return nil
}

func (r *maintenanceRepository) Get(ctx context.Context, id types.RequestID) (*model.MaintenanceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	clone := *req
	return &clone, nil
}

func (r *maintenanceRepository) ListByHotelID(ctx context.Context, hotelID types.HotelID) ([]*model.MaintenanceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]*model.MaintenanceRequest, 0)
	for _, req := range r.requests {
		if req.HotelID == hotelID {
			clone := *req
			requests = append(requests, &clone)
		}
	}

	// Map iteration is unordered; UUIDv7 IDs sort in creation order, so
	// requests sharing a timestamp keep a stable relative order
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].ID < requests[j].ID
	})
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (r *maintenanceRepository) FindSimilar(ctx context.Context, embedding []float32, limit int) ([]*model.ScoredRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Requests saved without an embedding are invisible to similarity
	// search, matching the vector index behavior of the hosted backend
	results := make([]*model.ScoredRequest, 0)
	for _, req := range r.requests {
		if len(req.Embedding) != len(embedding) || len(req.Embedding) == 0 {
			continue
		}
		clone := *req
		results = append(results, &model.ScoredRequest{
			Request: &clone,
			Score:   cosineSimilarity(embedding, req.Embedding),
		})
	}

	// Equal scores keep creation order
	sort.Slice(results, func(i, j int) bool {
		return results[i].Request.ID < results[j].Request.ID
	})
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
