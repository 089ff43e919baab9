package hotel

import (
	"context"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// MaintenanceService exposes the staged-request lifecycle to the copilot
// tools. Stage never persists anything; Commit assigns the request its
// identity and writes it.
type MaintenanceService interface {
	Stage(ctx context.Context, input model.StageInput) (*model.MaintenanceRequest, error)
	Commit(ctx context.Context, staged *model.MaintenanceRequest) (*model.MaintenanceRequest, error)
	SearchSimilar(ctx context.Context, query string, topK int, minScore float64) ([]*model.ScoredRequest, error)
}

// Directory exposes hotel catalog lookups to the copilot tools
type Directory interface {
	ListHotels(ctx context.Context) ([]*model.Hotel, error)
	GetHotelByName(ctx context.Context, name string) (*model.Hotel, error)
	ListBookings(ctx context.Context, hotelID types.HotelID, minDate time.Time) ([]*model.Booking, error)
	ListAllBookings(ctx context.Context, minDate time.Time) (map[types.HotelID][]*model.Booking, error)
}

// New builds the copilot tool set for one conversation session. The planner
// is session-local state, so every session needs its own tool set.
func New(svc MaintenanceService, dir Directory, planner *Planner) []gollem.Tool {
	return []gollem.Tool{
		&stageRequestTool{svc: svc, dir: dir, planner: planner},
		&commitRequestTool{svc: svc, planner: planner},
		&searchRequestsTool{svc: svc},
		&listHotelsTool{dir: dir},
		&listBookingsTool{dir: dir},
	}
}

func extractInt64(args map[string]any, key string) (int64, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
