package hotel

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/stayops-lab/xenia/pkg/agent/tool"
)

// commitRequestTool persists the staged candidate. The candidate gets its
// request ID here and only here.
type commitRequestTool struct {
	svc     MaintenanceService
	planner *Planner
}

func (t *commitRequestTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "maintenance__commit_request",
		Description: "Save the maintenance request drafted by maintenance__stage_request. Call this only after the guest has confirmed the details.",
		Parameters:  map[string]*gollem.Parameter{},
	}
}

func (t *commitRequestTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	staged := t.planner.Take()
	if staged == nil {
		return nil, fmt.Errorf("no maintenance request has been drafted; call maintenance__stage_request first")
	}

	tool.Update(ctx, fmt.Sprintf("Saving maintenance request for %s", staged.HotelName))

	committed, err := t.svc.Commit(ctx, staged)
	if err != nil {
		// Put the draft back so the guest can retry without re-describing
		// the problem
		t.planner.Put(staged)
		return nil, goerr.Wrap(err, "failed to save maintenance request",
			goerr.V("hotel_id", staged.HotelID),
		)
	}

	return map[string]any{
		"status":     "saved",
		"request_id": string(committed.ID),
		"hotel_id":   int64(committed.HotelID),
		"hotel_name": committed.HotelName,
	}, nil
}
