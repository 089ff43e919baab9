package hotel

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/stayops-lab/xenia/pkg/agent/tool"
	"github.com/stayops-lab/xenia/pkg/domain/model"
)

// stageRequestTool builds a maintenance request candidate from the guest's
// description without saving it
type stageRequestTool struct {
	svc     MaintenanceService
	dir     Directory
	planner *Planner
}

func (t *stageRequestTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "maintenance__stage_request",
		Description: "Draft a new hotel maintenance request from the guest's description. The draft is NOT saved; call maintenance__commit_request after the guest confirms the details.",
		Parameters: map[string]*gollem.Parameter{
			"hotel_name": {
				Type:        gollem.TypeString,
				Description: "Name of the hotel the request is for, exactly as it appears in the hotel list",
				Required:    true,
			},
			"details": {
				Type:        gollem.TypeString,
				Description: "Description of the problem that needs maintenance",
				Required:    true,
			},
			"room_number": {
				Type:        gollem.TypeInteger,
				Description: "Room number if the problem is in a guest room",
				Required:    false,
			},
			"location": {
				Type:        gollem.TypeString,
				Description: "Location of the problem if it is not in a guest room, e.g. 'lobby' or 'pool deck'",
				Required:    false,
			},
		},
	}
}

func (t *stageRequestTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	hotelName, _ := args["hotel_name"].(string)
	if hotelName == "" {
		return nil, fmt.Errorf("hotel_name is required")
	}
	details, _ := args["details"].(string)
	if details == "" {
		return nil, fmt.Errorf("details is required")
	}

	tool.Update(ctx, fmt.Sprintf("Drafting maintenance request for %s", hotelName))

	h, err := t.dir.GetHotelByName(ctx, hotelName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up hotel", goerr.V("hotel_name", hotelName))
	}
	if h == nil {
		return nil, fmt.Errorf("unknown hotel: %s", hotelName)
	}

	input := model.StageInput{
		HotelID:   h.ID,
		HotelName: h.Name,
		Details:   details,
	}
	if v, ok := extractInt64(args, "room_number"); ok {
		input.RoomNumber = int(v)
	}
	if v, ok := args["location"].(string); ok {
		input.Location = v
	}

	staged, err := t.svc.Stage(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stage maintenance request",
			goerr.V("hotel_id", h.ID),
		)
	}
	t.planner.Put(staged)

	return map[string]any{
		"status":      "staged",
		"hotel_id":    int64(staged.HotelID),
		"hotel_name":  staged.HotelName,
		"details":     staged.Details,
		"room_number": staged.RoomNumber,
		"location":    staged.Location,
		"note":        "The request is a draft. Confirm the details with the guest, then call maintenance__commit_request to save it.",
	}, nil
}
