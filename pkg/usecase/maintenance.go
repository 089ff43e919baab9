package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/utils/async"
	"github.com/stayops-lab/xenia/pkg/utils/logging"
)

// Stage builds a maintenance request candidate from guest input. It touches
// neither the store nor the model: staging the same input twice yields
// equivalent candidates and leaves no trace anywhere.
func (uc *UseCases) Stage(ctx context.Context, input model.StageInput) (*model.MaintenanceRequest, error) {
	req := &model.MaintenanceRequest{
		HotelID:    input.HotelID,
		HotelName:  input.HotelName,
		Details:    input.Details,
		RoomNumber: input.RoomNumber,
		Location:   input.Location,
		Source:     model.SourceCustomer,
	}
	if err := req.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid maintenance request", goerr.T(types.ErrTagValidation))
	}
	return req, nil
}

// Commit persists a staged candidate. The request ID is assigned here,
// exactly once; committing an already committed request is rejected rather
// than creating a duplicate. The embedding is best effort: when the model is
// unavailable the request is saved without a vector and will not appear in
// similarity search until re-embedded.
func (uc *UseCases) Commit(ctx context.Context, staged *model.MaintenanceRequest) (*model.MaintenanceRequest, error) {
	logger := logging.From(ctx)

	if staged == nil {
		return nil, goerr.New("no staged request", goerr.T(types.ErrTagValidation))
	}
	if staged.Committed() {
		return nil, goerr.Wrap(ErrAlreadyCommitted, "refusing to commit twice",
			goerr.T(types.ErrTagValidation),
			goerr.V("request_id", staged.ID),
		)
	}
	if err := staged.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid maintenance request", goerr.T(types.ErrTagValidation))
	}

	req := *staged
	req.ID = types.NewRequestID()
	req.CreatedAt = time.Now().UTC()

	if len(req.Embedding) == 0 {
		embedding, err := uc.Vectorize(ctx, req.Details)
		if err != nil {
			logger.Warn("failed to embed maintenance request, saving without vector",
				"hotel_id", req.HotelID,
				"error", err.Error(),
			)
		} else {
			req.Embedding = embedding
		}
	}

	if err := uc.repo.Maintenance().Create(ctx, &req); err != nil {
		return nil, goerr.Wrap(err, "failed to save maintenance request",
			goerr.V("request_id", req.ID),
			goerr.V("partition", req.PartitionKey()),
		)
	}

	logger.Info("committed maintenance request",
		"request_id", req.ID,
		"hotel_id", req.HotelID,
		"partition", req.PartitionKey(),
	)

	if uc.notifier != nil {
		notifyReq := req
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifier.NotifyRequestCommitted(ctx, &notifyReq)
		})
	}

	return &req, nil
}

// GetRequest returns a committed maintenance request by ID
func (uc *UseCases) GetRequest(ctx context.Context, id types.RequestID) (*model.MaintenanceRequest, error) {
	req, err := uc.repo.Maintenance().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get maintenance request", goerr.V("request_id", id))
	}
	if req == nil {
		return nil, goerr.Wrap(ErrRequestNotFound, "no such request",
			goerr.T(types.ErrTagValidation),
			goerr.V("request_id", id),
		)
	}
	return req, nil
}

// ListRequests returns the committed maintenance requests for one hotel
func (uc *UseCases) ListRequests(ctx context.Context, hotelID types.HotelID) ([]*model.MaintenanceRequest, error) {
	reqs, err := uc.repo.Maintenance().ListByHotelID(ctx, hotelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list maintenance requests", goerr.V("hotel_id", hotelID))
	}
	return reqs, nil
}
