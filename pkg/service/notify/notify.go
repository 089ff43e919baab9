package notify

import (
	"context"

	"github.com/stayops-lab/xenia/pkg/domain/model"
)

// Service delivers operational notifications to staff channels
type Service interface {
	NotifyRequestCommitted(ctx context.Context, req *model.MaintenanceRequest) error
}
