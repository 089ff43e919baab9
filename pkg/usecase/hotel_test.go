package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

func TestListAllBookings(t *testing.T) {
	ctx := context.Background()
	uc := seededUseCases(t, &mockLLMClient{})

	grouped, err := uc.ListAllBookings(ctx, time.Time{})
	gt.NoError(t, err).Required()
	gt.Map(t, grouped).HasKey(types.HotelID(1)).HasKey(types.HotelID(2))
	gt.Array(t, grouped[1]).Length(2)
	gt.Array(t, grouped[2]).Length(0)
	gt.Value(t, grouped[1][0].CustomerName).Equal("Amber Carson")

	// minDate excludes the September stay
	grouped, err = uc.ListAllBookings(ctx, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	gt.NoError(t, err).Required()
	gt.Array(t, grouped[1]).Length(1)
	gt.Value(t, grouped[1][0].CustomerName).Equal("Hiroshi Tanaka")
}
