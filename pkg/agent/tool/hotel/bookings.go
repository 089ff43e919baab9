package hotel

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/stayops-lab/xenia/pkg/agent/tool"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// listHotelsTool returns the hotel catalog
type listHotelsTool struct {
	dir Directory
}

func (t *listHotelsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "hotel__list_hotels",
		Description: "List all hotels with their IDs, names, and locations",
		Parameters:  map[string]*gollem.Parameter{},
	}
}

func (t *listHotelsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	tool.Update(ctx, "Listing hotels")

	hotels, err := t.dir.ListHotels(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list hotels")
	}

	items := make([]map[string]any, len(hotels))
	for i, h := range hotels {
		items[i] = map[string]any{
			"hotel_id": int64(h.ID),
			"name":     h.Name,
			"city":     h.City,
			"country":  h.Country,
		}
	}
	return map[string]any{"hotels": items}, nil
}

// listBookingsTool returns bookings for one hotel or, when no hotel is
// given, across the whole catalog, optionally bounded by a minimum stay date
type listBookingsTool struct {
	dir Directory
}

func (t *listBookingsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "hotel__list_bookings",
		Description: "List bookings for a hotel, or across all hotels when hotel_id is omitted, optionally limited to stays starting on or after a date",
		Parameters: map[string]*gollem.Parameter{
			"hotel_id": {
				Type:        gollem.TypeInteger,
				Description: "ID of the hotel, from hotel__list_hotels. Omit to list bookings across all hotels",
				Required:    false,
			},
			"min_date": {
				Type:        gollem.TypeString,
				Description: "Earliest stay start date to include, in YYYY-MM-DD format",
				Required:    false,
			},
		},
	}
}

func (t *listBookingsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	var minDate time.Time
	if v, ok := args["min_date"].(string); ok && v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("min_date must be in YYYY-MM-DD format: %s", v)
		}
		minDate = parsed
	}

	id, ok := extractInt64(args, "hotel_id")
	if !ok {
		return t.runAcrossHotels(ctx, minDate)
	}
	hotelID := types.HotelID(id)

	tool.Update(ctx, fmt.Sprintf("Listing bookings for hotel %d", hotelID))

	bookings, err := t.dir.ListBookings(ctx, hotelID, minDate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list bookings",
			goerr.V("hotel_id", hotelID),
		)
	}

	items := make([]map[string]any, len(bookings))
	for i, b := range bookings {
		items[i] = bookingItem(b)
	}
	return map[string]any{"bookings": items}, nil
}

func (t *listBookingsTool) runAcrossHotels(ctx context.Context, minDate time.Time) (map[string]any, error) {
	tool.Update(ctx, "Listing bookings across all hotels")

	grouped, err := t.dir.ListAllBookings(ctx, minDate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list bookings across hotels")
	}

	hotelIDs := make([]types.HotelID, 0, len(grouped))
	for hotelID := range grouped {
		hotelIDs = append(hotelIDs, hotelID)
	}
	sort.Slice(hotelIDs, func(i, j int) bool { return hotelIDs[i] < hotelIDs[j] })

	items := make([]map[string]any, 0)
	for _, hotelID := range hotelIDs {
		for _, b := range grouped[hotelID] {
			items = append(items, bookingItem(b))
		}
	}
	return map[string]any{"bookings": items}, nil
}

func bookingItem(b *model.Booking) map[string]any {
	return map[string]any{
		"booking_id":      int64(b.ID),
		"hotel_id":        int64(b.HotelID),
		"customer_name":   b.CustomerName,
		"rooms":           b.Rooms,
		"stay_begin_date": b.StayBeginDate.Format("2006-01-02"),
		"stay_end_date":   b.StayEndDate.Format("2006-01-02"),
	}
}
