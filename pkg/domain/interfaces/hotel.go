package interfaces

import (
	"context"
	"time"

	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// HotelRepository defines the interface for hotel and booking lookups
type HotelRepository interface {
	// List retrieves all hotels ordered by ID
	List(ctx context.Context) ([]*model.Hotel, error)

	// Get retrieves a hotel by ID; returns nil when not found
	Get(ctx context.Context, id types.HotelID) (*model.Hotel, error)

	// GetByName retrieves a hotel by exact (case-insensitive) name;
	// returns nil when not found
	GetByName(ctx context.Context, name string) (*model.Hotel, error)

	// ListBookings retrieves bookings for a hotel whose stay begins on or
	// after minDate. A zero minDate returns all bookings.
	ListBookings(ctx context.Context, hotelID types.HotelID, minDate time.Time) ([]*model.Booking, error)

	// ListBookingsByHotelIDs fetches bookings for multiple hotels in one
	// call to avoid per-hotel round trips
	ListBookingsByHotelIDs(ctx context.Context, hotelIDs []types.HotelID, minDate time.Time) (map[types.HotelID][]*model.Booking, error)

	// SaveHotel and SaveBooking upsert catalog entries (seeding, admin)
	SaveHotel(ctx context.Context, hotel *model.Hotel) error
	SaveBooking(ctx context.Context, booking *model.Booking) error
}
