package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// ListHotels returns the hotel catalog
func (uc *UseCases) ListHotels(ctx context.Context) ([]*model.Hotel, error) {
	hotels, err := uc.repo.Hotel().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list hotels")
	}
	return hotels, nil
}

// GetHotel returns one hotel by ID
func (uc *UseCases) GetHotel(ctx context.Context, id types.HotelID) (*model.Hotel, error) {
	h, err := uc.repo.Hotel().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get hotel", goerr.V("hotel_id", id))
	}
	if h == nil {
		return nil, goerr.Wrap(ErrHotelNotFound, "no such hotel",
			goerr.T(types.ErrTagValidation),
			goerr.V("hotel_id", id),
		)
	}
	return h, nil
}

// GetHotelByName returns one hotel by its display name, matched case
// insensitively
func (uc *UseCases) GetHotelByName(ctx context.Context, name string) (*model.Hotel, error) {
	h, err := uc.repo.Hotel().GetByName(ctx, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get hotel by name", goerr.V("name", name))
	}
	return h, nil
}

// ListBookings returns bookings for one hotel whose stay begins on or after
// minDate. A zero minDate returns all bookings.
func (uc *UseCases) ListBookings(ctx context.Context, hotelID types.HotelID, minDate time.Time) ([]*model.Booking, error) {
	if _, err := uc.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}

	bookings, err := uc.repo.Hotel().ListBookings(ctx, hotelID, minDate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list bookings", goerr.V("hotel_id", hotelID))
	}
	return bookings, nil
}

// ListAllBookings returns bookings across the whole catalog, keyed by
// hotel ID. Hotels without bookings map to an empty slice.
func (uc *UseCases) ListAllBookings(ctx context.Context, minDate time.Time) (map[types.HotelID][]*model.Booking, error) {
	hotels, err := uc.repo.Hotel().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list hotels")
	}

	ids := make([]types.HotelID, len(hotels))
	for i, h := range hotels {
		ids[i] = h.ID
	}

	grouped, err := uc.repo.Hotel().ListBookingsByHotelIDs(ctx, ids, minDate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list bookings across hotels")
	}
	return grouped, nil
}

// SeedCatalog loads hotels and bookings into the store. Existing entries
// with the same IDs are overwritten.
func (uc *UseCases) SeedCatalog(ctx context.Context, hotels []*model.Hotel, bookings []*model.Booking) error {
	for _, h := range hotels {
		if err := uc.repo.Hotel().SaveHotel(ctx, h); err != nil {
			return goerr.Wrap(err, "failed to save hotel", goerr.V("hotel_id", h.ID))
		}
	}
	for _, b := range bookings {
		if err := uc.repo.Hotel().SaveBooking(ctx, b); err != nil {
			return goerr.Wrap(err, "failed to save booking",
				goerr.V("hotel_id", b.HotelID),
				goerr.V("booking_id", b.ID),
			)
		}
	}
	return nil
}
