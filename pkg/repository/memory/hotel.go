package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

type hotelRepository struct {
	mu       sync.RWMutex
	hotels   map[types.HotelID]*model.Hotel
	bookings map[types.HotelID][]*model.Booking
}

func newHotelRepository() *hotelRepository {
	return &hotelRepository{
		hotels:   make(map[types.HotelID]*model.Hotel),
		bookings: make(map[types.HotelID][]*model.Booking),
	}
}

func (r *hotelRepository) List(ctx context.Context) ([]*model.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hotels := make([]*model.Hotel, 0, len(r.hotels))
	for _, h := range r.hotels {
		clone := *h
		hotels = append(hotels, &clone)
	}

	sort.Slice(hotels, func(i, j int) bool {
		return hotels[i].ID < hotels[j].ID
	})
	return hotels, nil
}

func (r *hotelRepository) Get(ctx context.Context, id types.HotelID) (*model.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hotels[id]
	if !ok {
		return nil, nil
	}
	clone := *h
	return &clone, nil
}

func (r *hotelRepository) GetByName(ctx context.Context, name string) (*model.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hotels {
		if strings.EqualFold(h.Name, name) {
			clone := *h
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *hotelRepository) ListBookings(ctx context.Context, hotelID types.HotelID, minDate time.Time) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*model.Booking, 0)
	for _, b := range r.bookings[hotelID] {
		if !minDate.IsZero() && b.StayBeginDate.Before(minDate) {
			continue
		}
		clone := *b
		bookings = append(bookings, &clone)
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StayBeginDate.Before(bookings[j].StayBeginDate)
	})
	return bookings, nil
}

func (r *hotelRepository) ListBookingsByHotelIDs(ctx context.Context, hotelIDs []types.HotelID, minDate time.Time) (map[types.HotelID][]*model.Booking, error) {
	result := make(map[types.HotelID][]*model.Booking, len(hotelIDs))
	for _, hotelID := range hotelIDs {
		bookings, err := r.ListBookings(ctx, hotelID, minDate)
		if err != nil {
			return nil, err
		}
		result[hotelID] = bookings
	}
	return result, nil
}

func (r *hotelRepository) SaveHotel(ctx context.Context, hotel *model.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *hotel
	r.hotels[hotel.ID] = &clone
	return nil
}

func (r *hotelRepository) SaveBooking(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *booking
	existing := r.bookings[booking.HotelID]
	for i, b := range existing {
		if b.ID == booking.ID {
			existing[i] = &clone
			return nil
		}
	}
	r.bookings[booking.HotelID] = append(existing, &clone)
	return nil
}
