package firestore

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// hotelDoc carries NameLower so name lookup can be case-insensitive, which
// Firestore queries are not
type hotelDoc struct {
	ID        int64  `firestore:"ID"`
	Name      string `firestore:"Name"`
	NameLower string `firestore:"NameLower"`
	City      string `firestore:"City"`
	Country   string `firestore:"Country"`
}

type bookingDoc struct {
	ID            int64     `firestore:"ID"`
	HotelID       int64     `firestore:"HotelID"`
	CustomerName  string    `firestore:"CustomerName"`
	Rooms         int       `firestore:"Rooms"`
	StayBeginDate time.Time `firestore:"StayBeginDate"`
	StayEndDate   time.Time `firestore:"StayEndDate"`
}

func toHotelDoc(h *model.Hotel) *hotelDoc {
	return &hotelDoc{
		ID:        int64(h.ID),
		Name:      h.Name,
		NameLower: strings.ToLower(h.Name),
		City:      h.City,
		Country:   h.Country,
	}
}

func fromHotelDoc(d *hotelDoc) *model.Hotel {
	return &model.Hotel{
		ID:      types.HotelID(d.ID),
		Name:    d.Name,
		City:    d.City,
		Country: d.Country,
	}
}

func toBookingDoc(b *model.Booking) *bookingDoc {
	return &bookingDoc{
		ID:            int64(b.ID),
		HotelID:       int64(b.HotelID),
		CustomerName:  b.CustomerName,
		Rooms:         b.Rooms,
		StayBeginDate: b.StayBeginDate,
		StayEndDate:   b.StayEndDate,
	}
}

func fromBookingDoc(d *bookingDoc) *model.Booking {
	return &model.Booking{
		ID:            types.BookingID(d.ID),
		HotelID:       types.HotelID(d.HotelID),
		CustomerName:  d.CustomerName,
		Rooms:         d.Rooms,
		StayBeginDate: d.StayBeginDate,
		StayEndDate:   d.StayEndDate,
	}
}

type hotelRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newHotelRepository(client *firestore.Client) *hotelRepository {
	return &hotelRepository{
		client: client,
	}
}

func (r *hotelRepository) hotelsCollection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + "hotels")
}

func (r *hotelRepository) bookingsCollection(hotelID types.HotelID) *firestore.CollectionRef {
	return r.hotelsCollection().Doc(hotelID.String()).Collection("bookings")
}

func (r *hotelRepository) List(ctx context.Context) ([]*model.Hotel, error) {
	iter := r.hotelsCollection().OrderBy("ID", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	hotels := make([]*model.Hotel, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate hotels")
		}

		var d hotelDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal hotel")
		}
		hotels = append(hotels, fromHotelDoc(&d))
	}

	return hotels, nil
}

func (r *hotelRepository) Get(ctx context.Context, id types.HotelID) (*model.Hotel, error) {
	doc, err := r.hotelsCollection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get hotel", goerr.V("id", id))
	}

	var d hotelDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal hotel", goerr.V("id", id))
	}
	return fromHotelDoc(&d), nil
}

func (r *hotelRepository) GetByName(ctx context.Context, name string) (*model.Hotel, error) {
	iter := r.hotelsCollection().
		Where("NameLower", "==", strings.ToLower(name)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get hotel by name", goerr.V("name", name))
	}

	var d hotelDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal hotel", goerr.V("name", name))
	}
	return fromHotelDoc(&d), nil
}

func (r *hotelRepository) ListBookings(ctx context.Context, hotelID types.HotelID, minDate time.Time) ([]*model.Booking, error) {
	query := r.bookingsCollection(hotelID).Query
	if !minDate.IsZero() {
		query = query.Where("StayBeginDate", ">=", minDate)
	}

	iter := query.OrderBy("StayBeginDate", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	bookings := make([]*model.Booking, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate bookings", goerr.V("hotelID", hotelID))
		}

		var d bookingDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal booking")
		}
		bookings = append(bookings, fromBookingDoc(&d))
	}

	return bookings, nil
}

func (r *hotelRepository) ListBookingsByHotelIDs(ctx context.Context, hotelIDs []types.HotelID, minDate time.Time) (map[types.HotelID][]*model.Booking, error) {
	result := make(map[types.HotelID][]*model.Booking, len(hotelIDs))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	for _, hotelID := range hotelIDs {
		eg.Go(func() error {
			bookings, err := r.ListBookings(ctx, hotelID, minDate)
			if err != nil {
				return goerr.Wrap(err, "failed to list bookings", goerr.V("hotelID", hotelID))
			}
			mu.Lock()
			result[hotelID] = bookings
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *hotelRepository) SaveHotel(ctx context.Context, hotel *model.Hotel) error {
	docRef := r.hotelsCollection().Doc(hotel.ID.String())
	if _, err := docRef.Set(ctx, toHotelDoc(hotel)); err != nil {
		return goerr.Wrap(err, "failed to save hotel", goerr.V("id", hotel.ID))
	}
	return nil
}

func (r *hotelRepository) SaveBooking(ctx context.Context, booking *model.Booking) error {
	docRef := r.bookingsCollection(booking.HotelID).Doc(strconv.FormatInt(int64(booking.ID), 10))
	if _, err := docRef.Set(ctx, toBookingDoc(booking)); err != nil {
		return goerr.Wrap(err, "failed to save booking",
			goerr.V("hotelID", booking.HotelID),
			goerr.V("bookingID", booking.ID),
		)
	}
	return nil
}
