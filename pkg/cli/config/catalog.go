package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Catalog holds CLI flags for seeding the hotel catalog from a TOML file
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "hotel-catalog",
			Usage:       "Path to a TOML file with hotels and bookings to seed at startup",
			Sources:     cli.EnvVars("XENIA_HOTEL_CATALOG"),
			Destination: &c.path,
		},
	}
}

// Configured reports whether a catalog file was given
func (c *Catalog) Configured() bool {
	return c.path != ""
}

// CatalogFile is the TOML shape of a hotel catalog
type CatalogFile struct {
	Hotels   []CatalogHotel   `toml:"hotel"`
	Bookings []CatalogBooking `toml:"booking"`
}

// CatalogHotel is one hotel entry in the catalog file
type CatalogHotel struct {
	ID      int64  `toml:"id"`
	Name    string `toml:"name"`
	City    string `toml:"city"`
	Country string `toml:"country"`
}

// Validate checks if the CatalogHotel is valid
func (h *CatalogHotel) Validate() error {
	if h.ID <= 0 {
		return goerr.Wrap(ErrInvalidCatalog, "hotel id must be positive", goerr.V("id", h.ID))
	}
	if h.Name == "" {
		return goerr.Wrap(ErrInvalidCatalog, "hotel name is required", goerr.V("id", h.ID))
	}
	return nil
}

// CatalogBooking is one booking entry in the catalog file
type CatalogBooking struct {
	ID            int64     `toml:"id"`
	HotelID       int64     `toml:"hotel_id"`
	CustomerName  string    `toml:"customer_name"`
	Rooms         int       `toml:"rooms"`
	StayBeginDate time.Time `toml:"stay_begin_date"`
	StayEndDate   time.Time `toml:"stay_end_date"`
}

// Validate checks if the CatalogBooking is valid
func (b *CatalogBooking) Validate() error {
	if b.ID <= 0 {
		return goerr.Wrap(ErrInvalidCatalog, "booking id must be positive", goerr.V("id", b.ID))
	}
	if b.HotelID <= 0 {
		return goerr.Wrap(ErrInvalidCatalog, "booking hotel_id must be positive", goerr.V("id", b.ID))
	}
	if b.Rooms < 1 {
		return goerr.Wrap(ErrInvalidCatalog, "booking rooms must be at least 1",
			goerr.V("id", b.ID), goerr.V("rooms", b.Rooms))
	}
	if b.StayEndDate.Before(b.StayBeginDate) {
		return goerr.Wrap(ErrInvalidCatalog, "booking stay_end_date precedes stay_begin_date",
			goerr.V("id", b.ID))
	}
	return nil
}

// Load parses and validates the configured catalog file
func (c *Catalog) Load() (*CatalogFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", c.path))
	}
	return ParseCatalog(data)
}

// ParseCatalog parses and validates catalog TOML data
func ParseCatalog(data []byte) (*CatalogFile, error) {
	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML catalog")
	}

	hotelIDs := make(map[int64]bool)
	for i := range file.Hotels {
		if err := file.Hotels[i].Validate(); err != nil {
			return nil, err
		}
		if hotelIDs[file.Hotels[i].ID] {
			return nil, goerr.Wrap(ErrInvalidCatalog, "duplicate hotel id", goerr.V("id", file.Hotels[i].ID))
		}
		hotelIDs[file.Hotels[i].ID] = true
	}

	for i := range file.Bookings {
		if err := file.Bookings[i].Validate(); err != nil {
			return nil, err
		}
		if !hotelIDs[file.Bookings[i].HotelID] {
			return nil, goerr.Wrap(ErrInvalidCatalog, "booking references unknown hotel",
				goerr.V("booking_id", file.Bookings[i].ID),
				goerr.V("hotel_id", file.Bookings[i].HotelID),
			)
		}
	}

	return &file, nil
}

// ToModels converts the catalog file to domain entities
func (f *CatalogFile) ToModels() ([]*model.Hotel, []*model.Booking) {
	hotels := make([]*model.Hotel, len(f.Hotels))
	for i, h := range f.Hotels {
		hotels[i] = &model.Hotel{
			ID:      types.HotelID(h.ID),
			Name:    h.Name,
			City:    h.City,
			Country: h.Country,
		}
	}

	bookings := make([]*model.Booking, len(f.Bookings))
	for i, b := range f.Bookings {
		bookings[i] = &model.Booking{
			ID:            types.BookingID(b.ID),
			HotelID:       types.HotelID(b.HotelID),
			CustomerName:  b.CustomerName,
			Rooms:         b.Rooms,
			StayBeginDate: b.StayBeginDate,
			StayEndDate:   b.StayEndDate,
		}
	}

	return hotels, bookings
}
