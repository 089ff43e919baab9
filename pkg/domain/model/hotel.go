package model

import (
	"time"

	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// Hotel is a property in the catalog
type Hotel struct {
	ID      types.HotelID
	Name    string
	City    string
	Country string
}

// Booking is a stay reservation at a hotel
type Booking struct {
	ID            types.BookingID
	HotelID       types.HotelID
	CustomerName  string
	Rooms         int
	StayBeginDate time.Time
	StayEndDate   time.Time
}
