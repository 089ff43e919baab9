package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Maintenance() MaintenanceRepository
	Hotel() HotelRepository

	Close() error
}
