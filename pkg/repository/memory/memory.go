package memory

import (
	"errors"

	"github.com/stayops-lab/xenia/pkg/domain/interfaces"
)

// ErrAlreadyExists is returned when creating an entry whose ID is taken
var ErrAlreadyExists = errors.New("entry already exists")

// Memory is an in-process repository for development and tests
type Memory struct {
	maintenance *maintenanceRepository
	hotel       *hotelRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		maintenance: newMaintenanceRepository(),
		hotel:       newHotelRepository(),
	}
}

func (m *Memory) Maintenance() interfaces.MaintenanceRepository {
	return m.maintenance
}

func (m *Memory) Hotel() interfaces.HotelRepository {
	return m.hotel
}

func (m *Memory) Close() error {
	return nil
}
