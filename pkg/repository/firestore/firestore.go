package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/interfaces"
)

// ErrAlreadyExists is returned when creating a document whose ID is taken
var ErrAlreadyExists = errors.New("document already exists")

type Firestore struct {
	client      *firestore.Client
	maintenance *maintenanceRepository
	hotel       *hotelRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, mainly for tests sharing
// one database
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.maintenance.collectionPrefix = prefix
		f.hotel.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:      client,
		maintenance: newMaintenanceRepository(client),
		hotel:       newHotelRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Maintenance() interfaces.MaintenanceRepository {
	return f.maintenance
}

func (f *Firestore) Hotel() interfaces.HotelRepository {
	return f.hotel
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
