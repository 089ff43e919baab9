package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const distanceField = "vector_distance"

// maintenanceDoc is the Firestore document representation of
// model.MaintenanceRequest. Embedding is stored as firestore.Vector32 so
// that FindNearest vector search works.
type maintenanceDoc struct {
	ID         types.RequestID    `firestore:"ID"`
	HotelID    int64              `firestore:"HotelID"`
	HotelName  string             `firestore:"HotelName"`
	Details    string             `firestore:"Details"`
	RoomNumber int                `firestore:"RoomNumber"`
	Location   string             `firestore:"Location"`
	Source     string             `firestore:"Source"`
	Embedding  firestore.Vector32 `firestore:"Embedding,omitempty"`
	CreatedAt  time.Time          `firestore:"CreatedAt"`
}

func toMaintenanceDoc(m *model.MaintenanceRequest) *maintenanceDoc {
	doc := &maintenanceDoc{
		ID:         m.ID,
		HotelID:    int64(m.HotelID),
		HotelName:  m.HotelName,
		Details:    m.Details,
		RoomNumber: m.RoomNumber,
		Location:   m.Location,
		Source:     m.Source,
		CreatedAt:  m.CreatedAt,
	}
	if len(m.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(m.Embedding)
	}
	return doc
}

func fromMaintenanceDoc(d *maintenanceDoc) *model.MaintenanceRequest {
	m := &model.MaintenanceRequest{
		ID:         d.ID,
		HotelID:    types.HotelID(d.HotelID),
		HotelName:  d.HotelName,
		Details:    d.Details,
		RoomNumber: d.RoomNumber,
		Location:   d.Location,
		Source:     d.Source,
		CreatedAt:  d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		m.Embedding = []float32(d.Embedding)
	}
	return m
}

func docToMaintenance(doc *firestore.DocumentSnapshot) (*model.MaintenanceRequest, error) {
	var d maintenanceDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromMaintenanceDoc(&d), nil
}

type maintenanceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMaintenanceRepository(client *firestore.Client) *maintenanceRepository {
	return &maintenanceRepository{
		client: client,
	}
}

// requestsCollection returns the subcollection holding one partition's
// requests. All requests of one hotel co-locate under its partition doc.
func (r *maintenanceRepository) requestsCollection(partition string) *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + "maintenance").Doc(partition).Collection("requests")
}

func (r *maintenanceRepository) requestsGroup() firestore.Query {
	return r.client.CollectionGroup("requests").Query
}

func (r *maintenanceRepository) Create(ctx context.Context, req *model.MaintenanceRequest) error {
	if req.ID == "" {
		return goerr.New("request ID must be assigned before persisting")
	}

	docRef := r.requestsCollection(req.PartitionKey()).Doc(string(req.ID))
	if _, err := docRef.Create(ctx, toMaintenanceDoc(req)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(ErrAlreadyExists, "request ID conflict", goerr.V("id", req.ID))
		}
		return goerr.Wrap(err, "failed to create maintenance request", goerr.V("id", req.ID))
	}

	return nil
}

func (r *maintenanceRepository) Get(ctx context.Context, id types.RequestID) (*model.MaintenanceRequest, error) {
	// The partition is not derivable from the ID, so look across partitions
	iter := r.requestsGroup().
		Where("ID", "==", string(id)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get maintenance request", goerr.V("id", id))
	}

	m, err := docToMaintenance(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal maintenance request", goerr.V("id", id))
	}
	return m, nil
}

func (r *maintenanceRepository) ListByHotelID(ctx context.Context, hotelID types.HotelID) ([]*model.MaintenanceRequest, error) {
	partition := (&model.MaintenanceRequest{HotelID: hotelID}).PartitionKey()
	iter := r.requestsCollection(partition).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	requests := make([]*model.MaintenanceRequest, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate maintenance requests", goerr.V("hotelID", hotelID))
		}

		m, err := docToMaintenance(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal maintenance request")
		}
		requests = append(requests, m)
	}

	return requests, nil
}

func (r *maintenanceRepository) FindSimilar(ctx context.Context, embedding []float32, limit int) ([]*model.ScoredRequest, error) {
	vq := r.requestsGroup().
		FindNearest("Embedding", firestore.Vector32(embedding), limit, firestore.DistanceMeasureCosine,
			&firestore.FindNearestOptions{
				DistanceResultField: distanceField,
			})

	iter := vq.Documents(ctx)
	defer iter.Stop()

	results := make([]*model.ScoredRequest, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vector search results")
		}

		m, err := docToMaintenance(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal maintenance request from vector search")
		}

		// Cosine distance is in [0, 2]; similarity = 1 - distance
		distance, _ := doc.Data()[distanceField].(float64)
		results = append(results, &model.ScoredRequest{
			Request: m,
			Score:   1 - distance,
		})
	}

	return results, nil
}
