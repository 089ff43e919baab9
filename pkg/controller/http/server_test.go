package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	httpctrl "github.com/stayops-lab/xenia/pkg/controller/http"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/repository/memory"
	"github.com/stayops-lab/xenia/pkg/usecase"
)

type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"test response"}}, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLMClient struct{}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	out := make([][]float64, len(input))
	for i := range input {
		vec := make([]float64, dimension)
		vec[0] = 1
		out[i] = vec
	}
	return out, nil
}

func similarEmbedding(s float64) []float32 {
	vec := make([]float32, model.EmbeddingDimension)
	vec[0] = float32(s)
	vec[1] = float32(math.Sqrt(1 - s*s))
	return vec
}

func newTestServer(t *testing.T) *httpctrl.Server {
	t.Helper()
	ctx := context.Background()

	repo := memory.New()
	uc := usecase.New(repo, &mockLLMClient{})

	hotels := []*model.Hotel{
		{ID: 1, Name: "Oceanview Inn", City: "Nassau", Country: "Bahamas"},
		{ID: 2, Name: "Grand Regnessem", City: "Funafuti", Country: "Tuvalu"},
	}
	bookings := []*model.Booking{
		{ID: 1, HotelID: 1, CustomerName: "Amber Carson", Rooms: 1,
			StayBeginDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			StayEndDate:   time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)},
	}
	gt.NoError(t, uc.SeedCatalog(ctx, hotels, bookings)).Required()

	for i, s := range []float64{0.95, 0.85, 0.6} {
		req := &model.MaintenanceRequest{
			ID:        types.NewRequestID(),
			HotelID:   1,
			HotelName: "Oceanview Inn",
			Details:   fmt.Sprintf("seeded problem %d", i),
			Source:    model.SourceCustomer,
			Embedding: similarEmbedding(s),
			CreatedAt: time.Now().UTC(),
		}
		gt.NoError(t, repo.Maintenance().Create(ctx, req)).Required()
	}

	return httpctrl.New(uc)
}

func doJSON(t *testing.T, srv *httpctrl.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, w.Body.String()).Equal("OK")
}

func TestListHotels(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/api/Hotels", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	hotels := decodeBody[[]map[string]any](t, w)
	gt.Array(t, hotels).Length(2)
	gt.Value(t, hotels[0]["hotelName"]).Equal("Oceanview Inn")
	gt.Value(t, hotels[0]["hotelId"]).Equal(float64(1))
}

func TestListBookings(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/Hotels/1/Bookings", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	bookings := decodeBody[[]map[string]any](t, w)
	gt.Array(t, bookings).Length(1)
	gt.Value(t, bookings[0]["customerName"]).Equal("Amber Carson")
	gt.Value(t, bookings[0]["stayBeginDate"]).Equal("2026-09-01")

	// Bookings starting before minDate are excluded
	w = doJSON(t, srv, http.MethodGet, "/api/Hotels/1/Bookings?minDate=2026-10-01", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Array(t, decodeBody[[]map[string]any](t, w)).Length(0)

	w = doJSON(t, srv, http.MethodGet, "/api/Hotels/not-a-number/Bookings", nil)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)

	w = doJSON(t, srv, http.MethodGet, "/api/Hotels/999/Bookings", nil)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestVectorize(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/Vectorize?text=leaking+faucet", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	vec := decodeBody[[]float32](t, w)
	gt.Array(t, vec).Length(model.EmbeddingDimension)

	w = doJSON(t, srv, http.MethodGet, "/api/Vectorize", nil)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestVectorSearch(t *testing.T) {
	srv := newTestServer(t)

	query := make([]float32, model.EmbeddingDimension)
	query[0] = 1

	// Default threshold excludes the 0.6 seed
	w := doJSON(t, srv, http.MethodPost, "/api/VectorSearch", map[string]any{
		"queryVector": query,
		"maxResults":  0,
	})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	results := decodeBody[[]map[string]any](t, w)
	gt.Array(t, results).Length(2)
	gt.Value(t, results[0]["details"]).Equal("seeded problem 0")

	// Lowering the threshold brings everything back
	w = doJSON(t, srv, http.MethodPost, "/api/VectorSearch", map[string]any{
		"queryVector":            query,
		"maxResults":             0,
		"minimumSimilarityScore": 0.1,
	})
	gt.Array(t, decodeBody[[]map[string]any](t, w)).Length(3)

	// maxResults truncates
	w = doJSON(t, srv, http.MethodPost, "/api/VectorSearch", map[string]any{
		"queryVector":            query,
		"maxResults":             1,
		"minimumSimilarityScore": 0.1,
	})
	gt.Array(t, decodeBody[[]map[string]any](t, w)).Length(1)

	// Wrong dimension is rejected
	w = doJSON(t, srv, http.MethodPost, "/api/VectorSearch", map[string]any{
		"queryVector": []float32{1, 0},
	})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestCreateAndGetRequest(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/MaintenanceRequests", map[string]any{
		"hotel_id":    1,
		"hotel_name":  "Oceanview Inn",
		"details":     "Elevator stuck between floors",
		"room_number": 0,
		"location":    "east wing",
	})
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	created := decodeBody[map[string]any](t, w)
	requestID, ok := created["requestId"].(string)
	gt.Bool(t, ok).True()
	gt.Value(t, created["source"]).Equal(model.SourceCustomer)

	w = doJSON(t, srv, http.MethodGet, "/api/MaintenanceRequests/"+requestID, nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	got := decodeBody[map[string]any](t, w)
	gt.Value(t, got["details"]).Equal("Elevator stuck between floors")
	gt.Value(t, got["location"]).Equal("east wing")

	w = doJSON(t, srv, http.MethodGet, "/api/Hotels/1/MaintenanceRequests", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Array(t, decodeBody[[]map[string]any](t, w)).Length(4)

	w = doJSON(t, srv, http.MethodGet, "/api/MaintenanceRequests/"+string(types.NewRequestID()), nil)
	gt.Value(t, w.Code).Equal(http.StatusNotFound)
}

func TestCreateRequestValidation(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/MaintenanceRequests", map[string]any{
		"hotel_id": 1,
	})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestCopilotChat(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/MaintenanceCopilotChat", map[string]any{
		"message": "hello",
	})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	resp := decodeBody[map[string]any](t, w)
	// The dashboard reads the reply from the "message" key
	gt.Value(t, resp["message"]).Equal("test response")
	sessionID, ok := resp["sessionId"].(string)
	gt.Bool(t, ok).True()
	gt.Value(t, sessionID).NotEqual("")

	// Follow-up messages on the returned session succeed
	w = doJSON(t, srv, http.MethodPost, "/api/MaintenanceCopilotChat", map[string]any{
		"sessionId": sessionID,
		"message":   "and another thing",
	})
	gt.Value(t, w.Code).Equal(http.StatusOK)

	// Unknown sessions and blank messages are rejected
	w = doJSON(t, srv, http.MethodPost, "/api/MaintenanceCopilotChat", map[string]any{
		"sessionId": string(types.NewSessionID()),
		"message":   "hello",
	})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)

	w = doJSON(t, srv, http.MethodPost, "/api/MaintenanceCopilotChat", map[string]any{
		"message": "",
	})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}
