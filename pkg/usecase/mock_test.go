package usecase_test

import (
	"context"
	"math"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
)

// mockLLMSession is a mock gollem Session for testing
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

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn        func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
	generateEmbeddingFn func(ctx context.Context, dimension int, input []string) ([][]float64, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	if c.generateEmbeddingFn != nil {
		return c.generateEmbeddingFn(ctx, dimension, input)
	}
	out := make([][]float64, len(input))
	for i := range input {
		vec := make([]float64, dimension)
		vec[0] = 1
		out[i] = vec
	}
	return out, nil
}

// mockNotifier records committed requests and signals each notification
type mockNotifier struct {
	notified chan *model.MaintenanceRequest
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{notified: make(chan *model.MaintenanceRequest, 8)}
}

func (n *mockNotifier) NotifyRequestCommitted(ctx context.Context, req *model.MaintenanceRequest) error {
	n.notified <- req
	return nil
}

func (n *mockNotifier) wait(timeout time.Duration) *model.MaintenanceRequest {
	select {
	case req := <-n.notified:
		return req
	case <-time.After(timeout):
		return nil
	}
}

// unitVector builds an embedding whose cosine similarity to the axis query
// vector (1, 0, 0, ...) is exactly s
func unitVector(s float64) []float32 {
	vec := make([]float32, model.EmbeddingDimension)
	vec[0] = float32(s)
	vec[1] = float32(math.Sqrt(1 - s*s))
	return vec
}

// axisQuery is the query vector unitVector similarities are measured against
func axisQuery() []float32 {
	vec := make([]float32, model.EmbeddingDimension)
	vec[0] = 1
	return vec
}

func testHotels() []*model.Hotel {
	return []*model.Hotel{
		{ID: 1, Name: "Oceanview Inn", City: "Nassau", Country: "Bahamas"},
		{ID: 2, Name: "Grand Regnessem", City: "Funafuti", Country: "Tuvalu"},
	}
}

func testBookings() []*model.Booking {
	return []*model.Booking{
		{ID: 1, HotelID: 1, CustomerName: "Amber Carson", Rooms: 1,
			StayBeginDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			StayEndDate:   time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)},
		{ID: 2, HotelID: 1, CustomerName: "Hiroshi Tanaka", Rooms: 2,
			StayBeginDate: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
			StayEndDate:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
	}
}

func stagedFixture(hotelID types.HotelID) model.StageInput {
	return model.StageInput{
		HotelID:    hotelID,
		HotelName:  "Oceanview Inn",
		Details:    "The bathroom faucet is leaking",
		RoomNumber: 205,
	}
}
