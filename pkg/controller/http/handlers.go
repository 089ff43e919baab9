package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/usecase"
	"github.com/stayops-lab/xenia/pkg/utils/errutil"
)

// defaultMinSimilarityScore filters out weak matches when the caller does
// not set a threshold
const defaultMinSimilarityScore = 0.8

func httpStatusOf(err error) int {
	switch {
	case goerr.HasTag(err, types.ErrTagValidation):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.ErrTagUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		_ = errutil.Handle(ctx, err, "failed to encode response")
	}
}

type chatRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

func (s *Server) handleCopilotChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	sessionID, reply, err := s.uc.Chat(ctx, types.SessionID(req.SessionID), req.Message)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, httpStatusOf(err))
		return
	}

	respondJSON(ctx, w, http.StatusOK, chatResponse{
		SessionID: string(sessionID),
		Message:   reply,
	})
}

func (s *Server) handleVectorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	embedding, err := s.uc.Vectorize(ctx, r.URL.Query().Get("text"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, httpStatusOf(err))
		return
	}

	respondJSON(ctx, w, http.StatusOK, embedding)
}

type vectorSearchRequest struct {
	QueryVector            []float32 `json:"queryVector"`
	MaxResults             int       `json:"maxResults"`
	MinimumSimilarityScore *float64  `json:"minimumSimilarityScore,omitempty"`
}

type scoredRequestResponse struct {
	RequestID  string  `json:"requestId"`
	HotelID    int64   `json:"hotelId"`
	HotelName  string  `json:"hotelName"`
	Details    string  `json:"details"`
	RoomNumber int     `json:"roomNumber,omitempty"`
	Location   string  `json:"location,omitempty"`
	Score      float64 `json:"similarityScore"`
}

func (s *Server) handleVectorSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req vectorSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	minScore := defaultMinSimilarityScore
	if req.MinimumSimilarityScore != nil {
		minScore = *req.MinimumSimilarityScore
	}

	results, err := s.uc.SearchSimilarByVector(ctx, req.QueryVector, req.MaxResults, minScore)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, httpStatusOf(err))
		return
	}

	items := make([]scoredRequestResponse, len(results))
	for i, res := range results {
		items[i] = toScoredResponse(res)
	}
	respondJSON(ctx, w, http.StatusOK, items)
}

func toScoredResponse(res *model.ScoredRequest) scoredRequestResponse {
	return scoredRequestResponse{
		RequestID:  string(res.Request.ID),
		HotelID:    int64(res.Request.HotelID),
		HotelName:  res.Request.HotelName,
		Details:    res.Request.Details,
		RoomNumber: res.Request.RoomNumber,
		Location:   res.Request.Location,
		Score:      res.Score,
	}
}

type hotelResponse struct {
	HotelID int64  `json:"hotelId"`
	Name    string `json:"hotelName"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func (s *Server) handleListHotels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hotels, err := s.uc.ListHotels(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, httpStatusOf(err))
		return
	}

	items := make([]hotelResponse, len(hotels))
	for i, h := range hotels {
		items[i] = hotelResponse{
			HotelID: int64(h.ID),
			Name:    h.Name,
			City:    h.City,
			Country: h.Country,
		}
	}
	respondJSON(ctx, w, http.StatusOK, items)
}

type bookingResponse struct {
	BookingID     int64  `json:"bookingId"`
	HotelID       int64  `json:"hotelId"`
	CustomerName  string `json:"customerName"`
	Rooms         int    `json:"rooms"`
	StayBeginDate string `json:"stayBeginDate"`
	StayEndDate   string `json:"stayEndDate"`
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hotelID, err := types.ParseHotelID(chi.URLParam(r, "hotelID"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid hotel ID"), http.StatusBadRequest)
		return
	}

	var minDate time.Time
	if v := r.URL.Query().Get("minDate"); v != "" {
		minDate, err = time.Parse("2006-01-02", v)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "minDate must be YYYY-MM-DD"), http.StatusBadRequest)
			return
		}
	}

	bookings, err := s.uc.ListBookings(ctx, hotelID, minDate)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, httpStatusOf(err))
		return
	}

	items := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = bookingResponse{
			BookingID:     int64(b.ID),
			HotelID:       int64(b.HotelID),
			CustomerName:  b.CustomerName,
			Rooms:         b.Rooms,
			StayBeginDate: b.StayBeginDate.Format("2006-01-02"),
			StayEndDate:   b.StayEndDate.Format("2006-01-02"),
		}
	}
	respondJSON(ctx, w, http.StatusOK, items)
}

type maintenanceResponse struct {
	RequestID  string `json:"requestId"`
	HotelID    int64  `json:"hotelId"`
	HotelName  string `json:"hotelName"`
	Details    string `json:"details"`
	RoomNumber int    `json:"roomNumber,omitempty"`
	Location   string `json:"location,omitempty"`
	Source     string `json:"source"`
	CreatedAt  string `json:"createdAt"`
}

func toMaintenanceResponse(m *model.MaintenanceRequest) maintenanceResponse {
	return maintenanceResponse{
		RequestID:  string(m.ID),
		HotelID:    int64(m.HotelID),
		HotelName:  m.HotelName,
		Details:    m.Details,
		RoomNumber: m.RoomNumber,
		Location:   m.Location,
		Source:     m.Source,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hotelID, err := types.ParseHotelID(chi.URLParam(r, "hotelID"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid hotel ID"), http.StatusBadRequest)
		return
	}

	requests, err := s.uc.ListRequests(ctx, hotelID)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, httpStatusOf(err))
		return
	}

	items := make([]maintenanceResponse, len(requests))
	for i, m := range requests {
		items[i] = toMaintenanceResponse(m)
	}
	respondJSON(ctx, w, http.StatusOK, items)
}

// handleCreateRequest is the staff-facing direct entry: it stages and
// commits in one call, skipping the conversational confirmation
func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input model.StageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	staged, err := s.uc.Stage(ctx, input)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, httpStatusOf(err))
		return
	}

	committed, err := s.uc.Commit(ctx, staged)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, httpStatusOf(err))
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toMaintenanceResponse(committed))
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := s.uc.GetRequest(ctx, types.RequestID(chi.URLParam(r, "requestID")))
	if err != nil {
		status := httpStatusOf(err)
		if errors.Is(err, usecase.ErrRequestNotFound) {
			status = http.StatusNotFound
		}
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toMaintenanceResponse(req))
}
