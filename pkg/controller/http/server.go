package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stayops-lab/xenia/pkg/usecase"
	"github.com/stayops-lab/xenia/pkg/utils/logging"
	"github.com/stayops-lab/xenia/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	// Route names follow the dashboard API this service backs
	r.Route("/api", func(r chi.Router) {
		r.Post("/MaintenanceCopilotChat", s.handleCopilotChat)

		r.Get("/Vectorize", s.handleVectorize)
		r.Post("/VectorSearch", s.handleVectorSearch)

		r.Get("/Hotels", s.handleListHotels)
		r.Get("/Hotels/{hotelID}/Bookings", s.handleListBookings)
		r.Get("/Hotels/{hotelID}/MaintenanceRequests", s.handleListRequests)

		r.Post("/MaintenanceRequests", s.handleCreateRequest)
		r.Get("/MaintenanceRequests/{requestID}", s.handleGetRequest)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
