// Package httpapi exposes a read-only JSON view of the fleet: device,
// customer and rental listings plus the month calendar. Mutations go
// through the CLI; the API is for dashboards and monitoring.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"device-rental-manager/internal/logger"
	"device-rental-manager/internal/service"
)

type Server struct {
	devices   service.DeviceService
	customers service.CustomerService
	rentals   service.RentalService
	router    *mux.Router
	log       *slog.Logger
}

func NewServer(devices service.DeviceService, customers service.CustomerService, rentals service.RentalService) *Server {
	s := &Server{
		devices:   devices,
		customers: customers,
		rentals:   rentals,
		router:    mux.NewRouter(),
		log:       logger.WithService("httpapi"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/devices", s.handleListDevices).Methods(http.MethodGet)
	s.router.HandleFunc("/customers", s.handleListCustomers).Methods(http.MethodGet)
	s.router.HandleFunc("/rentals", s.handleListRentals).Methods(http.MethodGet)
	s.router.HandleFunc("/calendar/{month}", s.handleCalendar).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
