package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/schedule"
)

type deviceDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	DayRateCents int64  `json:"day_rate_cents"`
	Status       string `json:"status"`
}

type customerDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type rentalDTO struct {
	ID         string `json:"id"`
	DeviceID   string `json:"device_id"`
	CustomerID string `json:"customer_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Address    string `json:"address,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status"`
	FeeCents   *int64 `json:"fee_cents,omitempty"`
}

type calendarRowDTO struct {
	DeviceID   string   `json:"device_id"`
	DeviceName string   `json:"device_name"`
	Days       []string `json:"days"` // "", rental ID, or "maintenance"
}

type calendarDTO struct {
	Month string           `json:"month"`
	Rows  []calendarRowDTO `json:"rows"`
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	status := domain.DeviceStatus(r.URL.Query().Get("status"))
	devices, err := s.devices.ListDevices(r.Context(), status)
	if err != nil {
		s.log.Error("failed to list devices", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list devices")
		return
	}
	out := make([]deviceDTO, 0, len(devices))
	for _, d := range devices {
		out = append(out, deviceDTO{
			ID:           d.ID,
			Name:         d.Name,
			Category:     d.Category,
			DayRateCents: d.DayRateCents,
			Status:       string(d.Status),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.ListCustomers(r.Context())
	if err != nil {
		s.log.Error("failed to list customers", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}
	out := make([]customerDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, customerDTO{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListRentals(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	rentals, err := s.rentals.ListRentals(r.Context(), status)
	if err != nil {
		s.log.Error("failed to list rentals", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list rentals")
		return
	}
	out := make([]rentalDTO, 0, len(rentals))
	for _, rr := range rentals {
		out = append(out, rentalDTO{
			ID:         rr.ID,
			DeviceID:   rr.DeviceID,
			CustomerID: rr.CustomerID,
			Start:      schedule.FormatDate(rr.Start),
			End:        schedule.FormatDate(rr.End),
			Address:    rr.Address,
			Notes:      rr.Notes,
			Status:     string(rr.Status),
			FeeCents:   rr.FeeCents,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	monthStr := mux.Vars(r)["month"]
	month, err := time.Parse("2006-01", monthStr)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "month must be formatted YYYY-MM")
		return
	}

	devices, err := s.devices.ListDevices(r.Context(), "")
	if err != nil {
		s.log.Error("failed to list devices for calendar", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}
	rentals, err := s.rentals.ListRentals(r.Context(), "")
	if err != nil {
		s.log.Error("failed to list rentals for calendar", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}

	out := calendarDTO{Month: monthStr, Rows: make([]calendarRowDTO, 0, len(devices))}
	for row := range schedule.Month(month.Year(), month.Month(), devices, rentals) {
		days := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			switch cell.State {
			case schedule.DayOccupied:
				days[i] = cell.RentalID
			case schedule.DayMaintenance:
				days[i] = "maintenance"
			}
		}
		out.Rows = append(out.Rows, calendarRowDTO{
			DeviceID:   row.DeviceID,
			DeviceName: row.DeviceName,
			Days:       days,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}
