// Package file persists the three entity collections as a single JSON
// document. The whole document is loaded into memory at Open; repository
// operations mutate only the in-memory maps, and Save writes the full
// snapshot back atomically (temp file + rename). A mutating command that
// fails before Save therefore leaves the data file untouched.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/repository"
)

const dateFormat = "2006-01-02"

type Store struct {
	path      string
	devices   map[string]*domain.Device
	customers map[string]*domain.Customer
	rentals   map[string]*domain.Rental
}

type document struct {
	Devices   []deviceRecord   `json:"devices"`
	Customers []customerRecord `json:"customers"`
	Rentals   []rentalRecord   `json:"rentals"`
}

type deviceRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	DayRateCents int64  `json:"day_rate_cents"`
	Status       string `json:"status"`
}

type customerRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type rentalRecord struct {
	ID         string `json:"id"`
	DeviceID   string `json:"device_id"`
	CustomerID string `json:"customer_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Address    string `json:"address,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status"`
	FeeCents   *int64 `json:"fee_cents,omitempty"`
	CreatedOn  string `json:"created_on,omitempty"`
}

// Init creates an empty data file unless one already exists.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", domain.ErrStorage, path, err)
	}
	s := &Store{
		path:      path,
		devices:   map[string]*domain.Device{},
		customers: map[string]*domain.Customer{},
		rentals:   map[string]*domain.Rental{},
	}
	return s.Save(nil)
}

// Open loads the data file. A missing or corrupt file fails with ErrStorage;
// run `init` first to create an empty one.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, path, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: corrupt data file %s: %v", domain.ErrStorage, path, err)
	}

	s := &Store{
		path:      path,
		devices:   make(map[string]*domain.Device, len(doc.Devices)),
		customers: make(map[string]*domain.Customer, len(doc.Customers)),
		rentals:   make(map[string]*domain.Rental, len(doc.Rentals)),
	}
	for _, rec := range doc.Devices {
		s.devices[rec.ID] = &domain.Device{
			ID:           rec.ID,
			Name:         rec.Name,
			Category:     rec.Category,
			DayRateCents: rec.DayRateCents,
			Status:       domain.DeviceStatus(rec.Status),
		}
	}
	for _, rec := range doc.Customers {
		s.customers[rec.ID] = &domain.Customer{
			ID:    rec.ID,
			Name:  rec.Name,
			Phone: rec.Phone,
			Email: rec.Email,
		}
	}
	for _, rec := range doc.Rentals {
		r, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt data file %s: %v", domain.ErrStorage, path, err)
		}
		s.rentals[r.ID] = r
	}
	return s, nil
}

func (rec rentalRecord) toDomain() (*domain.Rental, error) {
	start, err := time.Parse(dateFormat, rec.StartDate)
	if err != nil {
		return nil, fmt.Errorf("rental %s: bad start_date %q", rec.ID, rec.StartDate)
	}
	end, err := time.Parse(dateFormat, rec.EndDate)
	if err != nil {
		return nil, fmt.Errorf("rental %s: bad end_date %q", rec.ID, rec.EndDate)
	}
	r := &domain.Rental{
		ID:         rec.ID,
		DeviceID:   rec.DeviceID,
		CustomerID: rec.CustomerID,
		Start:      start,
		End:        end,
		Address:    rec.Address,
		Notes:      rec.Notes,
		Status:     domain.RentalStatus(rec.Status),
		FeeCents:   rec.FeeCents,
	}
	if rec.CreatedOn != "" {
		created, err := time.Parse(time.RFC3339, rec.CreatedOn)
		if err != nil {
			return nil, fmt.Errorf("rental %s: bad created_on %q", rec.ID, rec.CreatedOn)
		}
		r.CreatedOn = created
	}
	return r, nil
}

func (s *Store) Devices() repository.DeviceRepository     { return deviceRepo{s} }
func (s *Store) Customers() repository.CustomerRepository { return customerRepo{s} }
func (s *Store) Rentals() repository.RentalRepository     { return rentalRepo{s} }

// Save writes the full snapshot next to the target and renames it into
// place, so readers never observe a partial write.
func (s *Store) Save(_ context.Context) error {
	doc := document{
		Devices:   make([]deviceRecord, 0, len(s.devices)),
		Customers: make([]customerRecord, 0, len(s.customers)),
		Rentals:   make([]rentalRecord, 0, len(s.rentals)),
	}
	for _, d := range s.devices {
		doc.Devices = append(doc.Devices, deviceRecord{
			ID:           d.ID,
			Name:         d.Name,
			Category:     d.Category,
			DayRateCents: d.DayRateCents,
			Status:       string(d.Status),
		})
	}
	for _, c := range s.customers {
		doc.Customers = append(doc.Customers, customerRecord{
			ID:    c.ID,
			Name:  c.Name,
			Phone: c.Phone,
			Email: c.Email,
		})
	}
	for _, r := range s.rentals {
		rec := rentalRecord{
			ID:         r.ID,
			DeviceID:   r.DeviceID,
			CustomerID: r.CustomerID,
			StartDate:  r.Start.Format(dateFormat),
			EndDate:    r.End.Format(dateFormat),
			Address:    r.Address,
			Notes:      r.Notes,
			Status:     string(r.Status),
			FeeCents:   r.FeeCents,
		}
		if !r.CreatedOn.IsZero() {
			rec.CreatedOn = r.CreatedOn.Format(time.RFC3339)
		}
		doc.Rentals = append(doc.Rentals, rec)
	}
	// Stable order keeps the file diffable.
	sort.Slice(doc.Devices, func(i, j int) bool { return doc.Devices[i].ID < doc.Devices[j].ID })
	sort.Slice(doc.Customers, func(i, j int) bool { return doc.Customers[i].ID < doc.Customers[j].ID })
	sort.Slice(doc.Rentals, func(i, j int) bool { return doc.Rentals[i].ID < doc.Rentals[j].ID })

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", domain.ErrStorage, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".rentals-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrStorage, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write temp file: %v", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close temp file: %v", domain.ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: rename into %s: %v", domain.ErrStorage, s.path, err)
	}
	return nil
}
