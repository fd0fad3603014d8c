package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/logger"
	"device-rental-manager/internal/repository"
)

type deviceService struct {
	store repository.Store
}

func NewDeviceService(store repository.Store) DeviceService {
	return &deviceService{store: store}
}

func (s *deviceService) AddDevice(ctx context.Context, name, category string, dayRateCents int64) (*domain.Device, error) {
	if name == "" {
		return nil, fmt.Errorf("device name is required")
	}
	if dayRateCents < 0 {
		return nil, fmt.Errorf("day rate must not be negative")
	}
	device := &domain.Device{
		ID:           uuid.NewString(),
		Name:         name,
		Category:     category,
		DayRateCents: dayRateCents,
		Status:       domain.DeviceStatusAvailable,
	}
	if err := s.store.Devices().Create(ctx, device); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}
	logger.Info("device added", "device_id", device.ID, "name", device.Name)
	return device, nil
}

func (s *deviceService) SetMaintenance(ctx context.Context, deviceID string, on bool) (*domain.Device, error) {
	device, err := s.store.Devices().GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if on {
		device.Status = domain.DeviceStatusMaintenance
	} else {
		if device.Status != domain.DeviceStatusMaintenance {
			return nil, fmt.Errorf("%w: device %q is not in maintenance", domain.ErrInvalidState, device.Name)
		}
		occupying, err := s.store.Rentals().ListByDevice(ctx, device.ID, domain.RentalStatusActive)
		if err != nil {
			return nil, err
		}
		// Leaving maintenance: fall back to the derived projection.
		device.Status = domain.DeviceStatusAvailable
		device.Status = deriveDeviceStatus(device.Status, occupying, time.Now())
	}
	if err := s.store.Devices().Update(ctx, device); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}
	logger.Info("device maintenance toggled", "device_id", device.ID, "status", device.Status)
	return device, nil
}

func (s *deviceService) ListDevices(ctx context.Context, status domain.DeviceStatus) ([]domain.Device, error) {
	return s.store.Devices().List(ctx, status)
}
