package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/logger"
	"device-rental-manager/internal/repository"
)

type customerService struct {
	store repository.Store
}

func NewCustomerService(store repository.Store) CustomerService {
	return &customerService{store: store}
}

func (s *customerService) AddCustomer(ctx context.Context, name, phone, email string) (*domain.Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	customer := &domain.Customer{
		ID:    uuid.NewString(),
		Name:  name,
		Phone: phone,
		Email: email,
	}
	if err := s.store.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}
	logger.Info("customer added", "customer_id", customer.ID, "name", customer.Name)
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.store.Customers().List(ctx)
}
