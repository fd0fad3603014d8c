package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/repository"
)

type deviceRepository struct {
	db *sql.DB
}

func NewDeviceRepository(db *sql.DB) repository.DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Create(ctx context.Context, d *domain.Device) error {
	query := `INSERT INTO devices (id, name, category, day_rate_cents, status) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.Name, d.Category, d.DayRateCents, d.Status)
	if err != nil {
		return fmt.Errorf("%w: insert device: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *deviceRepository) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	d := &domain.Device{}
	query := `SELECT id, name, COALESCE(category, ''), day_rate_cents, status FROM devices WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Category, &d.DayRateCents, &d.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: device %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get device: %v", domain.ErrStorage, err)
	}
	return d, nil
}

func (r *deviceRepository) Update(ctx context.Context, d *domain.Device) error {
	query := `UPDATE devices SET name=$1, category=$2, day_rate_cents=$3, status=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, d.Name, d.Category, d.DayRateCents, d.Status, d.ID)
	if err != nil {
		return fmt.Errorf("%w: update device: %v", domain.ErrStorage, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: device %s", domain.ErrNotFound, d.ID)
	}
	return nil
}

func (r *deviceRepository) List(ctx context.Context, status domain.DeviceStatus) ([]domain.Device, error) {
	query := `SELECT id, name, COALESCE(category, ''), day_rate_cents, status FROM devices`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list devices: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		var d domain.Device
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.DayRateCents, &d.Status); err != nil {
			return nil, fmt.Errorf("%w: scan device: %v", domain.ErrStorage, err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list devices: %v", domain.ErrStorage, err)
	}
	return devices, nil
}
