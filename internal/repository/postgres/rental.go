package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, device_id, customer_id, start_date, end_date, COALESCE(address, ''), COALESCE(notes, ''), status, fee_cents, created_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (id, device_id, customer_id, start_date, end_date, address, notes, status, fee_cents, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, rt.ID, rt.DeviceID, rt.CustomerID, rt.Start, rt.End,
		rt.Address, rt.Notes, rt.Status, feeArg(rt), rt.CreatedOn)
	if err != nil {
		return fmt.Errorf("%w: insert rental: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)
	rt, err := scanRental(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rental %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get rental: %v", domain.ErrStorage, err)
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET end_date=$1, address=$2, notes=$3, status=$4, fee_cents=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, rt.End, rt.Address, rt.Notes, rt.Status, feeArg(rt), rt.ID)
	if err != nil {
		return fmt.Errorf("%w: update rental: %v", domain.ErrStorage, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: rental %s", domain.ErrNotFound, rt.ID)
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY start_date DESC`
	return r.queryRentals(ctx, query, args...)
}

func (r *rentalRepository) ListByDevice(ctx context.Context, deviceID string, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE device_id = $1`
	args := []any{deviceID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY start_date`
	return r.queryRentals(ctx, query, args...)
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list rentals: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan rental: %v", domain.ErrStorage, err)
		}
		rentals = append(rentals, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list rentals: %v", domain.ErrStorage, err)
	}
	return rentals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var fee sql.NullInt64
	err := row.Scan(&rt.ID, &rt.DeviceID, &rt.CustomerID, &rt.Start, &rt.End,
		&rt.Address, &rt.Notes, &rt.Status, &fee, &rt.CreatedOn)
	if err != nil {
		return nil, err
	}
	if fee.Valid {
		rt.FeeCents = &fee.Int64
	}
	return rt, nil
}

func feeArg(rt *domain.Rental) any {
	if rt.FeeCents == nil {
		return nil
	}
	return *rt.FeeCents
}
