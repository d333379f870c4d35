package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"logistics-sim/internal/domain"
)

// VehicleRepo persists vehicles.
type VehicleRepo struct{ db *pgxpool.Pool }

// NewVehicleRepo creates a new VehicleRepo.
func NewVehicleRepo(db *pgxpool.Pool) *VehicleRepo { return &VehicleRepo{db: db} }

// ExistsForDriver reports whether the driver already owns a vehicle.
func (r *VehicleRepo) ExistsForDriver(ctx context.Context, driverID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM vehicles WHERE driver_id=$1)`, driverID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("vehicle exists for driver %d: %w", driverID, err)
	}
	return exists, nil
}

// Create inserts a vehicle at the given position and returns its id.
func (r *VehicleRepo) Create(ctx context.Context, v *domain.Vehicle) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO vehicles(driver_id, current_lat, current_lng) VALUES($1, $2, $3) RETURNING id`,
		v.DriverID, v.Lat, v.Lng).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create vehicle for driver %d: %w", v.DriverID, err)
	}
	return id, nil
}

// UpdatePosition moves the vehicle and refreshes last_update.
func (r *VehicleRepo) UpdatePosition(ctx context.Context, id int64, lat, lng float64) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE vehicles SET current_lat=$2, current_lng=$3, last_update=now() WHERE id=$1`,
		id, lat, lng)
	if err != nil {
		return fmt.Errorf("update vehicle %d position: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %d not found", id)
	}
	return nil
}
