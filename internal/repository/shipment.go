package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"logistics-sim/internal/apperr"
	"logistics-sim/internal/domain"
)

// ShipmentRepo persists shipments.
type ShipmentRepo struct{ db *pgxpool.Pool }

// NewShipmentRepo creates a new ShipmentRepo.
func NewShipmentRepo(db *pgxpool.Pool) *ShipmentRepo { return &ShipmentRepo{db: db} }

// CountOpen returns the number of pending or in_transit shipments.
func (r *ShipmentRepo) CountOpen(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM shipments WHERE status IN ('pending', 'in_transit')`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open shipments: %w", err)
	}
	return n, nil
}

// Create inserts a shipment and returns its id. A duplicate tracking
// number maps to apperr.Conflict so the originator can retry.
func (r *ShipmentRepo) Create(ctx context.Context, s *domain.Shipment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO shipments(driver_id, tracking_number, origin_warehouse_id,
		                      destination_address, destination_latitude, destination_longitude,
		                      customer_id, status)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, s.DriverID, s.TrackingNumber, s.OriginWarehouseID,
		s.DestinationAddress, s.DestLat, s.DestLng,
		s.CustomerID, string(s.Status)).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.Conflict
		}
		return 0, fmt.Errorf("create shipment %s: %w", s.TrackingNumber, err)
	}
	return id, nil
}

// UpdateStatus sets the shipment status and refreshes updated_at.
func (r *ShipmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.ShipmentStatus) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE shipments SET status=$2, updated_at=now() WHERE id=$1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update shipment %d status: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("shipment %d not found", id)
	}
	return nil
}

// LoadActive returns every open shipment joined with its origin warehouse
// and its driver's vehicle, ordered by shipment id so same-driver
// processing order stays deterministic.
func (r *ShipmentRepo) LoadActive(ctx context.Context) ([]domain.ActiveShipment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.driver_id, s.status,
		       s.destination_latitude, s.destination_longitude,
		       w.latitude, w.longitude,
		       v.id, v.current_lat, v.current_lng
		FROM shipments s
		JOIN warehouses w ON w.id = s.origin_warehouse_id
		JOIN vehicles v   ON v.driver_id = s.driver_id
		WHERE s.status IN ('pending', 'in_transit')
		ORDER BY s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("load active shipments: %w", err)
	}
	defer rows.Close()

	var out []domain.ActiveShipment
	for rows.Next() {
		var a domain.ActiveShipment
		if err := rows.Scan(&a.ShipmentID, &a.DriverID, &a.Status,
			&a.DestLat, &a.DestLng,
			&a.OriginLat, &a.OriginLng,
			&a.VehicleID, &a.VehicleLat, &a.VehicleLng); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
