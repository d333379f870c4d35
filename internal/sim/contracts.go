// Package sim fabricates and advances the logistics world: it seeds
// reference data, originates shipments, walks each shipment's state
// machine while moving vehicles, and multiplexes those tasks on
// independent cadences inside one sequential loop.
package sim

import (
	"context"

	"logistics-sim/internal/domain"
)

// WarehouseStore is the warehouse access the simulation needs.
type WarehouseStore interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]domain.Warehouse, error)
	Random(ctx context.Context) (*domain.Warehouse, error)
	Create(ctx context.Context, w *domain.Warehouse) (int64, error)
}

// UserStore is the user access the simulation needs.
type UserStore interface {
	CountByRole(ctx context.Context, role domain.Role) (int, error)
	Drivers(ctx context.Context) ([]domain.User, error)
	RandomIDsByRole(ctx context.Context, role domain.Role, n int) ([]int64, error)
	Create(ctx context.Context, u *domain.User) (int64, error)
}

// VehicleStore is the vehicle access the simulation needs.
type VehicleStore interface {
	ExistsForDriver(ctx context.Context, driverID int64) (bool, error)
	Create(ctx context.Context, v *domain.Vehicle) (int64, error)
	UpdatePosition(ctx context.Context, id int64, lat, lng float64) error
}

// ShipmentStore is the shipment access the simulation needs.
type ShipmentStore interface {
	CountOpen(ctx context.Context) (int, error)
	Create(ctx context.Context, s *domain.Shipment) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ShipmentStatus) error
	LoadActive(ctx context.Context) ([]domain.ActiveShipment, error)
}

// EventStore appends shipment trace events.
type EventStore interface {
	Append(ctx context.Context, shipmentID int64, typ domain.EventType, lat, lng float64) error
}
