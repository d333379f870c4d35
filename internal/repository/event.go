package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"logistics-sim/internal/domain"
)

// EventRepo appends to the shipment_events trace. Write-only from the
// engine's point of view.
type EventRepo struct{ db *pgxpool.Pool }

// NewEventRepo creates a new EventRepo.
func NewEventRepo(db *pgxpool.Pool) *EventRepo { return &EventRepo{db: db} }

// Append inserts one event row.
func (r *EventRepo) Append(ctx context.Context, shipmentID int64, typ domain.EventType, lat, lng float64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO shipment_events(shipment_id, status, latitude, longitude) VALUES($1, $2, $3, $4)`,
		shipmentID, string(typ), lat, lng)
	if err != nil {
		return fmt.Errorf("append %s event for shipment %d: %w", typ, shipmentID, err)
	}
	return nil
}
