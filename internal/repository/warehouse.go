package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"logistics-sim/internal/domain"
)

// WarehouseRepo persists warehouses.
type WarehouseRepo struct{ db *pgxpool.Pool }

// NewWarehouseRepo creates a new WarehouseRepo.
func NewWarehouseRepo(db *pgxpool.Pool) *WarehouseRepo { return &WarehouseRepo{db: db} }

// Count returns the number of warehouses.
func (r *WarehouseRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM warehouses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count warehouses: %w", err)
	}
	return n, nil
}

// List returns all warehouses ordered by id.
func (r *WarehouseRepo) List(ctx context.Context) ([]domain.Warehouse, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, latitude, longitude FROM warehouses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []domain.Warehouse
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Lat, &w.Lng); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Random returns a uniformly random warehouse, or nil when none exist.
func (r *WarehouseRepo) Random(ctx context.Context) (*domain.Warehouse, error) {
	var w domain.Warehouse
	err := r.db.QueryRow(ctx,
		`SELECT id, name, latitude, longitude FROM warehouses ORDER BY random() LIMIT 1`,
	).Scan(&w.ID, &w.Name, &w.Lat, &w.Lng)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("random warehouse: %w", err)
	}
	return &w, nil
}

// Create inserts a warehouse and returns its id.
func (r *WarehouseRepo) Create(ctx context.Context, w *domain.Warehouse) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO warehouses(name, latitude, longitude) VALUES($1, $2, $3) RETURNING id`,
		w.Name, w.Lat, w.Lng).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create warehouse %q: %w", w.Name, err)
	}
	return id, nil
}
