package sim

import (
	"context"
	"errors"
	"fmt"

	"logistics-sim/internal/apperr"
	"logistics-sim/internal/domain"
	"logistics-sim/internal/fake"
	"logistics-sim/internal/logx"
	"logistics-sim/internal/metrics"
)

// seedHubs is the fixed warehouse seed list, inserted once when the
// store has no warehouses at all.
var seedHubs = []domain.Warehouse{
	{Name: "Delhi Hub", Lat: 28.6139, Lng: 77.2090},
	{Name: "Mumbai Hub", Lat: 19.0760, Lng: 72.8777},
	{Name: "Bengaluru Hub", Lat: 12.9716, Lng: 77.5946},
	{Name: "Kolkata Hub", Lat: 22.5726, Lng: 88.3639},
}

// maxEmailRetries caps duplicate-email regeneration per user slot.
const maxEmailRetries = 25

// Seeder keeps the baseline world populated: warehouses, per-role user
// targets, and one vehicle per driver. Insert-only and idempotent.
type Seeder struct {
	warehouses WarehouseStore
	users      UserStore
	vehicles   VehicleStore
	src        fake.Source
	log        logx.Logger
	metrics    *metrics.Metrics

	targetCustomers int
	targetDrivers   int
	targetManagers  int
}

// NewSeeder creates a new Seeder.
func NewSeeder(
	warehouses WarehouseStore,
	users UserStore,
	vehicles VehicleStore,
	src fake.Source,
	log logx.Logger,
	m *metrics.Metrics,
	targetCustomers, targetDrivers, targetManagers int,
) *Seeder {
	return &Seeder{
		warehouses:      warehouses,
		users:           users,
		vehicles:        vehicles,
		src:             src,
		log:             log,
		metrics:         m,
		targetCustomers: targetCustomers,
		targetDrivers:   targetDrivers,
		targetManagers:  targetManagers,
	}
}

// EnsureWarehouses inserts the hub seed list when the store holds no
// warehouses. A single count makes the repeat invocation O(1).
func (s *Seeder) EnsureWarehouses(ctx context.Context) error {
	count, err := s.warehouses.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, h := range seedHubs {
		hub := h
		if _, err := s.warehouses.Create(ctx, &hub); err != nil {
			return err
		}
	}
	s.log.Info("seeded warehouses", logx.Int("count", len(seedHubs)))
	return nil
}

// EnsureUsers tops up each role to its configured target. A duplicate
// email retries the same slot with a fresh candidate instead of
// aborting or double-counting.
func (s *Seeder) EnsureUsers(ctx context.Context) error {
	targets := []struct {
		role domain.Role
		want int
	}{
		{domain.RoleCustomer, s.targetCustomers},
		{domain.RoleDriver, s.targetDrivers},
		{domain.RoleManager, s.targetManagers},
	}

	for _, t := range targets {
		have, err := s.users.CountByRole(ctx, t.role)
		if err != nil {
			return err
		}
		toCreate := t.want - have
		if toCreate <= 0 {
			continue
		}

		created := 0
		retries := 0
		for created < toCreate {
			u := &domain.User{
				Name:         s.src.FullName(),
				Email:        s.src.Email(),
				PasswordHash: s.src.Hash(),
				Role:         t.role,
			}
			_, err := s.users.Create(ctx, u)
			if errors.Is(err, apperr.Conflict) {
				retries++
				s.metrics.SeedRetries.Inc()
				if retries > maxEmailRetries {
					return fmt.Errorf("seed %s users: %d email conflicts in a row", t.role, retries)
				}
				continue
			}
			if err != nil {
				return err
			}
			created++
			retries = 0
		}
		s.log.Info("seeded users",
			logx.String("role", string(t.role)),
			logx.Int("created", created),
		)
	}
	return nil
}

// EnsureVehiclesForDrivers gives every vehicle-less driver one vehicle
// parked at a random warehouse.
func (s *Seeder) EnsureVehiclesForDrivers(ctx context.Context) error {
	drivers, err := s.users.Drivers(ctx)
	if err != nil {
		return err
	}

	for _, d := range drivers {
		has, err := s.vehicles.ExistsForDriver(ctx, d.ID)
		if err != nil {
			return err
		}
		if has {
			continue
		}

		hub, err := s.warehouses.Random(ctx)
		if err != nil {
			return err
		}
		if hub == nil {
			// No warehouses yet; not ready rather than an error.
			return nil
		}

		v := &domain.Vehicle{DriverID: d.ID, Lat: hub.Lat, Lng: hub.Lng}
		if _, err := s.vehicles.Create(ctx, v); err != nil {
			return err
		}
		s.log.Info("created vehicle",
			logx.Int64("driver_id", d.ID),
			logx.String("hub", hub.Name),
		)
	}
	return nil
}
