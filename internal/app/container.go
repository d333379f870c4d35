package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"logistics-sim/internal/config"
	"logistics-sim/internal/fake"
	"logistics-sim/internal/http/opsserver"
	"logistics-sim/internal/logx"
	"logistics-sim/internal/metrics"
	"logistics-sim/internal/repository"
	"logistics-sim/internal/sim"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerSim(container); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if err := registerOps(container); err != nil {
		return nil, fmt.Errorf("ops: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
		func() *prometheus.Registry { return prometheus.NewRegistry() },
		func(reg *prometheus.Registry) *metrics.Metrics { return metrics.New(reg) },
		func(cfg *config.Config) fake.Source { return fake.New(cfg.Sim.RandomSeed) },
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerSim(container *dig.Container) error {
	return provideAll(container,
		repository.NewWarehouseRepo,
		repository.NewUserRepo,
		repository.NewVehicleRepo,
		repository.NewShipmentRepo,
		repository.NewEventRepo,
		func(r *repository.WarehouseRepo) sim.WarehouseStore { return r },
		func(r *repository.UserRepo) sim.UserStore { return r },
		func(r *repository.VehicleRepo) sim.VehicleStore { return r },
		func(r *repository.ShipmentRepo) sim.ShipmentStore { return r },
		func(r *repository.EventRepo) sim.EventStore { return r },
		func(
			cfg *config.Config,
			warehouses sim.WarehouseStore,
			users sim.UserStore,
			vehicles sim.VehicleStore,
			src fake.Source,
			logger logx.Logger,
			m *metrics.Metrics,
		) *sim.Seeder {
			return sim.NewSeeder(warehouses, users, vehicles, src, logger, m,
				cfg.Sim.TargetCustomers, cfg.Sim.TargetDrivers, cfg.Sim.TargetManagers)
		},
		func(
			cfg *config.Config,
			shipments sim.ShipmentStore,
			users sim.UserStore,
			warehouses sim.WarehouseStore,
			src fake.Source,
			logger logx.Logger,
			m *metrics.Metrics,
		) *sim.Originator {
			return sim.NewOriginator(shipments, users, warehouses, src, logger, m,
				cfg.Sim.MaxOpenShipments, cfg.Sim.MaxShipmentsPerTick)
		},
		func(
			cfg *config.Config,
			shipments sim.ShipmentStore,
			vehicles sim.VehicleStore,
			events sim.EventStore,
			src fake.Source,
			logger logx.Logger,
			m *metrics.Metrics,
		) *sim.Advancer {
			return sim.NewAdvancer(shipments, vehicles, events, src, logger, m,
				cfg.Sim.MinStepMeters, cfg.Sim.MaxStepMeters, cfg.Sim.DeliveryFailRate)
		},
		newLoop,
	)
}

func newLoop(
	cfg *config.Config,
	seeder *sim.Seeder,
	originator *sim.Originator,
	advancer *sim.Advancer,
	logger logx.Logger,
	m *metrics.Metrics,
) *sim.Loop {
	return sim.NewLoop(cfg.Sim.TickInterval, logger, m,
		sim.Task{Name: "ensure_warehouses", Interval: cfg.Sim.UserSeedInterval, Run: seeder.EnsureWarehouses},
		sim.Task{Name: "ensure_users", Interval: cfg.Sim.UserSeedInterval, Run: seeder.EnsureUsers},
		sim.Task{Name: "ensure_vehicles", Interval: cfg.Sim.VehicleEnsureInterval, Run: seeder.EnsureVehiclesForDrivers},
		sim.Task{Name: "create_shipments", Interval: cfg.Sim.ShipmentCreateInterval, Run: originator.CreateShipmentsIfNeeded},
		sim.Task{Name: "advance_shipments", Interval: cfg.Sim.AdvanceInterval, Run: advancer.AdvanceShipmentsAndMoveVehicles},
	)
}

func registerOps(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, pool *pgxpool.Pool, reg *prometheus.Registry) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Ops.Port),
			Handler:           opsserver.Handler(pool, reg),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container, serverProvider)
}
