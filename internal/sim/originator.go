package sim

import (
	"context"
	"errors"
	"fmt"

	"logistics-sim/internal/apperr"
	"logistics-sim/internal/domain"
	"logistics-sim/internal/fake"
	"logistics-sim/internal/geo"
	"logistics-sim/internal/logx"
	"logistics-sim/internal/metrics"
)

const (
	trackingPrefix       = "TRK-"
	trackingSuffixLen    = 10
	maxTrackingRetries   = 5
	minDestinationMeters = 5000
	maxDestinationMeters = 20000
)

// Originator creates new pending shipments while the open-shipment count
// sits below the configured ceiling.
type Originator struct {
	shipments  ShipmentStore
	users      UserStore
	warehouses WarehouseStore
	src        fake.Source
	log        logx.Logger
	metrics    *metrics.Metrics

	maxOpen    int
	maxPerTick int
}

// NewOriginator creates a new Originator.
func NewOriginator(
	shipments ShipmentStore,
	users UserStore,
	warehouses WarehouseStore,
	src fake.Source,
	log logx.Logger,
	m *metrics.Metrics,
	maxOpen, maxPerTick int,
) *Originator {
	return &Originator{
		shipments:  shipments,
		users:      users,
		warehouses: warehouses,
		src:        src,
		log:        log,
		metrics:    m,
		maxOpen:    maxOpen,
		maxPerTick: maxPerTick,
	}
}

// CreateShipmentsIfNeeded tops up the open-shipment pool. Missing
// customers, drivers or warehouses make this a silent no-op: the world
// is still being seeded.
func (o *Originator) CreateShipmentsIfNeeded(ctx context.Context) error {
	open, err := o.shipments.CountOpen(ctx)
	if err != nil {
		return err
	}
	if open >= o.maxOpen {
		return nil
	}

	createNow := o.maxPerTick
	if room := o.maxOpen - open; room < createNow {
		createNow = room
	}

	// Oversample candidate pools; the same customer or driver may serve
	// several of this batch's shipments.
	customers, err := o.users.RandomIDsByRole(ctx, domain.RoleCustomer, createNow*2)
	if err != nil {
		return err
	}
	drivers, err := o.users.RandomIDsByRole(ctx, domain.RoleDriver, createNow*2)
	if err != nil {
		return err
	}
	hubs, err := o.warehouses.List(ctx)
	if err != nil {
		return err
	}
	if len(customers) == 0 || len(drivers) == 0 || len(hubs) == 0 {
		return nil
	}

	for i := 0; i < createNow; i++ {
		hub := hubs[o.src.IntN(len(hubs))]
		destLat, destLng := o.makeDestination(hub)

		shipment := &domain.Shipment{
			DriverID:           drivers[o.src.IntN(len(drivers))],
			OriginWarehouseID:  hub.ID,
			DestinationAddress: o.src.Address(),
			DestLat:            destLat,
			DestLng:            destLng,
			CustomerID:         customers[o.src.IntN(len(customers))],
			Status:             domain.StatusPending,
		}

		if err := o.createWithFreshTracking(ctx, shipment); err != nil {
			return err
		}
		o.metrics.ShipmentsCreated.Inc()
	}

	o.log.Info("created shipments", logx.Int("count", createNow), logx.Int("open_before", open))
	return nil
}

// createWithFreshTracking retries tracking-number generation on a
// uniqueness conflict, mirroring the seeder's email handling.
func (o *Originator) createWithFreshTracking(ctx context.Context, s *domain.Shipment) error {
	for attempt := 0; attempt < maxTrackingRetries; attempt++ {
		s.TrackingNumber = trackingPrefix + o.src.AlphaNumeric(trackingSuffixLen)
		_, err := o.shipments.Create(ctx, s)
		if errors.Is(err, apperr.Conflict) {
			continue
		}
		return err
	}
	return fmt.Errorf("create shipment: %d tracking number collisions in a row", maxTrackingRetries)
}

// makeDestination picks a pseudo-destination 5-20 km from the hub at a
// random bearing. No event is written at creation; the first event comes
// from the advancer on pickup.
func (o *Originator) makeDestination(hub domain.Warehouse) (float64, float64) {
	meters := o.src.Between(minDestinationMeters, maxDestinationMeters)
	bearing := o.src.Between(0, 360)
	return geo.Offset(hub.Lat, hub.Lng, meters, bearing)
}
