package sim

import (
	"context"

	"logistics-sim/internal/domain"
	"logistics-sim/internal/fake"
	"logistics-sim/internal/geo"
	"logistics-sim/internal/logx"
	"logistics-sim/internal/metrics"
)

// Advancer drives the shipment state machine: pickup, bounded movement
// steps toward the destination, and the terminal delivered or cancelled
// outcome on arrival.
type Advancer struct {
	shipments ShipmentStore
	vehicles  VehicleStore
	events    EventStore
	src       fake.Source
	log       logx.Logger
	metrics   *metrics.Metrics

	minStepMeters float64
	maxStepMeters float64
	failRate      float64
}

// NewAdvancer creates a new Advancer.
func NewAdvancer(
	shipments ShipmentStore,
	vehicles VehicleStore,
	events EventStore,
	src fake.Source,
	log logx.Logger,
	m *metrics.Metrics,
	minStepMeters, maxStepMeters, failRate float64,
) *Advancer {
	return &Advancer{
		shipments:     shipments,
		vehicles:      vehicles,
		events:        events,
		src:           src,
		log:           log,
		metrics:       m,
		minStepMeters: minStepMeters,
		maxStepMeters: maxStepMeters,
		failRate:      failRate,
	}
}

// driverGroup is one driver's open shipments and the single shared
// vehicle position they all displace this tick.
type driverGroup struct {
	vehicleID int64
	lat       float64
	lng       float64
	shipments []domain.ActiveShipment
}

// AdvanceShipmentsAndMoveVehicles runs one movement tick. A persistence
// error inside one driver group is logged and skips to the next group;
// a partially advanced tick converges on the following one.
func (a *Advancer) AdvanceShipmentsAndMoveVehicles(ctx context.Context) error {
	active, err := a.shipments.LoadActive(ctx)
	if err != nil {
		return err
	}

	groups, order := groupByDriver(active)
	for _, driverID := range order {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		g := groups[driverID]
		if err := a.advanceDriver(ctx, g); err != nil {
			a.metrics.TaskErrors.WithLabelValues("advance_driver").Inc()
			a.log.Error("driver group advance failed",
				logx.Int64("driver_id", driverID),
				logx.Any("err", err),
			)
		}
	}
	return nil
}

// groupByDriver buckets active rows per driver, keeping both the load
// order of shipments inside each group and the first-seen driver order.
func groupByDriver(active []domain.ActiveShipment) (map[int64]*driverGroup, []int64) {
	groups := make(map[int64]*driverGroup)
	var order []int64
	for _, row := range active {
		g, ok := groups[row.DriverID]
		if !ok {
			g = &driverGroup{
				vehicleID: row.VehicleID,
				lat:       row.VehicleLat,
				lng:       row.VehicleLng,
			}
			groups[row.DriverID] = g
			order = append(order, row.DriverID)
		}
		g.shipments = append(g.shipments, row)
	}
	return groups, order
}

// advanceDriver walks every shipment of one driver in load order. Each
// shipment's step displaces the one shared vehicle position, so later
// shipments start from where the previous one left the vehicle.
func (a *Advancer) advanceDriver(ctx context.Context, g *driverGroup) error {
	for _, sh := range g.shipments {
		if sh.Status == domain.StatusPending {
			if err := a.events.Append(ctx, sh.ShipmentID, domain.EventPickedUp, g.lat, g.lng); err != nil {
				return err
			}
			if err := a.shipments.UpdateStatus(ctx, sh.ShipmentID, domain.StatusInTransit); err != nil {
				return err
			}
			sh.Status = domain.StatusInTransit
		}

		step := a.src.Between(a.minStepMeters, a.maxStepMeters)
		nlat, nlng, arrived := geo.StepTowards(g.lat, g.lng, sh.DestLat, sh.DestLng, step)
		g.lat, g.lng = nlat, nlng

		if err := a.vehicles.UpdatePosition(ctx, g.vehicleID, nlat, nlng); err != nil {
			return err
		}
		a.metrics.MovementSteps.Inc()

		if err := a.events.Append(ctx, sh.ShipmentID, domain.EventInTransit, nlat, nlng); err != nil {
			return err
		}

		if !arrived {
			continue
		}
		if err := a.resolveArrival(ctx, sh.ShipmentID, nlat, nlng); err != nil {
			return err
		}
	}
	return nil
}

// resolveArrival draws the delivery outcome and closes the shipment.
func (a *Advancer) resolveArrival(ctx context.Context, shipmentID int64, lat, lng float64) error {
	if a.src.Float64() < a.failRate {
		if err := a.events.Append(ctx, shipmentID, domain.EventFailed, lat, lng); err != nil {
			return err
		}
		if err := a.shipments.UpdateStatus(ctx, shipmentID, domain.StatusCancelled); err != nil {
			return err
		}
		a.metrics.ShipmentsFailed.Inc()
		a.log.Info("shipment failed", logx.Int64("shipment_id", shipmentID))
		return nil
	}

	if err := a.events.Append(ctx, shipmentID, domain.EventDelivered, lat, lng); err != nil {
		return err
	}
	if err := a.shipments.UpdateStatus(ctx, shipmentID, domain.StatusDelivered); err != nil {
		return err
	}
	a.metrics.ShipmentsDelivered.Inc()
	a.log.Info("shipment delivered", logx.Int64("shipment_id", shipmentID))
	return nil
}
