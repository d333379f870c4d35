package sim

import (
	"context"
	"fmt"
	"time"

	"logistics-sim/internal/apperr"
	"logistics-sim/internal/domain"
	"logistics-sim/internal/fake"
	"logistics-sim/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// memWorld is an in-memory store implementing every sim contract, so
// the tasks can be exercised end to end without Postgres.
type memWorld struct {
	warehouses []domain.Warehouse
	nextWhID   int64

	users      []domain.User
	nextUserID int64
	emails     map[string]bool
	// userCreateErr, when set, fails the next user insert.
	userCreateErr error

	vehicles      []domain.Vehicle
	nextVehicleID int64
	updatePosErr  func(id int64) error

	shipments      []domain.Shipment
	nextShipmentID int64
	trackings      map[string]bool
	statusHistory  map[int64][]domain.ShipmentStatus
	updateStatErr  func(id int64) error

	events    []domain.ShipmentEvent
	appendErr func(shipmentID int64, typ domain.EventType) error
}

func newMemWorld() *memWorld {
	return &memWorld{
		emails:        map[string]bool{},
		trackings:     map[string]bool{},
		statusHistory: map[int64][]domain.ShipmentStatus{},
	}
}

// --- WarehouseStore ---

func (m *memWorld) Count(context.Context) (int, error) { return len(m.warehouses), nil }

func (m *memWorld) List(context.Context) ([]domain.Warehouse, error) {
	return append([]domain.Warehouse(nil), m.warehouses...), nil
}

func (m *memWorld) Random(context.Context) (*domain.Warehouse, error) {
	if len(m.warehouses) == 0 {
		return nil, nil
	}
	w := m.warehouses[0]
	return &w, nil
}

func (m *memWorld) Create(_ context.Context, w *domain.Warehouse) (int64, error) {
	m.nextWhID++
	w.ID = m.nextWhID
	m.warehouses = append(m.warehouses, *w)
	return w.ID, nil
}

// --- UserStore ---

func (m *memWorld) CountByRole(_ context.Context, role domain.Role) (int, error) {
	n := 0
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *memWorld) Drivers(context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if u.Role == domain.RoleDriver {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memWorld) RandomIDsByRole(_ context.Context, role domain.Role, n int) ([]int64, error) {
	var out []int64
	for _, u := range m.users {
		if u.Role == role && len(out) < n {
			out = append(out, u.ID)
		}
	}
	return out, nil
}

func (m *memWorld) CreateUser(_ context.Context, u *domain.User) (int64, error) {
	if m.userCreateErr != nil {
		err := m.userCreateErr
		m.userCreateErr = nil
		return 0, err
	}
	if m.emails[u.Email] {
		return 0, apperr.Conflict
	}
	m.nextUserID++
	u.ID = m.nextUserID
	m.emails[u.Email] = true
	m.users = append(m.users, *u)
	return u.ID, nil
}

// --- VehicleStore ---

func (m *memWorld) ExistsForDriver(_ context.Context, driverID int64) (bool, error) {
	for _, v := range m.vehicles {
		if v.DriverID == driverID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memWorld) CreateVehicle(_ context.Context, v *domain.Vehicle) (int64, error) {
	m.nextVehicleID++
	v.ID = m.nextVehicleID
	m.vehicles = append(m.vehicles, *v)
	return v.ID, nil
}

func (m *memWorld) UpdatePosition(_ context.Context, id int64, lat, lng float64) error {
	if m.updatePosErr != nil {
		if err := m.updatePosErr(id); err != nil {
			return err
		}
	}
	for i := range m.vehicles {
		if m.vehicles[i].ID == id {
			m.vehicles[i].Lat = lat
			m.vehicles[i].Lng = lng
			m.vehicles[i].LastUpdate = time.Now()
			return nil
		}
	}
	return fmt.Errorf("vehicle %d not found", id)
}

// --- ShipmentStore ---

func (m *memWorld) CountOpen(context.Context) (int, error) {
	n := 0
	for _, s := range m.shipments {
		if !s.Status.Terminal() {
			n++
		}
	}
	return n, nil
}

func (m *memWorld) CreateShipment(_ context.Context, s *domain.Shipment) (int64, error) {
	if m.trackings[s.TrackingNumber] {
		return 0, apperr.Conflict
	}
	m.nextShipmentID++
	s.ID = m.nextShipmentID
	m.trackings[s.TrackingNumber] = true
	m.shipments = append(m.shipments, *s)
	m.statusHistory[s.ID] = append(m.statusHistory[s.ID], s.Status)
	return s.ID, nil
}

func (m *memWorld) UpdateStatus(_ context.Context, id int64, status domain.ShipmentStatus) error {
	if m.updateStatErr != nil {
		if err := m.updateStatErr(id); err != nil {
			return err
		}
	}
	for i := range m.shipments {
		if m.shipments[i].ID == id {
			m.shipments[i].Status = status
			m.shipments[i].UpdatedAt = time.Now()
			m.statusHistory[id] = append(m.statusHistory[id], status)
			return nil
		}
	}
	return fmt.Errorf("shipment %d not found", id)
}

func (m *memWorld) LoadActive(context.Context) ([]domain.ActiveShipment, error) {
	var out []domain.ActiveShipment
	for _, s := range m.shipments {
		if s.Status.Terminal() {
			continue
		}
		var wh *domain.Warehouse
		for i := range m.warehouses {
			if m.warehouses[i].ID == s.OriginWarehouseID {
				wh = &m.warehouses[i]
			}
		}
		var veh *domain.Vehicle
		for i := range m.vehicles {
			if m.vehicles[i].DriverID == s.DriverID {
				veh = &m.vehicles[i]
			}
		}
		if wh == nil || veh == nil {
			continue
		}
		out = append(out, domain.ActiveShipment{
			ShipmentID: s.ID,
			DriverID:   s.DriverID,
			Status:     s.Status,
			DestLat:    s.DestLat,
			DestLng:    s.DestLng,
			OriginLat:  wh.Lat,
			OriginLng:  wh.Lng,
			VehicleID:  veh.ID,
			VehicleLat: veh.Lat,
			VehicleLng: veh.Lng,
		})
	}
	return out, nil
}

// --- EventStore ---

func (m *memWorld) Append(_ context.Context, shipmentID int64, typ domain.EventType, lat, lng float64) error {
	if m.appendErr != nil {
		if err := m.appendErr(shipmentID, typ); err != nil {
			return err
		}
	}
	m.events = append(m.events, domain.ShipmentEvent{
		ID:         int64(len(m.events) + 1),
		ShipmentID: shipmentID,
		Type:       typ,
		Lat:        lat,
		Lng:        lng,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (m *memWorld) eventsFor(shipmentID int64) []domain.ShipmentEvent {
	var out []domain.ShipmentEvent
	for _, e := range m.events {
		if e.ShipmentID == shipmentID {
			out = append(out, e)
		}
	}
	return out
}

func (m *memWorld) shipment(id int64) *domain.Shipment {
	for i := range m.shipments {
		if m.shipments[i].ID == id {
			return &m.shipments[i]
		}
	}
	return nil
}

// userStoreAdapter and friends fan one memWorld out over the contract
// method names that collide on Create.
type userStoreAdapter struct{ w *memWorld }

func (a userStoreAdapter) CountByRole(ctx context.Context, r domain.Role) (int, error) {
	return a.w.CountByRole(ctx, r)
}
func (a userStoreAdapter) Drivers(ctx context.Context) ([]domain.User, error) {
	return a.w.Drivers(ctx)
}
func (a userStoreAdapter) RandomIDsByRole(ctx context.Context, r domain.Role, n int) ([]int64, error) {
	return a.w.RandomIDsByRole(ctx, r, n)
}
func (a userStoreAdapter) Create(ctx context.Context, u *domain.User) (int64, error) {
	return a.w.CreateUser(ctx, u)
}

type vehicleStoreAdapter struct{ w *memWorld }

func (a vehicleStoreAdapter) ExistsForDriver(ctx context.Context, id int64) (bool, error) {
	return a.w.ExistsForDriver(ctx, id)
}
func (a vehicleStoreAdapter) Create(ctx context.Context, v *domain.Vehicle) (int64, error) {
	return a.w.CreateVehicle(ctx, v)
}
func (a vehicleStoreAdapter) UpdatePosition(ctx context.Context, id int64, lat, lng float64) error {
	return a.w.UpdatePosition(ctx, id, lat, lng)
}

type shipmentStoreAdapter struct{ w *memWorld }

func (a shipmentStoreAdapter) CountOpen(ctx context.Context) (int, error) {
	return a.w.CountOpen(ctx)
}
func (a shipmentStoreAdapter) Create(ctx context.Context, s *domain.Shipment) (int64, error) {
	return a.w.CreateShipment(ctx, s)
}
func (a shipmentStoreAdapter) UpdateStatus(ctx context.Context, id int64, st domain.ShipmentStatus) error {
	return a.w.UpdateStatus(ctx, id, st)
}
func (a shipmentStoreAdapter) LoadActive(ctx context.Context) ([]domain.ActiveShipment, error) {
	return a.w.LoadActive(ctx)
}

var (
	_ WarehouseStore = (*memWorld)(nil)
	_ EventStore     = (*memWorld)(nil)
	_ UserStore      = userStoreAdapter{}
	_ VehicleStore   = vehicleStoreAdapter{}
	_ ShipmentStore  = shipmentStoreAdapter{}
)

// stubSource is a deterministic fake.Source for tests. Zero value picks
// the first candidate everywhere and moves by the minimum step.
type stubSource struct {
	intN    func(n int) int
	floats  []float64 // consumed by Float64; empty falls back to 0.5
	between func(min, max float64) float64
	emails  []string // consumed by Email; empty generates unique ones
	seq     int
}

func (s *stubSource) IntN(n int) int {
	if s.intN != nil {
		return s.intN(n)
	}
	return 0
}

func (s *stubSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *stubSource) Between(min, max float64) float64 {
	if s.between != nil {
		return s.between(min, max)
	}
	return min
}

func (s *stubSource) FullName() string {
	s.seq++
	return fmt.Sprintf("Person %d", s.seq)
}

func (s *stubSource) Email() string {
	if len(s.emails) > 0 {
		e := s.emails[0]
		s.emails = s.emails[1:]
		return e
	}
	s.seq++
	return fmt.Sprintf("person%d@example.com", s.seq)
}

func (s *stubSource) Hash() string {
	s.seq++
	return fmt.Sprintf("hash-%d", s.seq)
}

func (s *stubSource) Address() string {
	s.seq++
	return fmt.Sprintf("%d Test Street", s.seq)
}

func (s *stubSource) AlphaNumeric(n int) string {
	s.seq++
	return fmt.Sprintf("%0*d", n, s.seq)
}

var _ fake.Source = (*stubSource)(nil)
