package domain

import "time"

// Warehouse is a seeded hub location. Immutable after seeding.
type Warehouse struct {
	ID   int64
	Name string
	Lat  float64
	Lng  float64
}

// User is a simulated account. The engine only ever inserts users;
// the dashboard owns everything else about them.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}

// Vehicle is the single vehicle owned by a driver.
type Vehicle struct {
	ID         int64
	DriverID   int64
	Lat        float64
	Lng        float64
	LastUpdate time.Time
}

// Shipment is one tracked parcel moving from an origin warehouse to a
// synthesized destination.
type Shipment struct {
	ID                 int64
	DriverID           int64
	TrackingNumber     string
	OriginWarehouseID  int64
	DestinationAddress string
	DestLat            float64
	DestLng            float64
	CustomerID         int64
	Status             ShipmentStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ShipmentEvent is one append-only trace row of a shipment's path.
type ShipmentEvent struct {
	ID         int64
	ShipmentID int64
	Type       EventType
	Lat        float64
	Lng        float64
	CreatedAt  time.Time
}

// ActiveShipment is one row of the advancer's load: an open shipment
// joined with its origin warehouse and its driver's vehicle.
type ActiveShipment struct {
	ShipmentID int64
	DriverID   int64
	Status     ShipmentStatus
	DestLat    float64
	DestLng    float64
	OriginLat  float64
	OriginLng  float64
	VehicleID  int64
	VehicleLat float64
	VehicleLng float64
}
