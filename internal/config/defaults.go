package config

import "time"

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "logistics",
	Pass: "logistics",
	Name: "logistics_db",
}

var defaultSim = Sim{
	TickInterval:           time.Second,
	UserSeedInterval:       10 * time.Second,
	VehicleEnsureInterval:  10 * time.Second,
	ShipmentCreateInterval: 5 * time.Second,
	AdvanceInterval:        time.Second,

	TargetCustomers: 50,
	TargetDrivers:   15,
	TargetManagers:  3,

	MaxOpenShipments:    60,
	MaxShipmentsPerTick: 5,

	MinStepMeters:    50,
	MaxStepMeters:    200,
	DeliveryFailRate: 0.05,
}

const defaultOpsPort = 9090

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultSim returns the default simulation settings.
func DefaultSim() Sim {
	return defaultSim
}

// DefaultOps returns the default ops server settings.
func DefaultOps() Ops {
	return Ops{Port: defaultOpsPort}
}
