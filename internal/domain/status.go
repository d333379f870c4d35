package domain

type (
	// Role is a user role in the simulated world.
	Role string
	// ShipmentStatus is the shipment state machine's state.
	ShipmentStatus string
	// EventType labels a shipment_events row.
	EventType string
)

// List of user roles
const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleManager  Role = "manager"
)

// Shipment statuses. Delivered and cancelled are terminal.
const (
	StatusPending   ShipmentStatus = "pending"
	StatusInTransit ShipmentStatus = "in_transit"
	StatusDelivered ShipmentStatus = "delivered"
	StatusCancelled ShipmentStatus = "cancelled"
)

// Event types emitted by the advancer.
const (
	EventPickedUp  EventType = "picked_up"
	EventInTransit EventType = "in_transit"
	EventDelivered EventType = "delivered"
	EventFailed    EventType = "failed"
)

var allowedRoles = [...]Role{RoleCustomer, RoleDriver, RoleManager}

var allowedStatuses = [...]ShipmentStatus{
	StatusPending, StatusInTransit, StatusDelivered, StatusCancelled,
}

// Valid checks if the Role is one of the known roles.
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Valid checks if the ShipmentStatus is a known status.
func (s ShipmentStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition may leave s.
func (s ShipmentStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether next is a legal successor of s.
// The only chains are pending → in_transit → delivered|cancelled.
func (s ShipmentStatus) CanTransition(next ShipmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInTransit
	case StatusInTransit:
		return next == StatusDelivered || next == StatusCancelled
	default:
		return false
	}
}
