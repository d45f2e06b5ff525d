package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	TripPending    TripStatus = "Pending"
	TripInProgress TripStatus = "In Progress"
	TripCompleted  TripStatus = "Completed"
	TripCancelled  TripStatus = "Cancelled"
)

var tripTransitions = map[TripStatus][]TripStatus{
	TripPending:    {TripInProgress, TripCancelled},
	TripInProgress: {TripCompleted, TripCancelled},
}

// IsValidTripStatus checks if a trip status is valid
func IsValidTripStatus(status TripStatus) bool {
	switch status {
	case TripPending, TripInProgress, TripCompleted, TripCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the trip may move from s to next.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s TripStatus) IsTerminal() bool {
	return len(tripTransitions[s]) == 0
}

// Trip represents a concrete vehicle movement. RequestID links back to the
// originating VehicleRequest by its human-readable key; it is empty for
// direct internal movements, and a trip may outlive its request.
type Trip struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID           string             `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"`
	DriverID            string             `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	RequestID           string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	RequesterName       string             `bson:"requester_name,omitempty" json:"requester_name,omitempty"`
	RequesterDepartment string             `bson:"requester_department,omitempty" json:"requester_department,omitempty"`
	Purpose             string             `bson:"purpose,omitempty" json:"purpose,omitempty"`
	StartLocation       string             `bson:"start_location" json:"start_location"`
	EndLocation         string             `bson:"end_location" json:"end_location"`
	StartTime           time.Time          `bson:"start_time" json:"start_time"`
	EndTime             *time.Time         `bson:"end_time,omitempty" json:"end_time,omitempty"`
	StartOdometer       *float64           `bson:"start_odometer,omitempty" json:"start_odometer,omitempty"`
	EndOdometer         *float64           `bson:"end_odometer,omitempty" json:"end_odometer,omitempty"`
	Status              TripStatus         `bson:"status" json:"status"`
	Notes               string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateTripInput carries the fields for a direct (non-request) movement.
type CreateTripInput struct {
	RequesterName       string     `json:"requester_name"`
	RequesterDepartment string     `json:"requester_department"`
	Purpose             string     `json:"purpose"`
	StartLocation       string     `json:"start_location"`
	EndLocation         string     `json:"end_location"`
	StartTime           time.Time  `json:"start_time"`
	Status              TripStatus `json:"status"`
	Notes               string     `json:"notes,omitempty"`
	StartOdometer       *float64   `json:"start_odometer,omitempty"`
}

// TripUpdate is the whitelisted set of fields editable on a trip.
type TripUpdate struct {
	RequesterName       *string  `json:"requester_name,omitempty"`
	RequesterDepartment *string  `json:"requester_department,omitempty"`
	Purpose             *string  `json:"purpose,omitempty"`
	StartLocation       *string  `json:"start_location,omitempty"`
	EndLocation         *string  `json:"end_location,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
	StartOdometer       *float64 `json:"start_odometer,omitempty"`
	EndOdometer         *float64 `json:"end_odometer,omitempty"`
}
