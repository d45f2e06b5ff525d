package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the lifecycle state of a vehicle request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

// requestTransitions is the closed transition table for vehicle requests.
// Rejected and completed are terminal.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:  {RequestApproved, RequestRejected},
	RequestApproved: {RequestCompleted},
}

// IsValidRequestStatus checks if a request status is valid
func IsValidRequestStatus(status RequestStatus) bool {
	switch status {
	case RequestPending, RequestApproved, RequestRejected, RequestCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the request may move from s to next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// VehicleRequest represents a request for a vehicle, submitted by an employee
// and processed by a plant admin. RequestID is the human-readable key
// ("REQ-YYYYMMDD-NNNN") that trips reference.
type VehicleRequest struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID       string             `bson:"request_id" json:"request_id"`
	RequesterName   string             `bson:"requester_name" json:"requester_name"`
	EmployeeID      string             `bson:"employee_id" json:"employee_id"`
	Department      string             `bson:"department" json:"department"`
	Plant           string             `bson:"plant" json:"plant"`
	ContactNumber   string             `bson:"contact_number" json:"contact_number"`
	Purpose         string             `bson:"purpose" json:"purpose"`
	Priority        string             `bson:"priority" json:"priority"`
	PickupLocation  string             `bson:"pickup_location" json:"pickup_location"`
	DropLocation    string             `bson:"drop_location" json:"drop_location"`
	TripType        string             `bson:"trip_type" json:"trip_type"`
	VehicleType     string             `bson:"vehicle_type" json:"vehicle_type"`
	BookingDateTime string             `bson:"booking_date_time,omitempty" json:"booking_date_time,omitempty"`
	Status          RequestStatus      `bson:"status" json:"status"`
	VehicleID       string             `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"`
	DriverID        string             `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// CreateRequestInput carries the fields needed to submit a vehicle request.
type CreateRequestInput struct {
	RequesterName   string `json:"requester_name"`
	EmployeeID      string `json:"employee_id"`
	Department      string `json:"department"`
	Plant           string `json:"plant"`
	ContactNumber   string `json:"contact_number"`
	Purpose         string `json:"purpose"`
	Priority        string `json:"priority"`
	PickupLocation  string `json:"pickup_location"`
	DropLocation    string `json:"drop_location"`
	TripType        string `json:"trip_type"`
	VehicleType     string `json:"vehicle_type"`
	BookingDateTime string `json:"booking_date_time,omitempty"`
}

// ErrInvalidContactNumber is returned when a contact number is not exactly 10 digits.
var ErrInvalidContactNumber = errors.New("contact number must be exactly 10 digits")

// Validate checks required fields and the 10-digit contact number.
func (in *CreateRequestInput) Validate() error {
	required := map[string]string{
		"requester_name":  in.RequesterName,
		"employee_id":     in.EmployeeID,
		"department":      in.Department,
		"plant":           in.Plant,
		"contact_number":  in.ContactNumber,
		"purpose":         in.Purpose,
		"priority":        in.Priority,
		"pickup_location": in.PickupLocation,
		"drop_location":   in.DropLocation,
		"trip_type":       in.TripType,
		"vehicle_type":    in.VehicleType,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if len(in.ContactNumber) != 10 {
		return ErrInvalidContactNumber
	}
	for _, r := range in.ContactNumber {
		if r < '0' || r > '9' {
			return ErrInvalidContactNumber
		}
	}
	return nil
}

// CreateRequestResult is returned to the caller after a successful submission.
type CreateRequestResult struct {
	ID        string `json:"id"`
	RequestID string `json:"request_id"`
}

// RequestUpdate is the whitelisted set of descriptive fields an admin may
// edit on a request. Nil fields are left untouched. Status, odometer and
// asset bindings are deliberately not part of it.
type RequestUpdate struct {
	RequesterName   *string `json:"requester_name,omitempty"`
	EmployeeID      *string `json:"employee_id,omitempty"`
	Department      *string `json:"department,omitempty"`
	Plant           *string `json:"plant,omitempty"`
	ContactNumber   *string `json:"contact_number,omitempty"`
	Purpose         *string `json:"purpose,omitempty"`
	Priority        *string `json:"priority,omitempty"`
	PickupLocation  *string `json:"pickup_location,omitempty"`
	DropLocation    *string `json:"drop_location,omitempty"`
	TripType        *string `json:"trip_type,omitempty"`
	VehicleType     *string `json:"vehicle_type,omitempty"`
	BookingDateTime *string `json:"booking_date_time,omitempty"`
}
