package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

var (
	// ErrIllegalTransition is returned when a status change is not in the transition table.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrTerminalState is returned when editing a request that has reached a terminal status.
	ErrTerminalState = errors.New("request is in a terminal state")
	// ErrMissingAssignment is returned when approving without vehicle, driver and start odometer.
	ErrMissingAssignment = errors.New("vehicle, driver and start odometer are required for approval")
	// ErrMissingEndOdometer is returned when completing a trip without an end odometer reading.
	ErrMissingEndOdometer = errors.New("end odometer reading is required for completion")
	// ErrOdometerRegression is returned when the end odometer is below the start odometer.
	ErrOdometerRegression = errors.New("end odometer cannot be less than start odometer")
)

// Lifecycle is the request-to-trip state machine. It owns the
// submit/approve/reject/complete transitions and keeps the denormalized
// status fields of requests, trips, vehicles and drivers in sync. Each
// multi-collection transition runs as one unit under Sessions.
type Lifecycle struct {
	Requests  db.RequestCollection
	Trips     db.TripCollection
	Sequences db.SequenceCollection
	Assets    *Availability
	Sessions  db.SessionRunner

	// Now is the clock used for request IDs and timestamps, overridable in tests.
	Now func() time.Time
}

// NewLifecycle wires a Lifecycle with a real clock and the given session runner.
func NewLifecycle(requests db.RequestCollection, trips db.TripCollection, sequences db.SequenceCollection, assets *Availability, sessions db.SessionRunner) *Lifecycle {
	if sessions == nil {
		sessions = db.NopSessionRunner{}
	}
	return &Lifecycle{
		Requests:  requests,
		Trips:     trips,
		Sequences: sequences,
		Assets:    assets,
		Sessions:  sessions,
		Now:       time.Now,
	}
}

// CreateRequest validates and inserts a new pending vehicle request. The
// request ID is REQ-YYYYMMDD-NNNN with a per-day sequence taken from an
// atomic counter.
func (s *Lifecycle) CreateRequest(ctx context.Context, in models.CreateRequestInput) (*models.CreateRequestResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.Now()
	day := now.UTC().Format("20060102")
	seq, err := s.Sequences.NextRequestSequence(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("allocating request sequence: %w", err)
	}
	requestID := fmt.Sprintf("REQ-%s-%04d", day, seq)

	request := models.VehicleRequest{
		RequestID:       requestID,
		RequesterName:   in.RequesterName,
		EmployeeID:      in.EmployeeID,
		Department:      in.Department,
		Plant:           in.Plant,
		ContactNumber:   in.ContactNumber,
		Purpose:         in.Purpose,
		Priority:        in.Priority,
		PickupLocation:  in.PickupLocation,
		DropLocation:    in.DropLocation,
		TripType:        in.TripType,
		VehicleType:     in.VehicleType,
		BookingDateTime: in.BookingDateTime,
		Status:          models.RequestPending,
		CreatedAt:       now,
	}

	id, err := s.Requests.InsertRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"request_id": requestID, "plant": in.Plant}).Info("vehicle request submitted")
	return &models.CreateRequestResult{ID: id, RequestID: requestID}, nil
}

// ListRequests returns requests newest first, filtered by status and plant
// when given.
func (s *Lifecycle) ListRequests(ctx context.Context, status models.RequestStatus, plant string) ([]models.VehicleRequest, error) {
	requests, err := s.Requests.FindRequests(ctx, status)
	if err != nil {
		return nil, err
	}
	if plant == "" {
		return requests, nil
	}

	filtered := make([]models.VehicleRequest, 0, len(requests))
	for _, r := range requests {
		if r.Plant == plant {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// UpdateRequestStatus drives a request through the state machine. Approval
// binds the vehicle and driver, opens an In Progress trip and reserves both
// assets; rejection is a pure status patch.
func (s *Lifecycle) UpdateRequestStatus(ctx context.Context, id string, status models.RequestStatus, vehicleID, driverID string, startOdometer *float64) error {
	if !models.IsValidRequestStatus(status) {
		return ErrIllegalTransition
	}
	if status == models.RequestApproved {
		return s.approveRequest(ctx, id, vehicleID, driverID, startOdometer)
	}

	request, err := s.Requests.FindRequestByID(ctx, id)
	if err != nil {
		return err
	}
	if !request.Status.CanTransitionTo(status) {
		return ErrIllegalTransition
	}
	if err := s.Requests.SetRequestStatus(ctx, id, status, "", ""); err != nil {
		return err
	}

	log.WithFields(log.Fields{"request_id": request.RequestID, "status": status}).Info("request status updated")
	return nil
}

// approveRequest runs the approval transition as one unit: request patch,
// trip creation and asset reservation all succeed or none do.
func (s *Lifecycle) approveRequest(ctx context.Context, id string, vehicleID, driverID string, startOdometer *float64) error {
	request, err := s.Requests.FindRequestByID(ctx, id)
	if err != nil {
		return err
	}
	if !request.Status.CanTransitionTo(models.RequestApproved) {
		return ErrIllegalTransition
	}
	if vehicleID == "" || driverID == "" || startOdometer == nil {
		return ErrMissingAssignment
	}

	err = s.Sessions.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Requests.SetRequestStatus(ctx, id, models.RequestApproved, vehicleID, driverID); err != nil {
			return err
		}
		if err := s.Assets.Reserve(ctx, vehicleID, driverID); err != nil {
			return err
		}
		trip := models.Trip{
			VehicleID:           vehicleID,
			DriverID:            driverID,
			RequestID:           request.RequestID,
			RequesterName:       request.RequesterName,
			RequesterDepartment: request.Department,
			Purpose:             request.Purpose,
			StartLocation:       request.PickupLocation,
			EndLocation:         request.DropLocation,
			StartTime:           s.Now(),
			StartOdometer:       startOdometer,
			Status:              models.TripInProgress,
		}
		_, err := s.Trips.InsertTrip(ctx, trip)
		return err
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"request_id": request.RequestID,
		"vehicle_id": vehicleID,
		"driver_id":  driverID,
	}).Info("request approved, trip opened")
	return nil
}

// UpdateRequestDetails patches the whitelisted descriptive fields of a
// non-terminal request and mirrors the overlapping fields onto its linked
// trip when one exists. Status, odometer and asset bindings are untouched.
func (s *Lifecycle) UpdateRequestDetails(ctx context.Context, id string, update models.RequestUpdate) error {
	request, err := s.Requests.FindRequestByID(ctx, id)
	if err != nil {
		return err
	}
	if request.Status.IsTerminal() {
		return ErrTerminalState
	}

	return s.Sessions.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Requests.UpdateRequestDetails(ctx, id, update); err != nil {
			return err
		}

		trips, err := s.Trips.FindTripsByRequestID(ctx, request.RequestID)
		if err != nil {
			return err
		}
		mirror := models.TripUpdate{
			RequesterName:       update.RequesterName,
			RequesterDepartment: update.Department,
			Purpose:             update.Purpose,
			StartLocation:       update.PickupLocation,
			EndLocation:         update.DropLocation,
		}
		for _, trip := range trips {
			if err := s.Trips.UpdateTripDetails(ctx, trip.ID.Hex(), mirror); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateTrip inserts a direct internal movement, unlinked to any request.
func (s *Lifecycle) CreateTrip(ctx context.Context, in models.CreateTripInput) (string, error) {
	if in.StartLocation == "" || in.EndLocation == "" {
		return "", fmt.Errorf("start and end locations are required")
	}
	if !models.IsValidTripStatus(in.Status) {
		return "", fmt.Errorf("invalid trip status %q", in.Status)
	}

	startTime := in.StartTime
	if startTime.IsZero() {
		startTime = s.Now()
	}
	trip := models.Trip{
		RequesterName:       in.RequesterName,
		RequesterDepartment: in.RequesterDepartment,
		Purpose:             in.Purpose,
		StartLocation:       in.StartLocation,
		EndLocation:         in.EndLocation,
		StartTime:           startTime,
		Status:              in.Status,
		Notes:               in.Notes,
		StartOdometer:       in.StartOdometer,
	}
	return s.Trips.InsertTrip(ctx, trip)
}

// ListTrips returns all trips, filtered to those touching the plant when given.
func (s *Lifecycle) ListTrips(ctx context.Context, plant string) ([]models.Trip, error) {
	trips, err := s.Trips.FindTrips(ctx)
	if err != nil {
		return nil, err
	}
	if plant == "" {
		return trips, nil
	}

	filtered := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if t.StartLocation == plant || t.EndLocation == plant {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// AssignVehicle binds a vehicle and driver to an existing trip. When the
// trip goes In Progress the assets are reserved, keeping asset status
// consistent with the trip binding.
func (s *Lifecycle) AssignVehicle(ctx context.Context, tripID, vehicleID, driverID string, status models.TripStatus, startOdometer *float64) error {
	trip, err := s.Trips.FindTripByID(ctx, tripID)
	if err != nil {
		return err
	}
	if status != trip.Status && !trip.Status.CanTransitionTo(status) {
		return ErrIllegalTransition
	}
	if vehicleID == "" || driverID == "" {
		return ErrMissingAssignment
	}

	return s.Sessions.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Trips.AssignTrip(ctx, tripID, vehicleID, driverID, status, startOdometer); err != nil {
			return err
		}
		if status == models.TripInProgress {
			return s.Assets.Reserve(ctx, vehicleID, driverID)
		}
		return nil
	})
}

// UpdateTripStatus drives a trip through the state machine. Completion
// requires an end odometer not below the start reading, releases the bound
// assets and syncs the originating request (looked up by its request ID
// string) to completed.
func (s *Lifecycle) UpdateTripStatus(ctx context.Context, tripID string, status models.TripStatus, endTime *time.Time, endOdometer *float64) error {
	trip, err := s.Trips.FindTripByID(ctx, tripID)
	if err != nil {
		return err
	}
	if !trip.Status.CanTransitionTo(status) {
		return ErrIllegalTransition
	}

	if status != models.TripCompleted {
		return s.Trips.SetTripStatus(ctx, tripID, status, endTime, endOdometer)
	}

	if endOdometer == nil {
		return ErrMissingEndOdometer
	}
	if trip.StartOdometer != nil && *endOdometer < *trip.StartOdometer {
		return ErrOdometerRegression
	}
	if endTime == nil {
		now := s.Now()
		endTime = &now
	}

	err = s.Sessions.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Trips.SetTripStatus(ctx, tripID, models.TripCompleted, endTime, endOdometer); err != nil {
			return err
		}
		if err := s.Assets.Release(ctx, trip.VehicleID, trip.DriverID); err != nil {
			return err
		}

		// A trip can exist with no matching request; skip the sync then.
		if trip.RequestID == "" {
			return nil
		}
		request, err := s.Requests.FindRequestByRequestID(ctx, trip.RequestID)
		if errors.Is(err, db.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !request.Status.CanTransitionTo(models.RequestCompleted) {
			return nil
		}
		return s.Requests.SetRequestStatus(ctx, request.ID.Hex(), models.RequestCompleted, "", "")
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"trip_id":    tripID,
		"request_id": trip.RequestID,
	}).Info("trip completed, assets released")
	return nil
}

// UpdateTripDetails patches the whitelisted editable fields of a trip.
func (s *Lifecycle) UpdateTripDetails(ctx context.Context, tripID string, update models.TripUpdate) error {
	return s.Trips.UpdateTripDetails(ctx, tripID, update)
}
