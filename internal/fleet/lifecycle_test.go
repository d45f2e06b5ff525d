package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

type lifecycleFixture struct {
	requests  *fakeRequests
	trips     *fakeTrips
	sequences *fakeSequences
	vehicles  *fakeVehicles
	drivers   *fakeDrivers
	lifecycle *Lifecycle
}

func newLifecycleFixture(now time.Time) *lifecycleFixture {
	f := &lifecycleFixture{
		requests:  newFakeRequests(),
		trips:     newFakeTrips(),
		sequences: newFakeSequences(),
		vehicles:  newFakeVehicles(),
		drivers:   newFakeDrivers(),
	}
	assets := &Availability{Vehicles: f.vehicles, Drivers: f.drivers}
	f.lifecycle = NewLifecycle(f.requests, f.trips, f.sequences, assets, nil)
	f.lifecycle.Now = func() time.Time { return now }
	return f
}

func validRequestInput() models.CreateRequestInput {
	return models.CreateRequestInput{
		RequesterName:  "Ravi Kumar",
		EmployeeID:     "EMP-1042",
		Department:     "Maintenance",
		Plant:          "Forging",
		ContactNumber:  "9876543210",
		Purpose:        "Spare parts pickup",
		Priority:       "High",
		PickupLocation: "Forging",
		DropLocation:   "Main Plant (SMS)",
		TripType:       "One Way",
		VehicleType:    "Truck",
	}
}

func (f *lifecycleFixture) addAssets(t *testing.T) (vehicleID, driverID string) {
	t.Helper()
	vehicleID = f.vehicles.add(models.Vehicle{
		RegistrationNumber: "MH12AB1234",
		Type:               "Truck",
		Model:              "Tata 407",
		Status:             models.VehicleActive,
	})
	driverID = f.drivers.add(models.Driver{
		DriverID:      "DRV-001",
		Name:          "Suresh Patil",
		LicenseNumber: "MH1220200012345",
		Status:        models.DriverAvailable,
	})
	return vehicleID, driverID
}

func (f *lifecycleFixture) submitRequest(t *testing.T) *models.CreateRequestResult {
	t.Helper()
	result, err := f.lifecycle.CreateRequest(context.Background(), validRequestInput())
	require.NoError(t, err)
	return result
}

func TestLifecycle_CreateRequest(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	f := newLifecycleFixture(now)

	result, err := f.lifecycle.CreateRequest(context.Background(), validRequestInput())
	require.NoError(t, err)
	assert.Equal(t, "REQ-20260315-0001", result.RequestID)

	request, err := f.requests.FindRequestByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, request.Status)
	assert.Equal(t, "Forging", request.Plant)

	// Sequence increments within the same day.
	second, err := f.lifecycle.CreateRequest(context.Background(), validRequestInput())
	require.NoError(t, err)
	assert.Equal(t, "REQ-20260315-0002", second.RequestID)
}

func TestLifecycle_CreateRequest_ValidatesInput(t *testing.T) {
	f := newLifecycleFixture(time.Now())

	in := validRequestInput()
	in.ContactNumber = "12345"
	_, err := f.lifecycle.CreateRequest(context.Background(), in)
	assert.ErrorIs(t, err, models.ErrInvalidContactNumber)

	in = validRequestInput()
	in.Purpose = ""
	_, err = f.lifecycle.CreateRequest(context.Background(), in)
	assert.Error(t, err)
}

func TestLifecycle_SequenceResetsAcrossDays(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	f := newLifecycleFixture(now)

	first, err := f.lifecycle.CreateRequest(context.Background(), validRequestInput())
	require.NoError(t, err)
	assert.Equal(t, "REQ-20260315-0001", first.RequestID)

	f.lifecycle.Now = func() time.Time { return now.Add(2 * time.Minute) }
	second, err := f.lifecycle.CreateRequest(context.Background(), validRequestInput())
	require.NoError(t, err)
	assert.Equal(t, "REQ-20260316-0001", second.RequestID)
}

func TestLifecycle_ListRequests_PlantFilter(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	f.submitRequest(t)

	other := validRequestInput()
	other.Plant = "Wire Plant"
	_, err := f.lifecycle.CreateRequest(context.Background(), other)
	require.NoError(t, err)

	all, err := f.lifecycle.ListRequests(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	forging, err := f.lifecycle.ListRequests(context.Background(), "", "Forging")
	require.NoError(t, err)
	require.Len(t, forging, 1)
	assert.Equal(t, "Forging", forging[0].Plant)
}

func TestLifecycle_ApproveRequest(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	f := newLifecycleFixture(now)
	vehicleID, driverID := f.addAssets(t)
	result := f.submitRequest(t)

	err := f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestApproved, vehicleID, driverID, floatPtr(5000))
	require.NoError(t, err)

	request, err := f.requests.FindRequestByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, request.Status)
	assert.Equal(t, vehicleID, request.VehicleID)
	assert.Equal(t, driverID, request.DriverID)

	// An In Progress trip is opened carrying the request's details.
	trips, err := f.trips.FindTripsByRequestID(context.Background(), result.RequestID)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	trip := trips[0]
	assert.Equal(t, models.TripInProgress, trip.Status)
	assert.Equal(t, "Ravi Kumar", trip.RequesterName)
	assert.Equal(t, "Maintenance", trip.RequesterDepartment)
	assert.Equal(t, "Forging", trip.StartLocation)
	assert.Equal(t, "Main Plant (SMS)", trip.EndLocation)
	require.NotNil(t, trip.StartOdometer)
	assert.Equal(t, 5000.0, *trip.StartOdometer)

	// Both assets go On Duty.
	vehicle, _ := f.vehicles.FindVehicleByID(context.Background(), vehicleID)
	assert.Equal(t, models.VehicleOnDuty, vehicle.Status)
	driver, _ := f.drivers.FindDriverByID(context.Background(), driverID)
	assert.Equal(t, models.DriverOnDuty, driver.Status)
}

func TestLifecycle_ApproveRequest_MissingAssignment(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	vehicleID, driverID := f.addAssets(t)
	result := f.submitRequest(t)

	err := f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestApproved, "", driverID, floatPtr(5000))
	assert.ErrorIs(t, err, ErrMissingAssignment)

	err = f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestApproved, vehicleID, driverID, nil)
	assert.ErrorIs(t, err, ErrMissingAssignment)

	// Request stays pending after the failed approvals.
	request, _ := f.requests.FindRequestByID(context.Background(), result.ID)
	assert.Equal(t, models.RequestPending, request.Status)
}

func TestLifecycle_ApproveRequest_BusyVehicle(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	vehicleID, driverID := f.addAssets(t)
	require.NoError(t, f.vehicles.SetVehicleStatus(context.Background(), vehicleID, models.VehicleOnDuty))
	result := f.submitRequest(t)

	err := f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestApproved, vehicleID, driverID, floatPtr(5000))
	assert.ErrorIs(t, err, db.ErrVehicleUnavailable)
}

func TestLifecycle_RejectRequest(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	result := f.submitRequest(t)

	err := f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestRejected, "", "", nil)
	require.NoError(t, err)

	request, _ := f.requests.FindRequestByID(context.Background(), result.ID)
	assert.Equal(t, models.RequestRejected, request.Status)

	// No trip was opened.
	trips, _ := f.trips.FindTripsByRequestID(context.Background(), result.RequestID)
	assert.Empty(t, trips)
}

func TestLifecycle_UpdateRequestStatus_IllegalTransitions(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	vehicleID, driverID := f.addAssets(t)
	result := f.submitRequest(t)

	// Pending cannot go straight to completed.
	err := f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestCompleted, "", "", nil)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// A rejected request cannot be approved afterwards.
	require.NoError(t, f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestRejected, "", "", nil))
	err = f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestApproved, vehicleID, driverID, floatPtr(5000))
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// Unknown status strings are rejected outright.
	err = f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, "archived", "", "", nil)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestLifecycle_CompleteTrip_SyncsRequest(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	f := newLifecycleFixture(now)
	vehicleID, driverID := f.addAssets(t)
	result := f.submitRequest(t)

	require.NoError(t, f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestApproved, vehicleID, driverID, floatPtr(5000)))

	trips, _ := f.trips.FindTripsByRequestID(context.Background(), result.RequestID)
	require.Len(t, trips, 1)
	tripID := trips[0].ID.Hex()

	err := f.lifecycle.UpdateTripStatus(context.Background(), tripID, models.TripCompleted, nil, floatPtr(5230))
	require.NoError(t, err)

	trip, _ := f.trips.FindTripByID(context.Background(), tripID)
	assert.Equal(t, models.TripCompleted, trip.Status)
	require.NotNil(t, trip.EndOdometer)
	assert.Equal(t, 5230.0, *trip.EndOdometer)
	require.NotNil(t, trip.EndTime)
	assert.Equal(t, now, *trip.EndTime)

	// Assets released and request synced to completed.
	vehicle, _ := f.vehicles.FindVehicleByID(context.Background(), vehicleID)
	assert.Equal(t, models.VehicleActive, vehicle.Status)
	driver, _ := f.drivers.FindDriverByID(context.Background(), driverID)
	assert.Equal(t, models.DriverAvailable, driver.Status)
	request, _ := f.requests.FindRequestByID(context.Background(), result.ID)
	assert.Equal(t, models.RequestCompleted, request.Status)
}

func TestLifecycle_CompleteTrip_OdometerChecks(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	vehicleID, driverID := f.addAssets(t)
	result := f.submitRequest(t)
	require.NoError(t, f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestApproved, vehicleID, driverID, floatPtr(5000)))

	trips, _ := f.trips.FindTripsByRequestID(context.Background(), result.RequestID)
	tripID := trips[0].ID.Hex()

	err := f.lifecycle.UpdateTripStatus(context.Background(), tripID, models.TripCompleted, nil, nil)
	assert.ErrorIs(t, err, ErrMissingEndOdometer)

	err = f.lifecycle.UpdateTripStatus(context.Background(), tripID, models.TripCompleted, nil, floatPtr(4900))
	assert.ErrorIs(t, err, ErrOdometerRegression)

	// Equal readings are allowed.
	err = f.lifecycle.UpdateTripStatus(context.Background(), tripID, models.TripCompleted, nil, floatPtr(5000))
	assert.NoError(t, err)
}

func TestLifecycle_CompleteTrip_WithoutRequest(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	vehicleID, driverID := f.addAssets(t)

	tripID, err := f.lifecycle.CreateTrip(context.Background(), models.CreateTripInput{
		StartLocation: "Forging",
		EndLocation:   "Bright Bar",
		Status:        models.TripPending,
	})
	require.NoError(t, err)

	require.NoError(t, f.lifecycle.AssignVehicle(context.Background(), tripID, vehicleID, driverID, models.TripInProgress, floatPtr(100)))

	// Completion with no linked request still succeeds.
	err = f.lifecycle.UpdateTripStatus(context.Background(), tripID, models.TripCompleted, nil, floatPtr(150))
	require.NoError(t, err)

	vehicle, _ := f.vehicles.FindVehicleByID(context.Background(), vehicleID)
	assert.Equal(t, models.VehicleActive, vehicle.Status)
}

func TestLifecycle_TripTransitionTable(t *testing.T) {
	f := newLifecycleFixture(time.Now())

	tripID, err := f.lifecycle.CreateTrip(context.Background(), models.CreateTripInput{
		StartLocation: "Forging",
		EndLocation:   "Bright Bar",
		Status:        models.TripPending,
	})
	require.NoError(t, err)

	// Pending cannot complete directly.
	err = f.lifecycle.UpdateTripStatus(context.Background(), tripID, models.TripCompleted, nil, floatPtr(10))
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// Pending can cancel, and cancellation is terminal.
	require.NoError(t, f.lifecycle.UpdateTripStatus(context.Background(), tripID, models.TripCancelled, nil, nil))
	err = f.lifecycle.UpdateTripStatus(context.Background(), tripID, models.TripInProgress, nil, nil)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestLifecycle_AssignVehicle(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	vehicleID, driverID := f.addAssets(t)

	tripID, err := f.lifecycle.CreateTrip(context.Background(), models.CreateTripInput{
		StartLocation: "Forging",
		EndLocation:   "Bright Bar",
		Status:        models.TripPending,
	})
	require.NoError(t, err)

	err = f.lifecycle.AssignVehicle(context.Background(), tripID, "", driverID, models.TripPending, nil)
	assert.ErrorIs(t, err, ErrMissingAssignment)

	// Assigning while staying Pending does not reserve the assets.
	require.NoError(t, f.lifecycle.AssignVehicle(context.Background(), tripID, vehicleID, driverID, models.TripPending, nil))
	vehicle, _ := f.vehicles.FindVehicleByID(context.Background(), vehicleID)
	assert.Equal(t, models.VehicleActive, vehicle.Status)

	// Moving to In Progress reserves both.
	require.NoError(t, f.lifecycle.AssignVehicle(context.Background(), tripID, vehicleID, driverID, models.TripInProgress, floatPtr(100)))
	vehicle, _ = f.vehicles.FindVehicleByID(context.Background(), vehicleID)
	assert.Equal(t, models.VehicleOnDuty, vehicle.Status)
	driver, _ := f.drivers.FindDriverByID(context.Background(), driverID)
	assert.Equal(t, models.DriverOnDuty, driver.Status)
}

func TestLifecycle_UpdateRequestDetails(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	vehicleID, driverID := f.addAssets(t)
	result := f.submitRequest(t)
	require.NoError(t, f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestApproved, vehicleID, driverID, floatPtr(5000)))

	purpose := "Urgent die change"
	drop := "Wire Plant"
	err := f.lifecycle.UpdateRequestDetails(context.Background(), result.ID, models.RequestUpdate{
		Purpose:      &purpose,
		DropLocation: &drop,
	})
	require.NoError(t, err)

	request, _ := f.requests.FindRequestByID(context.Background(), result.ID)
	assert.Equal(t, purpose, request.Purpose)
	assert.Equal(t, drop, request.DropLocation)

	// The linked trip mirrors the overlapping fields.
	trips, _ := f.trips.FindTripsByRequestID(context.Background(), result.RequestID)
	require.Len(t, trips, 1)
	assert.Equal(t, purpose, trips[0].Purpose)
	assert.Equal(t, drop, trips[0].EndLocation)
}

func TestLifecycle_UpdateRequestDetails_TerminalState(t *testing.T) {
	f := newLifecycleFixture(time.Now())
	result := f.submitRequest(t)
	require.NoError(t, f.lifecycle.UpdateRequestStatus(context.Background(), result.ID, models.RequestRejected, "", "", nil))

	purpose := "too late"
	err := f.lifecycle.UpdateRequestDetails(context.Background(), result.ID, models.RequestUpdate{Purpose: &purpose})
	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestLifecycle_ListTrips_PlantFilter(t *testing.T) {
	f := newLifecycleFixture(time.Now())

	_, err := f.lifecycle.CreateTrip(context.Background(), models.CreateTripInput{
		StartLocation: "Forging",
		EndLocation:   "Bright Bar",
		Status:        models.TripPending,
	})
	require.NoError(t, err)
	_, err = f.lifecycle.CreateTrip(context.Background(), models.CreateTripInput{
		StartLocation: "Wire Plant",
		EndLocation:   "Forging",
		Status:        models.TripPending,
	})
	require.NoError(t, err)

	// A trip matches when the plant is either endpoint.
	forging, err := f.lifecycle.ListTrips(context.Background(), "Forging")
	require.NoError(t, err)
	assert.Len(t, forging, 2)

	bright, err := f.lifecycle.ListTrips(context.Background(), "Bright Bar")
	require.NoError(t, err)
	assert.Len(t, bright, 1)
}
