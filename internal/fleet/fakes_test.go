package fleet

import (
	"context"
	"sort"
	"time"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory collection fakes backing the service tests. They mirror the
// Mongo implementations' sort orders and sentinel errors.

type fakeSequences struct {
	counters map[string]int64
}

func newFakeSequences() *fakeSequences {
	return &fakeSequences{counters: make(map[string]int64)}
}

func (f *fakeSequences) NextRequestSequence(ctx context.Context, day string) (int64, error) {
	f.counters[day]++
	return f.counters[day], nil
}

type fakeRequests struct {
	requests map[string]*models.VehicleRequest
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{requests: make(map[string]*models.VehicleRequest)}
}

func (f *fakeRequests) InsertRequest(ctx context.Context, request models.VehicleRequest) (string, error) {
	request.ID = primitive.NewObjectID()
	f.requests[request.ID.Hex()] = &request
	return request.ID.Hex(), nil
}

func (f *fakeRequests) FindRequests(ctx context.Context, status models.RequestStatus) ([]models.VehicleRequest, error) {
	var out []models.VehicleRequest
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRequests) FindRequestByID(ctx context.Context, id string) (*models.VehicleRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copy := *r
	return &copy, nil
}

func (f *fakeRequests) FindRequestByRequestID(ctx context.Context, requestID string) (*models.VehicleRequest, error) {
	for _, r := range f.requests {
		if r.RequestID == requestID {
			copy := *r
			return &copy, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeRequests) SetRequestStatus(ctx context.Context, id string, status models.RequestStatus, vehicleID, driverID string) error {
	r, ok := f.requests[id]
	if !ok {
		return db.ErrNotFound
	}
	r.Status = status
	if vehicleID != "" {
		r.VehicleID = vehicleID
	}
	if driverID != "" {
		r.DriverID = driverID
	}
	return nil
}

func (f *fakeRequests) UpdateRequestDetails(ctx context.Context, id string, update models.RequestUpdate) error {
	r, ok := f.requests[id]
	if !ok {
		return db.ErrNotFound
	}
	setIf := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&r.RequesterName, update.RequesterName)
	setIf(&r.EmployeeID, update.EmployeeID)
	setIf(&r.Department, update.Department)
	setIf(&r.Plant, update.Plant)
	setIf(&r.ContactNumber, update.ContactNumber)
	setIf(&r.Purpose, update.Purpose)
	setIf(&r.Priority, update.Priority)
	setIf(&r.PickupLocation, update.PickupLocation)
	setIf(&r.DropLocation, update.DropLocation)
	setIf(&r.TripType, update.TripType)
	setIf(&r.VehicleType, update.VehicleType)
	setIf(&r.BookingDateTime, update.BookingDateTime)
	return nil
}

type fakeTrips struct {
	trips map[string]*models.Trip
}

func newFakeTrips() *fakeTrips {
	return &fakeTrips{trips: make(map[string]*models.Trip)}
}

func (f *fakeTrips) InsertTrip(ctx context.Context, trip models.Trip) (string, error) {
	trip.ID = primitive.NewObjectID()
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = time.Now()
	f.trips[trip.ID.Hex()] = &trip
	return trip.ID.Hex(), nil
}

func (f *fakeTrips) FindTrips(ctx context.Context) ([]models.Trip, error) {
	var out []models.Trip
	for _, t := range f.trips {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTrips) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copy := *t
	return &copy, nil
}

func (f *fakeTrips) FindTripsByRequestID(ctx context.Context, requestID string) ([]models.Trip, error) {
	var out []models.Trip
	for _, t := range f.trips {
		if t.RequestID == requestID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTrips) AssignTrip(ctx context.Context, id string, vehicleID, driverID string, status models.TripStatus, startOdometer *float64) error {
	t, ok := f.trips[id]
	if !ok {
		return db.ErrNotFound
	}
	t.VehicleID = vehicleID
	t.DriverID = driverID
	t.Status = status
	if startOdometer != nil {
		t.StartOdometer = startOdometer
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (f *fakeTrips) SetTripStatus(ctx context.Context, id string, status models.TripStatus, endTime *time.Time, endOdometer *float64) error {
	t, ok := f.trips[id]
	if !ok {
		return db.ErrNotFound
	}
	t.Status = status
	if endTime != nil {
		t.EndTime = endTime
	}
	if endOdometer != nil {
		t.EndOdometer = endOdometer
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (f *fakeTrips) UpdateTripDetails(ctx context.Context, id string, update models.TripUpdate) error {
	t, ok := f.trips[id]
	if !ok {
		return db.ErrNotFound
	}
	if update.RequesterName != nil {
		t.RequesterName = *update.RequesterName
	}
	if update.RequesterDepartment != nil {
		t.RequesterDepartment = *update.RequesterDepartment
	}
	if update.Purpose != nil {
		t.Purpose = *update.Purpose
	}
	if update.StartLocation != nil {
		t.StartLocation = *update.StartLocation
	}
	if update.EndLocation != nil {
		t.EndLocation = *update.EndLocation
	}
	if update.Notes != nil {
		t.Notes = *update.Notes
	}
	if update.StartOdometer != nil {
		t.StartOdometer = update.StartOdometer
	}
	if update.EndOdometer != nil {
		t.EndOdometer = update.EndOdometer
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (f *fakeTrips) DeleteTrip(ctx context.Context, id string) error {
	if _, ok := f.trips[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.trips, id)
	return nil
}

type fakeVehicles struct {
	vehicles map[string]*models.Vehicle
}

func newFakeVehicles() *fakeVehicles {
	return &fakeVehicles{vehicles: make(map[string]*models.Vehicle)}
}

func (f *fakeVehicles) add(vehicle models.Vehicle) string {
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	f.vehicles[vehicle.ID.Hex()] = &vehicle
	return vehicle.ID.Hex()
}

func (f *fakeVehicles) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	for _, v := range f.vehicles {
		if v.RegistrationNumber == vehicle.RegistrationNumber {
			return "", db.ErrDuplicateRegistration
		}
	}
	return f.add(vehicle), nil
}

func (f *fakeVehicles) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for _, v := range f.vehicles {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegistrationNumber < out[j].RegistrationNumber })
	return out, nil
}

func (f *fakeVehicles) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copy := *v
	return &copy, nil
}

func (f *fakeVehicles) FindVehicleByRegNo(ctx context.Context, registrationNumber string) (*models.Vehicle, error) {
	for _, v := range f.vehicles {
		if v.RegistrationNumber == registrationNumber {
			copy := *v
			return &copy, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeVehicles) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	if _, ok := f.vehicles[id]; !ok {
		return db.ErrNotFound
	}
	vehicle.ID = f.vehicles[id].ID
	f.vehicles[id] = &vehicle
	return nil
}

func (f *fakeVehicles) SetVehicleStatus(ctx context.Context, id string, status models.VehicleStatus) error {
	v, ok := f.vehicles[id]
	if !ok {
		return db.ErrNotFound
	}
	v.Status = status
	return nil
}

func (f *fakeVehicles) ReserveVehicle(ctx context.Context, id string) error {
	v, ok := f.vehicles[id]
	if !ok {
		return db.ErrNotFound
	}
	if v.Status != models.VehicleActive {
		return db.ErrVehicleUnavailable
	}
	v.Status = models.VehicleOnDuty
	return nil
}

func (f *fakeVehicles) DeleteVehicle(ctx context.Context, id string) error {
	if _, ok := f.vehicles[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.vehicles, id)
	return nil
}

type fakeDrivers struct {
	drivers map[string]*models.Driver
}

func newFakeDrivers() *fakeDrivers {
	return &fakeDrivers{drivers: make(map[string]*models.Driver)}
}

func (f *fakeDrivers) add(driver models.Driver) string {
	if driver.ID.IsZero() {
		driver.ID = primitive.NewObjectID()
	}
	f.drivers[driver.ID.Hex()] = &driver
	return driver.ID.Hex()
}

func (f *fakeDrivers) InsertDriver(ctx context.Context, driver models.Driver) (string, error) {
	for _, d := range f.drivers {
		if d.LicenseNumber == driver.LicenseNumber {
			return "", db.ErrDuplicateLicense
		}
	}
	return f.add(driver), nil
}

func (f *fakeDrivers) FindDrivers(ctx context.Context) ([]models.Driver, error) {
	var out []models.Driver
	for _, d := range f.drivers {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDrivers) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	d, ok := f.drivers[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copy := *d
	return &copy, nil
}

func (f *fakeDrivers) UpdateDriver(ctx context.Context, id string, driver models.Driver) error {
	if _, ok := f.drivers[id]; !ok {
		return db.ErrNotFound
	}
	driver.ID = f.drivers[id].ID
	f.drivers[id] = &driver
	return nil
}

func (f *fakeDrivers) SetDriverStatus(ctx context.Context, id string, status models.DriverStatus) error {
	d, ok := f.drivers[id]
	if !ok {
		return db.ErrNotFound
	}
	d.Status = status
	return nil
}

func (f *fakeDrivers) ReserveDriver(ctx context.Context, id string) error {
	d, ok := f.drivers[id]
	if !ok {
		return db.ErrNotFound
	}
	if d.Status != models.DriverAvailable {
		return db.ErrDriverUnavailable
	}
	d.Status = models.DriverOnDuty
	return nil
}

func (f *fakeDrivers) DeleteDriver(ctx context.Context, id string) error {
	if _, ok := f.drivers[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.drivers, id)
	return nil
}

type fakeFuelRecords struct {
	records map[string]*models.FuelRecord
}

func newFakeFuelRecords() *fakeFuelRecords {
	return &fakeFuelRecords{records: make(map[string]*models.FuelRecord)}
}

func (f *fakeFuelRecords) InsertFuelRecord(ctx context.Context, record models.FuelRecord) (string, error) {
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	f.records[record.ID.Hex()] = &record
	return record.ID.Hex(), nil
}

func (f *fakeFuelRecords) sorted(filter func(*models.FuelRecord) bool) []models.FuelRecord {
	var out []models.FuelRecord
	for _, r := range f.records {
		if filter == nil || filter(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RefuelDate.After(out[j].RefuelDate) })
	return out
}

func (f *fakeFuelRecords) FindFuelRecords(ctx context.Context) ([]models.FuelRecord, error) {
	return f.sorted(nil), nil
}

func (f *fakeFuelRecords) FindFuelRecordsByVehicle(ctx context.Context, vehicleID string) ([]models.FuelRecord, error) {
	return f.sorted(func(r *models.FuelRecord) bool { return r.VehicleID == vehicleID }), nil
}

func (f *fakeFuelRecords) FindFuelRecordByID(ctx context.Context, id string) (*models.FuelRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copy := *r
	return &copy, nil
}

func (f *fakeFuelRecords) UpdateFuelRecord(ctx context.Context, id string, update models.FuelUpdate, totalCost *float64) error {
	r, ok := f.records[id]
	if !ok {
		return db.ErrNotFound
	}
	if update.FuelType != nil {
		r.FuelType = *update.FuelType
	}
	if update.Quantity != nil {
		r.Quantity = *update.Quantity
	}
	if update.PricePerLiter != nil {
		r.PricePerLiter = *update.PricePerLiter
	}
	if update.CurrentOdometer != nil {
		r.CurrentOdometer = *update.CurrentOdometer
	}
	if update.Location != nil {
		r.Location = *update.Location
	}
	if update.VendorName != nil {
		r.VendorName = *update.VendorName
	}
	if update.BillNumber != nil {
		r.BillNumber = *update.BillNumber
	}
	if update.Remarks != nil {
		r.Remarks = *update.Remarks
	}
	if totalCost != nil {
		r.TotalCost = *totalCost
	}
	return nil
}

func (f *fakeFuelRecords) DeleteFuelRecord(ctx context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeNotifications struct {
	notifications []*models.Notification
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{}
}

func (f *fakeNotifications) InsertNotification(ctx context.Context, notification models.Notification) error {
	notification.ID = primitive.NewObjectID()
	f.notifications = append(f.notifications, &notification)
	return nil
}

func (f *fakeNotifications) FindNotifications(ctx context.Context, status models.NotificationStatus) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if status == "" || n.Status == status {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.Status == models.NotificationUnread {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotifications) HasUnread(ctx context.Context, vehicleID string, docType models.DocumentType) (bool, error) {
	for _, n := range f.notifications {
		if n.VehicleID == vehicleID && n.Type == docType && n.Status == models.NotificationUnread {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id string) error {
	for _, n := range f.notifications {
		if n.ID.Hex() == id {
			n.Status = models.NotificationRead
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeNotifications) MarkAllRead(ctx context.Context) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.Status == models.NotificationUnread {
			n.Status = models.NotificationRead
			count++
		}
	}
	return count, nil
}
