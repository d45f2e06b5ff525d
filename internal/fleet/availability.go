package fleet

import (
	"context"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

const (
	vehicleFreeStatus = models.VehicleActive
	driverFreeStatus  = models.DriverAvailable
)

// Availability keeps vehicle and driver status consistent with their current
// trip binding. Reserve is compare-and-set on the asset's free status, so a
// concurrent approval cannot double-book; Release is unconditional and
// idempotent.
type Availability struct {
	Vehicles db.VehicleCollection
	Drivers  db.DriverCollection
}

// Reserve marks the vehicle and driver On Duty. It fails with
// db.ErrVehicleUnavailable or db.ErrDriverUnavailable when either asset is
// not in its free status.
func (a *Availability) Reserve(ctx context.Context, vehicleID, driverID string) error {
	if err := a.Vehicles.ReserveVehicle(ctx, vehicleID); err != nil {
		return err
	}
	return a.Drivers.ReserveDriver(ctx, driverID)
}

// Release marks the vehicle Active and the driver Available. Empty IDs are
// skipped; releasing an already-free asset is harmless.
func (a *Availability) Release(ctx context.Context, vehicleID, driverID string) error {
	if vehicleID != "" {
		if err := a.Vehicles.SetVehicleStatus(ctx, vehicleID, vehicleFreeStatus); err != nil {
			return err
		}
	}
	if driverID != "" {
		if err := a.Drivers.SetDriverStatus(ctx, driverID, driverFreeStatus); err != nil {
			return err
		}
	}
	return nil
}
