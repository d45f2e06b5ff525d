package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelRecord represents one fuel purchase event for a vehicle.
//
// LastOdometer, DistanceCovered and FuelEfficiency are derived against the
// vehicle's previous record at creation time and frozen afterwards; they are
// nil when the previous record is missing or the distance is not positive.
type FuelRecord struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID          string             `bson:"vehicle_id" json:"vehicle_id"`
	RegistrationNumber string             `bson:"registration_number" json:"registration_number"`
	DriverID           string             `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	DriverName         string             `bson:"driver_name,omitempty" json:"driver_name,omitempty"`
	FuelType           string             `bson:"fuel_type" json:"fuel_type"`
	Quantity           float64            `bson:"quantity" json:"quantity"`                   // in liters
	PricePerLiter      float64            `bson:"price_per_liter" json:"price_per_liter"`
	TotalCost          float64            `bson:"total_cost" json:"total_cost"`               // quantity * price per liter
	CurrentOdometer    float64            `bson:"current_odometer" json:"current_odometer"`   // in kilometers
	LastOdometer       *float64           `bson:"last_odometer,omitempty" json:"last_odometer,omitempty"`
	DistanceCovered    *float64           `bson:"distance_covered,omitempty" json:"distance_covered,omitempty"`
	FuelEfficiency     *float64           `bson:"fuel_efficiency,omitempty" json:"fuel_efficiency,omitempty"` // km per liter
	RefuelDate         time.Time          `bson:"refuel_date" json:"refuel_date"`
	Location           string             `bson:"location,omitempty" json:"location,omitempty"`
	VendorName         string             `bson:"vendor_name,omitempty" json:"vendor_name,omitempty"`
	BillNumber         string             `bson:"bill_number,omitempty" json:"bill_number,omitempty"`
	Plant              string             `bson:"plant" json:"plant"`
	AddedBy            string             `bson:"added_by" json:"added_by"`
	Remarks            string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}

// CreateFuelInput carries the fields for a new fuel record.
type CreateFuelInput struct {
	VehicleID          string  `json:"vehicle_id"`
	RegistrationNumber string  `json:"registration_number"`
	DriverID           string  `json:"driver_id,omitempty"`
	DriverName         string  `json:"driver_name,omitempty"`
	FuelType           string  `json:"fuel_type"`
	Quantity           float64 `json:"quantity"`
	PricePerLiter      float64 `json:"price_per_liter"`
	CurrentOdometer    float64 `json:"current_odometer"`
	Location           string  `json:"location,omitempty"`
	VendorName         string  `json:"vendor_name,omitempty"`
	BillNumber         string  `json:"bill_number,omitempty"`
	Plant              string  `json:"plant"`
	AddedBy            string  `json:"added_by"`
	Remarks            string  `json:"remarks,omitempty"`
}

// Validate checks required fields and positive quantities.
func (in *CreateFuelInput) Validate() error {
	required := map[string]string{
		"vehicle_id":          in.VehicleID,
		"registration_number": in.RegistrationNumber,
		"fuel_type":           in.FuelType,
		"plant":               in.Plant,
		"added_by":            in.AddedBy,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if in.PricePerLiter <= 0 {
		return fmt.Errorf("price_per_liter must be positive")
	}
	if in.CurrentOdometer < 0 {
		return fmt.Errorf("current_odometer cannot be negative")
	}
	return nil
}

// FuelUpdate is the set of editable fields on a fuel record. Derived
// efficiency fields are frozen at creation and never part of an update;
// total cost is recomputed when quantity or price change.
type FuelUpdate struct {
	FuelType        *string  `json:"fuel_type,omitempty"`
	Quantity        *float64 `json:"quantity,omitempty"`
	PricePerLiter   *float64 `json:"price_per_liter,omitempty"`
	CurrentOdometer *float64 `json:"current_odometer,omitempty"`
	Location        *string  `json:"location,omitempty"`
	VendorName      *string  `json:"vendor_name,omitempty"`
	BillNumber      *string  `json:"bill_number,omitempty"`
	Remarks         *string  `json:"remarks,omitempty"`
}

// FuelStats aggregates fuel consumption. TotalCost, TotalLiters and
// RefuelsCount cover the current calendar month; AvgEfficiency averages all
// historical records that have a defined efficiency.
type FuelStats struct {
	TotalCost     float64 `json:"total_cost"`
	TotalLiters   float64 `json:"total_liters"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	RefuelsCount  int     `json:"refuels_count"`
}
