package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleStatus is the reservation/operational state of a vehicle.
type VehicleStatus string

const (
	VehicleActive         VehicleStatus = "Active"
	VehicleOnDuty         VehicleStatus = "On Duty"
	VehicleInMaintenance  VehicleStatus = "In Maintenance"
	VehicleDecommissioned VehicleStatus = "Decommissioned"
)

// IsValidVehicleStatus checks if a vehicle status is valid
func IsValidVehicleStatus(status VehicleStatus) bool {
	switch status {
	case VehicleActive, VehicleOnDuty, VehicleInMaintenance, VehicleDecommissioned:
		return true
	default:
		return false
	}
}

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Identification
	RegistrationNumber string `bson:"registration_number" json:"registration_number"`
	ChassisNumber      string `bson:"chassis_number,omitempty" json:"chassis_number,omitempty"`
	EngineNumber       string `bson:"engine_number,omitempty" json:"engine_number,omitempty"`
	Type               string `bson:"type" json:"type"`                             // "Car", "Truck", "Bus", "2W", "JCB", "Hydra", "Dumper", "Tractor"
	Category           string `bson:"category,omitempty" json:"category,omitempty"` // "Pool", "Assigned", "Logistics", "Executive"
	Make               string `bson:"make,omitempty" json:"make,omitempty"`
	Model              string `bson:"model" json:"model"`
	Variant            string `bson:"variant,omitempty" json:"variant,omitempty"`
	ManufacturingYear  string `bson:"manufacturing_year,omitempty" json:"manufacturing_year,omitempty"`
	FuelType           string `bson:"fuel_type,omitempty" json:"fuel_type,omitempty"`       // "Petrol", "Diesel", "EV", "CNG"
	Transmission       string `bson:"transmission,omitempty" json:"transmission,omitempty"` // "Manual", "Automatic"

	// Compliance dates are ISO "YYYY-MM-DD" strings; empty means not recorded.
	RCExpiryDate          string `bson:"rc_expiry_date,omitempty" json:"rc_expiry_date,omitempty"`
	InsuranceProvider     string `bson:"insurance_provider,omitempty" json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string `bson:"insurance_policy_number,omitempty" json:"insurance_policy_number,omitempty"`
	InsuranceExpiryDate   string `bson:"insurance_expiry_date,omitempty" json:"insurance_expiry_date,omitempty"`
	PUCExpiryDate         string `bson:"puc_expiry_date,omitempty" json:"puc_expiry_date,omitempty"`
	FitnessExpiryDate     string `bson:"fitness_expiry_date,omitempty" json:"fitness_expiry_date,omitempty"`
	PermitType            string `bson:"permit_type,omitempty" json:"permit_type,omitempty"` // "National", "State", "Local"
	PermitExpiryDate      string `bson:"permit_expiry_date,omitempty" json:"permit_expiry_date,omitempty"`

	// Ownership
	OwnershipType      string `bson:"ownership_type,omitempty" json:"ownership_type,omitempty"` // "Company-owned", "Leased", "Vendor"
	AssignedDepartment string `bson:"assigned_department,omitempty" json:"assigned_department,omitempty"`
	AssignedDriver     string `bson:"assigned_driver,omitempty" json:"assigned_driver,omitempty"`
	LocationPlant      string `bson:"location_plant,omitempty" json:"location_plant,omitempty"`
	VendorName         string `bson:"vendor_name,omitempty" json:"vendor_name,omitempty"`

	Status    VehicleStatus `bson:"status" json:"status"`
	AddedBy   string        `bson:"added_by,omitempty" json:"added_by,omitempty"`
	Remarks   string        `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// ExpiryCheck pairs one of a vehicle's compliance documents with its expiry date.
type ExpiryCheck struct {
	Type  DocumentType
	Label string
	Date  string
}

// ExpiryChecks returns the vehicle's compliance documents in scan order.
// Documents without a recorded date carry an empty Date.
func (v *Vehicle) ExpiryChecks() []ExpiryCheck {
	return []ExpiryCheck{
		{Type: DocumentRC, Label: "RC", Date: v.RCExpiryDate},
		{Type: DocumentInsurance, Label: "Insurance", Date: v.InsuranceExpiryDate},
		{Type: DocumentPUC, Label: "PUC", Date: v.PUCExpiryDate},
		{Type: DocumentFitness, Label: "Fitness Certificate", Date: v.FitnessExpiryDate},
		{Type: DocumentPermit, Label: "Permit", Date: v.PermitExpiryDate},
	}
}
