package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverStatus is the reservation/operational state of a driver.
type DriverStatus string

const (
	DriverAvailable DriverStatus = "Available"
	DriverOnDuty    DriverStatus = "On Duty"
	DriverOnLeave   DriverStatus = "On Leave"
	DriverInactive  DriverStatus = "Inactive"
)

// IsValidDriverStatus checks if a driver status is valid
func IsValidDriverStatus(status DriverStatus) bool {
	switch status {
	case DriverAvailable, DriverOnDuty, DriverOnLeave, DriverInactive:
		return true
	default:
		return false
	}
}

// Driver represents a fleet driver.
type Driver struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DriverID         string             `bson:"driver_id" json:"driver_id"`
	Name             string             `bson:"name" json:"name"`
	PhoneNumber      string             `bson:"phone_number" json:"phone_number"`
	DOB              string             `bson:"dob,omitempty" json:"dob,omitempty"`
	BloodGroup       string             `bson:"blood_group,omitempty" json:"blood_group,omitempty"`
	Photo            string             `bson:"photo,omitempty" json:"photo,omitempty"`
	LicenseNumber    string             `bson:"license_number" json:"license_number"`
	LicenseType      []string           `bson:"license_type" json:"license_type"` // "LMV", "HMV", "Transport"
	LicenseIssueDate string             `bson:"license_issue_date,omitempty" json:"license_issue_date,omitempty"`
	LicenseValidity  string             `bson:"license_validity,omitempty" json:"license_validity,omitempty"`
	LicenseIssuedBy  string             `bson:"license_issued_by,omitempty" json:"license_issued_by,omitempty"`
	Status           DriverStatus       `bson:"status" json:"status"`
	AddedBy          string             `bson:"added_by,omitempty" json:"added_by,omitempty"`
	AddedDate        string             `bson:"added_date,omitempty" json:"added_date,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}
