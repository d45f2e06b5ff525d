package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validFuelInput() CreateFuelInput {
	return CreateFuelInput{
		VehicleID:          "veh-1",
		RegistrationNumber: "MH12AB1234",
		FuelType:           "Diesel",
		Quantity:           30,
		PricePerLiter:      92.5,
		CurrentOdometer:    5000,
		Plant:              "Forging",
		AddedBy:            "admin_forging",
	}
}

func TestCreateFuelInput_Validate(t *testing.T) {
	in := validFuelInput()
	assert.NoError(t, in.Validate())
}

func TestCreateFuelInput_Validate_Rejections(t *testing.T) {
	in := validFuelInput()
	in.RegistrationNumber = ""
	assert.Error(t, in.Validate())

	in = validFuelInput()
	in.Quantity = -5
	assert.Error(t, in.Validate())

	in = validFuelInput()
	in.PricePerLiter = 0
	assert.Error(t, in.Validate())

	in = validFuelInput()
	in.CurrentOdometer = -1
	assert.Error(t, in.Validate())

	// Zero odometer is fine for a brand new vehicle.
	in = validFuelInput()
	in.CurrentOdometer = 0
	assert.NoError(t, in.Validate())
}
