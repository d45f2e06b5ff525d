package fleet

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// FuelService creates fuel records with derived efficiency and aggregates
// consumption statistics.
type FuelService struct {
	Records db.FuelCollection

	// Now is the clock used for refuel dates and the stats window.
	Now func() time.Time
}

// NewFuelService wires a FuelService with a real clock.
func NewFuelService(records db.FuelCollection) *FuelService {
	return &FuelService{Records: records, Now: time.Now}
}

// Create inserts a fuel record. Distance and efficiency are derived against
// the vehicle's most recent prior record and frozen from then on; efficiency
// is only defined when the distance and quantity are both positive.
func (s *FuelService) Create(ctx context.Context, in models.CreateFuelInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	record := models.FuelRecord{
		VehicleID:          in.VehicleID,
		RegistrationNumber: in.RegistrationNumber,
		DriverID:           in.DriverID,
		DriverName:         in.DriverName,
		FuelType:           in.FuelType,
		Quantity:           in.Quantity,
		PricePerLiter:      in.PricePerLiter,
		TotalCost:          in.PricePerLiter * in.Quantity,
		CurrentOdometer:    in.CurrentOdometer,
		RefuelDate:         s.Now(),
		Location:           in.Location,
		VendorName:         in.VendorName,
		BillNumber:         in.BillNumber,
		Plant:              in.Plant,
		AddedBy:            in.AddedBy,
		Remarks:            in.Remarks,
	}

	previous, err := s.Records.FindFuelRecordsByVehicle(ctx, in.VehicleID)
	if err != nil {
		return "", err
	}
	if len(previous) > 0 && previous[0].CurrentOdometer > 0 {
		lastOdometer := previous[0].CurrentOdometer
		distance := in.CurrentOdometer - lastOdometer
		record.LastOdometer = &lastOdometer
		record.DistanceCovered = &distance
		if distance > 0 && in.Quantity > 0 {
			efficiency := distance / in.Quantity
			record.FuelEfficiency = &efficiency
		}
	}

	id, err := s.Records.InsertFuelRecord(ctx, record)
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"vehicle_id":          in.VehicleID,
		"registration_number": in.RegistrationNumber,
		"quantity":            in.Quantity,
	}).Info("fuel record created")
	return id, nil
}

// List returns fuel records newest first, filtered by plant and vehicle when given.
func (s *FuelService) List(ctx context.Context, plant, vehicleID string) ([]models.FuelRecord, error) {
	var records []models.FuelRecord
	var err error
	if vehicleID != "" {
		records, err = s.Records.FindFuelRecordsByVehicle(ctx, vehicleID)
	} else {
		records, err = s.Records.FindFuelRecords(ctx)
	}
	if err != nil {
		return nil, err
	}
	if plant == "" {
		return records, nil
	}

	filtered := make([]models.FuelRecord, 0, len(records))
	for _, r := range records {
		if r.Plant == plant {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Update patches a fuel record. Total cost is recomputed when quantity or
// price change; the derived efficiency fields stay as computed at creation.
func (s *FuelService) Update(ctx context.Context, id string, update models.FuelUpdate) error {
	var totalCost *float64
	if update.Quantity != nil || update.PricePerLiter != nil {
		record, err := s.Records.FindFuelRecordByID(ctx, id)
		if err != nil {
			return err
		}
		quantity := record.Quantity
		if update.Quantity != nil {
			quantity = *update.Quantity
		}
		price := record.PricePerLiter
		if update.PricePerLiter != nil {
			price = *update.PricePerLiter
		}
		cost := price * quantity
		totalCost = &cost
	}
	return s.Records.UpdateFuelRecord(ctx, id, update, totalCost)
}

// Delete removes a fuel record.
func (s *FuelService) Delete(ctx context.Context, id string) error {
	return s.Records.DeleteFuelRecord(ctx, id)
}

// Stats aggregates fuel consumption, optionally scoped to a plant. Cost,
// volume and refuel count cover the current calendar month; the efficiency
// average spans all historical records that have a defined efficiency.
func (s *FuelService) Stats(ctx context.Context, plant string) (*models.FuelStats, error) {
	records, err := s.Records.FindFuelRecords(ctx)
	if err != nil {
		return nil, err
	}
	if plant != "" {
		filtered := records[:0]
		for _, r := range records {
			if r.Plant == plant {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	now := s.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &models.FuelStats{}
	var efficiencySum float64
	var efficiencyCount int
	for _, r := range records {
		if !r.RefuelDate.Before(startOfMonth) {
			stats.TotalCost += r.TotalCost
			stats.TotalLiters += r.Quantity
			stats.RefuelsCount++
		}
		if r.FuelEfficiency != nil {
			efficiencySum += *r.FuelEfficiency
			efficiencyCount++
		}
	}
	if efficiencyCount > 0 {
		stats.AvgEfficiency = efficiencySum / float64(efficiencyCount)
	}
	return stats, nil
}
