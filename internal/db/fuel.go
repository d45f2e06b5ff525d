package db

import (
	"context"
	"time"

	"github.com/ukydev/fleet-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FuelCollection defines the interface for fuel record database operations
type FuelCollection interface {
	InsertFuelRecord(ctx context.Context, record models.FuelRecord) (string, error)
	FindFuelRecords(ctx context.Context) ([]models.FuelRecord, error)
	FindFuelRecordsByVehicle(ctx context.Context, vehicleID string) ([]models.FuelRecord, error)
	FindFuelRecordByID(ctx context.Context, id string) (*models.FuelRecord, error)
	UpdateFuelRecord(ctx context.Context, id string, update models.FuelUpdate, totalCost *float64) error
	DeleteFuelRecord(ctx context.Context, id string) error
}

// MongoFuelCollection implements FuelCollection for MongoDB
type MongoFuelCollection struct {
	Collection *mongo.Collection
}

// InsertFuelRecord inserts a fuel record into the collection.
func (c *MongoFuelCollection) InsertFuelRecord(ctx context.Context, record models.FuelRecord) (string, error) {
	record.CreatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// FindFuelRecords returns all fuel records, newest refuel first.
func (c *MongoFuelCollection) FindFuelRecords(ctx context.Context) ([]models.FuelRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "refuel_date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.FuelRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindFuelRecordsByVehicle returns a vehicle's fuel records, newest refuel
// first, so the first element is the prior fill-up.
func (c *MongoFuelCollection) FindFuelRecordsByVehicle(ctx context.Context, vehicleID string) ([]models.FuelRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "refuel_date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.FuelRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindFuelRecordByID finds a fuel record by its ID.
func (c *MongoFuelCollection) FindFuelRecordByID(ctx context.Context, id string) (*models.FuelRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var record models.FuelRecord
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdateFuelRecord patches a fuel record's editable fields. The caller passes
// the recomputed total cost when quantity or price changed; derived
// efficiency fields are never touched.
func (c *MongoFuelCollection) UpdateFuelRecord(ctx context.Context, id string, update models.FuelUpdate, totalCost *float64) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	patch := bson.M{}
	if update.FuelType != nil {
		patch["fuel_type"] = *update.FuelType
	}
	if update.Quantity != nil {
		patch["quantity"] = *update.Quantity
	}
	if update.PricePerLiter != nil {
		patch["price_per_liter"] = *update.PricePerLiter
	}
	if update.CurrentOdometer != nil {
		patch["current_odometer"] = *update.CurrentOdometer
	}
	if update.Location != nil {
		patch["location"] = *update.Location
	}
	if update.VendorName != nil {
		patch["vendor_name"] = *update.VendorName
	}
	if update.BillNumber != nil {
		patch["bill_number"] = *update.BillNumber
	}
	if update.Remarks != nil {
		patch["remarks"] = *update.Remarks
	}
	if totalCost != nil {
		patch["total_cost"] = *totalCost
	}
	if len(patch) == 0 {
		return nil
	}

	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFuelRecord deletes a fuel record by its ID.
func (c *MongoFuelCollection) DeleteFuelRecord(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
