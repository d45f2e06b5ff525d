package db

import (
	"context"
	"time"

	"github.com/ukydev/fleet-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TripCollection defines the interface for trip database operations
type TripCollection interface {
	InsertTrip(ctx context.Context, trip models.Trip) (string, error)
	FindTrips(ctx context.Context) ([]models.Trip, error)
	FindTripByID(ctx context.Context, id string) (*models.Trip, error)
	FindTripsByRequestID(ctx context.Context, requestID string) ([]models.Trip, error)
	AssignTrip(ctx context.Context, id string, vehicleID, driverID string, status models.TripStatus, startOdometer *float64) error
	SetTripStatus(ctx context.Context, id string, status models.TripStatus, endTime *time.Time, endOdometer *float64) error
	UpdateTripDetails(ctx context.Context, id string, update models.TripUpdate) error
	DeleteTrip(ctx context.Context, id string) error
}

// MongoTripCollection implements TripCollection for MongoDB
type MongoTripCollection struct {
	Collection *mongo.Collection
}

// InsertTrip inserts a trip record into the collection.
func (c *MongoTripCollection) InsertTrip(ctx context.Context, trip models.Trip) (string, error) {
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, trip)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// FindTrips returns all trips.
func (c *MongoTripCollection) FindTrips(ctx context.Context) ([]models.Trip, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trips []models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// FindTripByID finds a trip by its ID.
func (c *MongoTripCollection) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var trip models.Trip
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&trip)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// FindTripsByRequestID finds the trips linked to a request by its
// human-readable request ID. A request normally has at most one.
func (c *MongoTripCollection) FindTripsByRequestID(ctx context.Context, requestID string) ([]models.Trip, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{"request_id": requestID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trips []models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// AssignTrip binds a vehicle and driver to a trip.
func (c *MongoTripCollection) AssignTrip(ctx context.Context, id string, vehicleID, driverID string, status models.TripStatus, startOdometer *float64) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	patch := bson.M{
		"vehicle_id": vehicleID,
		"driver_id":  driverID,
		"status":     status,
		"updated_at": time.Now(),
	}
	if startOdometer != nil {
		patch["start_odometer"] = *startOdometer
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

// SetTripStatus patches a trip's status and, when provided, its end time and
// end odometer.
func (c *MongoTripCollection) SetTripStatus(ctx context.Context, id string, status models.TripStatus, endTime *time.Time, endOdometer *float64) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	patch := bson.M{"status": status, "updated_at": time.Now()}
	if endTime != nil {
		patch["end_time"] = *endTime
	}
	if endOdometer != nil {
		patch["end_odometer"] = *endOdometer
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

// UpdateTripDetails patches the whitelisted editable fields of a trip.
func (c *MongoTripCollection) UpdateTripDetails(ctx context.Context, id string, update models.TripUpdate) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	patch := bson.M{}
	if update.RequesterName != nil {
		patch["requester_name"] = *update.RequesterName
	}
	if update.RequesterDepartment != nil {
		patch["requester_department"] = *update.RequesterDepartment
	}
	if update.Purpose != nil {
		patch["purpose"] = *update.Purpose
	}
	if update.StartLocation != nil {
		patch["start_location"] = *update.StartLocation
	}
	if update.EndLocation != nil {
		patch["end_location"] = *update.EndLocation
	}
	if update.Notes != nil {
		patch["notes"] = *update.Notes
	}
	if update.StartOdometer != nil {
		patch["start_odometer"] = *update.StartOdometer
	}
	if update.EndOdometer != nil {
		patch["end_odometer"] = *update.EndOdometer
	}
	if len(patch) == 0 {
		return nil
	}
	patch["updated_at"] = time.Now()

	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTrip deletes a trip by its ID.
func (c *MongoTripCollection) DeleteTrip(ctx context.Context, id string) error {
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
