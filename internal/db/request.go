package db

import (
	"context"

	"github.com/ukydev/fleet-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RequestCollection defines the interface for vehicle request database operations
type RequestCollection interface {
	InsertRequest(ctx context.Context, request models.VehicleRequest) (string, error)
	FindRequests(ctx context.Context, status models.RequestStatus) ([]models.VehicleRequest, error)
	FindRequestByID(ctx context.Context, id string) (*models.VehicleRequest, error)
	FindRequestByRequestID(ctx context.Context, requestID string) (*models.VehicleRequest, error)
	SetRequestStatus(ctx context.Context, id string, status models.RequestStatus, vehicleID, driverID string) error
	UpdateRequestDetails(ctx context.Context, id string, update models.RequestUpdate) error
}

// MongoRequestCollection implements RequestCollection for MongoDB
type MongoRequestCollection struct {
	Collection *mongo.Collection
}

// InsertRequest inserts a new vehicle request.
func (c *MongoRequestCollection) InsertRequest(ctx context.Context, request models.VehicleRequest) (string, error) {
	res, err := c.Collection.InsertOne(ctx, request)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// FindRequests returns requests newest first, optionally filtered by status.
func (c *MongoRequestCollection) FindRequests(ctx context.Context, status models.RequestStatus) ([]models.VehicleRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.VehicleRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// FindRequestByID finds a request by its ID.
func (c *MongoRequestCollection) FindRequestByID(ctx context.Context, id string) (*models.VehicleRequest, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var request models.VehicleRequest
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindRequestByRequestID finds a request by its human-readable request ID.
func (c *MongoRequestCollection) FindRequestByRequestID(ctx context.Context, requestID string) (*models.VehicleRequest, error) {
	var request models.VehicleRequest
	err := c.Collection.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// SetRequestStatus patches a request's status, binding the vehicle and driver
// when provided.
func (c *MongoRequestCollection) SetRequestStatus(ctx context.Context, id string, status models.RequestStatus, vehicleID, driverID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	patch := bson.M{"status": status}
	if vehicleID != "" {
		patch["vehicle_id"] = vehicleID
	}
	if driverID != "" {
		patch["driver_id"] = driverID
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

// UpdateRequestDetails patches the whitelisted descriptive fields of a request.
func (c *MongoRequestCollection) UpdateRequestDetails(ctx context.Context, id string, update models.RequestUpdate) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	patch := bson.M{}
	setIf := func(key string, value *string) {
		if value != nil {
			patch[key] = *value
		}
	}
	setIf("requester_name", update.RequesterName)
	setIf("employee_id", update.EmployeeID)
	setIf("department", update.Department)
	setIf("plant", update.Plant)
	setIf("contact_number", update.ContactNumber)
	setIf("purpose", update.Purpose)
	setIf("priority", update.Priority)
	setIf("pickup_location", update.PickupLocation)
	setIf("drop_location", update.DropLocation)
	setIf("trip_type", update.TripType)
	setIf("vehicle_type", update.VehicleType)
	setIf("booking_date_time", update.BookingDateTime)
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
