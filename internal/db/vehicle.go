package db

import (
	"context"
	"time"

	"github.com/ukydev/fleet-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// VehicleCollection defines the interface for vehicle database operations
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	FindVehicles(ctx context.Context) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	FindVehicleByRegNo(ctx context.Context, registrationNumber string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	SetVehicleStatus(ctx context.Context, id string, status models.VehicleStatus) error
	ReserveVehicle(ctx context.Context, id string) error
	DeleteVehicle(ctx context.Context, id string) error
}

// MongoVehicleCollection implements VehicleCollection for MongoDB
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a new vehicle, rejecting duplicate registration numbers.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	err := c.Collection.FindOne(ctx, bson.M{"registration_number": vehicle.RegistrationNumber}).Err()
	if err == nil {
		return "", ErrDuplicateRegistration
	}
	if err != mongo.ErrNoDocuments {
		return "", err
	}

	vehicle.CreatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, vehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateRegistration
		}
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// FindVehicles returns all vehicles.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindVehicleByID finds a vehicle by its ID.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindVehicleByRegNo finds a vehicle by its registration number.
func (c *MongoVehicleCollection) FindVehicleByRegNo(ctx context.Context, registrationNumber string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := c.Collection.FindOne(ctx, bson.M{"registration_number": registrationNumber}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle replaces a vehicle's fields by its ID.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	vehicle.ID = objectID
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": vehicle})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetVehicleStatus sets a vehicle's status unconditionally. Used to release
// a vehicle back to Active; setting Active on an already-free vehicle is harmless.
func (c *MongoVehicleCollection) SetVehicleStatus(ctx context.Context, id string, status models.VehicleStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReserveVehicle moves a vehicle from Active to On Duty. The status is part
// of the filter, so a vehicle already reserved by a concurrent approval
// cannot be double-booked.
func (c *MongoVehicleCollection) ReserveVehicle(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "status": models.VehicleActive},
		bson.M{"$set": bson.M{"status": models.VehicleOnDuty}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if err := c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Err(); err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return ErrVehicleUnavailable
	}
	return nil
}

// DeleteVehicle deletes a vehicle by its ID. Child records referencing the
// vehicle are left in place.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
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
