package db

import (
	"context"
	"time"

	"github.com/ukydev/fleet-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DriverCollection defines the interface for driver database operations
type DriverCollection interface {
	InsertDriver(ctx context.Context, driver models.Driver) (string, error)
	FindDrivers(ctx context.Context) ([]models.Driver, error)
	FindDriverByID(ctx context.Context, id string) (*models.Driver, error)
	UpdateDriver(ctx context.Context, id string, driver models.Driver) error
	SetDriverStatus(ctx context.Context, id string, status models.DriverStatus) error
	ReserveDriver(ctx context.Context, id string) error
	DeleteDriver(ctx context.Context, id string) error
}

// MongoDriverCollection implements DriverCollection for MongoDB
type MongoDriverCollection struct {
	Collection *mongo.Collection
}

// InsertDriver inserts a new driver, rejecting duplicate license numbers.
func (c *MongoDriverCollection) InsertDriver(ctx context.Context, driver models.Driver) (string, error) {
	err := c.Collection.FindOne(ctx, bson.M{"license_number": driver.LicenseNumber}).Err()
	if err == nil {
		return "", ErrDuplicateLicense
	}
	if err != mongo.ErrNoDocuments {
		return "", err
	}

	driver.CreatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, driver)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateLicense
		}
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// FindDrivers returns all drivers.
func (c *MongoDriverCollection) FindDrivers(ctx context.Context) ([]models.Driver, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var drivers []models.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

// FindDriverByID finds a driver by their ID.
func (c *MongoDriverCollection) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var driver models.Driver
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// UpdateDriver replaces a driver's fields by their ID.
func (c *MongoDriverCollection) UpdateDriver(ctx context.Context, id string, driver models.Driver) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	driver.ID = objectID
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": driver})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDriverStatus sets a driver's status unconditionally.
func (c *MongoDriverCollection) SetDriverStatus(ctx context.Context, id string, status models.DriverStatus) error {
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

// ReserveDriver moves a driver from Available to On Duty, with the current
// status in the filter so a busy driver cannot be double-booked.
func (c *MongoDriverCollection) ReserveDriver(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "status": models.DriverAvailable},
		bson.M{"$set": bson.M{"status": models.DriverOnDuty}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if err := c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Err(); err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return ErrDriverUnavailable
	}
	return nil
}

// DeleteDriver deletes a driver by their ID.
func (c *MongoDriverCollection) DeleteDriver(ctx context.Context, id string) error {
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
