package db

import (
	"context"
	"time"

	"github.com/ukydev/fleet-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminCollection defines the interface for admin account database operations
type AdminCollection interface {
	InsertAdmin(ctx context.Context, admin models.Admin) error
	FindAdminByAdminID(ctx context.Context, adminID string) (*models.Admin, error)
	DeleteAllAdmins(ctx context.Context) error
}

// MongoAdminCollection implements AdminCollection for MongoDB
type MongoAdminCollection struct {
	Collection *mongo.Collection
}

// InsertAdmin inserts a new admin account, rejecting duplicate admin IDs.
func (c *MongoAdminCollection) InsertAdmin(ctx context.Context, admin models.Admin) error {
	err := c.Collection.FindOne(ctx, bson.M{"admin_id": admin.AdminID}).Err()
	if err == nil {
		return ErrDuplicateAdmin
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	admin.CreatedAt = time.Now()
	_, err = c.Collection.InsertOne(ctx, admin)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateAdmin
	}
	return err
}

// FindAdminByAdminID finds an admin by their admin ID.
func (c *MongoAdminCollection) FindAdminByAdminID(ctx context.Context, adminID string) (*models.Admin, error) {
	var admin models.Admin
	err := c.Collection.FindOne(ctx, bson.M{"admin_id": adminID}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// DeleteAllAdmins removes every admin account. Used by the seeder to start
// from a clean state.
func (c *MongoAdminCollection) DeleteAllAdmins(ctx context.Context) error {
	_, err := c.Collection.DeleteMany(ctx, bson.M{})
	return err
}
