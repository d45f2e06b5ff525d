package db

import (
	"context"

	"github.com/ukydev/fleet-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationCollection defines the interface for notification database operations
type NotificationCollection interface {
	InsertNotification(ctx context.Context, notification models.Notification) error
	FindNotifications(ctx context.Context, status models.NotificationStatus) ([]models.Notification, error)
	CountUnread(ctx context.Context) (int64, error)
	HasUnread(ctx context.Context, vehicleID string, docType models.DocumentType) (bool, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
}

// MongoNotificationCollection implements NotificationCollection for MongoDB
type MongoNotificationCollection struct {
	Collection *mongo.Collection
}

// InsertNotification inserts a notification into the collection.
func (c *MongoNotificationCollection) InsertNotification(ctx context.Context, notification models.Notification) error {
	_, err := c.Collection.InsertOne(ctx, notification)
	return err
}

// FindNotifications returns notifications newest first, optionally filtered
// by read status.
func (c *MongoNotificationCollection) FindNotifications(ctx context.Context, status models.NotificationStatus) ([]models.Notification, error) {
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

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications.
func (c *MongoNotificationCollection) CountUnread(ctx context.Context) (int64, error) {
	return c.Collection.CountDocuments(ctx, bson.M{"status": models.NotificationUnread})
}

// HasUnread reports whether an unread notification exists for the given
// vehicle and document type.
func (c *MongoNotificationCollection) HasUnread(ctx context.Context, vehicleID string, docType models.DocumentType) (bool, error) {
	count, err := c.Collection.CountDocuments(ctx, bson.M{
		"vehicle_id": vehicleID,
		"type":       docType,
		"status":     models.NotificationUnread,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkRead marks a notification as read.
func (c *MongoNotificationCollection) MarkRead(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": models.NotificationRead}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification as read and returns how many
// were updated.
func (c *MongoNotificationCollection) MarkAllRead(ctx context.Context) (int64, error) {
	result, err := c.Collection.UpdateMany(
		ctx,
		bson.M{"status": models.NotificationUnread},
		bson.M{"$set": bson.M{"status": models.NotificationRead}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
