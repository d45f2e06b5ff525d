package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentType identifies which compliance document a notification is about.
type DocumentType string

const (
	DocumentRC        DocumentType = "RC"
	DocumentInsurance DocumentType = "INSURANCE"
	DocumentPUC       DocumentType = "PUC"
	DocumentFitness   DocumentType = "FITNESS"
	DocumentPermit    DocumentType = "PERMIT"
)

// NotificationStatus is the read state of a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification is one compliance alert for a (vehicle, document type) pair.
// At most one unread notification exists per pair at any time.
type Notification struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type               DocumentType       `bson:"type" json:"type"`
	VehicleID          string             `bson:"vehicle_id" json:"vehicle_id"`
	RegistrationNumber string             `bson:"registration_number" json:"registration_number"`
	Title              string             `bson:"title" json:"title"`
	Message            string             `bson:"message" json:"message"`
	Status             NotificationStatus `bson:"status" json:"status"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}
