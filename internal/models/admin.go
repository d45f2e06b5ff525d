package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin represents a back-office administrator account. Plant is empty for
// the super admin, who sees every plant.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID      string             `bson:"admin_id" json:"admin_id"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Plant        string             `bson:"plant,omitempty" json:"plant,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	AdminID  string `json:"admin_id"`
	Password string `json:"password"`
}

// AdminProfile is the public view of an admin returned after login.
type AdminProfile struct {
	AdminID string `json:"admin_id"`
	Name    string `json:"name"`
	Plant   string `json:"plant,omitempty"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}

// Claims represents JWT claims for an admin session
type Claims struct {
	AdminID string `json:"admin_id"`
	Name    string `json:"name"`
	Plant   string `json:"plant,omitempty"`
	Exp     int64  `json:"exp"`
}
