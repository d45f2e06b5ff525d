// Command seed resets the admins collection and inserts the plant admin
// accounts. Run it once against a fresh database before starting fleetd.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

type seedAccount struct {
	adminID  string
	password string
	name     string
	plant    string
}

var seedAccounts = []seedAccount{
	{adminID: "cslsuperadmin", password: "cslsuperadmin", name: "Super Admin"},
	{adminID: "admin_seamless", password: "admin123", name: "Seamless Admin", plant: "Seamsless"},
	{adminID: "admin_forging", password: "admin123", name: "Forging Admin", plant: "Forging"},
	{adminID: "admin_main", password: "admin123", name: "Main Plant Admin", plant: "Main Plant (SMS)"},
	{adminID: "admin_bright", password: "admin123", name: "Bright Bar Admin", plant: "Bright Bar"},
	{adminID: "admin_flat", password: "admin123", name: "Flat Bar Admin", plant: "Flat Bar"},
	{adminID: "admin_wire", password: "admin123", name: "Wire Plant Admin", plant: "Wire Plant"},
	{adminID: "admin_main2", password: "admin123", name: "Main Plant 2 Admin", plant: "Main Plant 2 ( SMS 2 )"},
	{adminID: "admin_40inch", password: "admin123", name: "40Inch Mill Admin", plant: "40\"Inch Mill"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	admins := &db.MongoAdminCollection{Collection: db.Database(client).Collection("admins")}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := admins.DeleteAllAdmins(ctx); err != nil {
		log.Fatalf("Failed to clear admins: %v", err)
	}

	for _, account := range seedAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", account.adminID, err)
		}

		admin := models.Admin{
			AdminID:      account.adminID,
			PasswordHash: string(hash),
			Name:         account.name,
			Plant:        account.plant,
		}
		if err := admins.InsertAdmin(ctx, admin); err != nil {
			log.Fatalf("Failed to insert admin %s: %v", account.adminID, err)
		}
		log.WithFields(log.Fields{"admin_id": account.adminID, "plant": account.plant}).Info("Seeded admin account")
	}

	log.Infof("Successfully seeded %d admin accounts", len(seedAccounts))
}
