package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-backoffice/internal/auth"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/fleet"
	"github.com/ukydev/fleet-backoffice/internal/handlers"
	"github.com/ukydev/fleet-backoffice/internal/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	log.Info("Connected to MongoDB")

	database := db.Database(client)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	drivers := &db.MongoDriverCollection{Collection: database.Collection("drivers")}
	requests := &db.MongoRequestCollection{Collection: database.Collection("vehicleRequests")}
	trips := &db.MongoTripCollection{Collection: database.Collection("trips")}
	fuelRecords := &db.MongoFuelCollection{Collection: database.Collection("fuelRecords")}
	notifications := &db.MongoNotificationCollection{Collection: database.Collection("notifications")}
	admins := &db.MongoAdminCollection{Collection: database.Collection("admins")}
	sequences := &db.MongoSequenceCollection{Collection: database.Collection("counters")}

	assets := &fleet.Availability{Vehicles: vehicles, Drivers: drivers}
	lifecycle := fleet.NewLifecycle(requests, trips, sequences, assets, &db.MongoSessionRunner{Client: client})
	fuelService := fleet.NewFuelService(fuelRecords)
	notifier := fleet.NewNotifier(vehicles, notifications)

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	authHandler := handlers.NewAuthHandler(authService, admins)
	requestHandler := handlers.NewRequestHandler(lifecycle)
	tripHandler := handlers.NewTripHandler(lifecycle)
	fuelHandler := handlers.NewFuelHandler(fuelService)
	vehicleHandler := handlers.NewVehicleHandler(vehicles)
	driverHandler := handlers.NewDriverHandler(drivers)
	notificationHandler := handlers.NewNotificationHandler(notifier, notifications)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/requests", requestHandler.Requests)
	mux.HandleFunc("/api/requests/status", requestHandler.UpdateStatus)
	mux.HandleFunc("/api/requests/details", requestHandler.UpdateDetails)
	mux.HandleFunc("/api/trips", tripHandler.Trips)
	mux.HandleFunc("/api/trips/assign", tripHandler.Assign)
	mux.HandleFunc("/api/trips/status", tripHandler.UpdateStatus)
	mux.HandleFunc("/api/trips/details", tripHandler.UpdateDetails)
	mux.HandleFunc("/api/fuel", fuelHandler.Records)
	mux.HandleFunc("/api/fuel/stats", fuelHandler.Stats)
	mux.HandleFunc("/api/vehicles", vehicleHandler.Vehicles)
	mux.HandleFunc("/api/vehicles/by-regno", vehicleHandler.ByRegNo)
	mux.HandleFunc("/api/drivers", driverHandler.Drivers)
	mux.HandleFunc("/api/notifications", notificationHandler.Notifications)
	mux.HandleFunc("/api/notifications/sync", notificationHandler.Sync)
	mux.HandleFunc("/api/notifications/unread-count", notificationHandler.UnreadCount)
	mux.HandleFunc("/api/notifications/read", notificationHandler.MarkRead)
	mux.HandleFunc("/api/notifications/read-all", notificationHandler.MarkAllRead)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = rateLimiter.RateLimit(300, 60)(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
