package fleet

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// Notifier scans vehicle compliance documents for expiry and emits
// deduplicated notifications. It runs on demand and is safe to re-run:
// at most one unread notification exists per (vehicle, document) pair.
type Notifier struct {
	Vehicles      db.VehicleCollection
	Notifications db.NotificationCollection

	// Now is the clock used to decide what counts as expired.
	Now func() time.Time
}

// NewNotifier wires a Notifier with a real clock.
func NewNotifier(vehicles db.VehicleCollection, notifications db.NotificationCollection) *Notifier {
	return &Notifier{Vehicles: vehicles, Notifications: notifications, Now: time.Now}
}

// SyncExpiries checks every vehicle's compliance dates against today.
// Expiry dates are ISO date strings, so the comparison is lexicographic and
// a document expiring today already counts as expired. An unread
// notification for the same pair suppresses the insert; a read one does
// not, so a renewed-and-lapsed document alerts again.
func (n *Notifier) SyncExpiries(ctx context.Context) error {
	vehicles, err := n.Vehicles.FindVehicles(ctx)
	if err != nil {
		return err
	}

	now := n.Now()
	today := now.UTC().Format("2006-01-02")
	created := 0

	for _, vehicle := range vehicles {
		for _, check := range vehicle.ExpiryChecks() {
			if check.Date == "" || check.Date > today {
				continue
			}

			exists, err := n.Notifications.HasUnread(ctx, vehicle.ID.Hex(), check.Type)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			notification := models.Notification{
				Type:               check.Type,
				VehicleID:          vehicle.ID.Hex(),
				RegistrationNumber: vehicle.RegistrationNumber,
				Title:              fmt.Sprintf("%s Expired", check.Label),
				Message: fmt.Sprintf("The %s for vehicle %s (%s) has expired on %s.",
					check.Label, vehicle.RegistrationNumber, vehicle.Model, check.Date),
				Status:    models.NotificationUnread,
				CreatedAt: now,
			}
			if err := n.Notifications.InsertNotification(ctx, notification); err != nil {
				return err
			}
			created++
		}
	}

	if created > 0 {
		log.WithField("count", created).Info("expiry notifications created")
	}
	return nil
}
