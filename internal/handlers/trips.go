package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ukydev/fleet-backoffice/internal/fleet"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// TripHandler handles trip operations
type TripHandler struct {
	lifecycle *fleet.Lifecycle
}

// NewTripHandler creates a new trip handler
func NewTripHandler(lifecycle *fleet.Lifecycle) *TripHandler {
	return &TripHandler{lifecycle: lifecycle}
}

// Trips lists trips on GET and records a direct internal movement on POST.
func (h *TripHandler) Trips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		trips, err := h.lifecycle.ListTrips(r.Context(), r.URL.Query().Get("plant"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, trips)
	case http.MethodPost:
		var in models.CreateTripInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		id, err := h.lifecycle.CreateTrip(r.Context(), in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Assign binds a vehicle and driver to an existing trip.
func (h *TripHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID            string            `json:"id"`
		VehicleID     string            `json:"vehicle_id"`
		DriverID      string            `json:"driver_id"`
		Status        models.TripStatus `json:"status"`
		StartOdometer *float64          `json:"start_odometer,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" || !models.IsValidTripStatus(req.Status) {
		http.Error(w, "ID and a valid status are required", http.StatusBadRequest)
		return
	}

	err := h.lifecycle.AssignVehicle(r.Context(), req.ID, req.VehicleID, req.DriverID, req.Status, req.StartOdometer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle assigned"})
}

// UpdateStatus drives a trip through the state machine; completion releases
// the bound assets and syncs the originating request.
func (h *TripHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID          string            `json:"id"`
		Status      models.TripStatus `json:"status"`
		EndTime     *time.Time        `json:"end_time,omitempty"`
		EndOdometer *float64          `json:"end_odometer,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" || !models.IsValidTripStatus(req.Status) {
		http.Error(w, "ID and a valid status are required", http.StatusBadRequest)
		return
	}

	err := h.lifecycle.UpdateTripStatus(r.Context(), req.ID, req.Status, req.EndTime, req.EndOdometer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Trip status updated"})
}

// UpdateDetails edits the descriptive fields of a trip.
func (h *TripHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID      string            `json:"id"`
		Updates models.TripUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	if err := h.lifecycle.UpdateTripDetails(r.Context(), req.ID, req.Updates); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Trip details updated"})
}
