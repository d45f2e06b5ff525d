package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// DriverHandler handles driver registry operations
type DriverHandler struct {
	drivers db.DriverCollection
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(drivers db.DriverCollection) *DriverHandler {
	return &DriverHandler{drivers: drivers}
}

// Drivers dispatches list/create/update/delete for drivers.
func (h *DriverHandler) Drivers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		drivers, err := h.drivers.FindDrivers(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, drivers)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.remove(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DriverHandler) create(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if driver.DriverID == "" || driver.Name == "" || driver.LicenseNumber == "" {
		http.Error(w, "Driver ID, name and license number are required", http.StatusBadRequest)
		return
	}
	if !models.IsValidDriverStatus(driver.Status) {
		http.Error(w, "Invalid driver status", http.StatusBadRequest)
		return
	}

	id, err := h.drivers.InsertDriver(r.Context(), driver)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *DriverHandler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
		models.Driver
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}
	if !models.IsValidDriverStatus(req.Status) {
		http.Error(w, "Invalid driver status", http.StatusBadRequest)
		return
	}

	if err := h.drivers.UpdateDriver(r.Context(), req.ID, req.Driver); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Driver updated"})
}

func (h *DriverHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	if err := h.drivers.DeleteDriver(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Driver deleted"})
}
