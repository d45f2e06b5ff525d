package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// VehicleHandler handles vehicle registry operations
type VehicleHandler struct {
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// Vehicles dispatches list/create/update/delete for vehicles.
func (h *VehicleHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		vehicles, err := h.vehicles.FindVehicles(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, vehicles)
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

func (h *VehicleHandler) create(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if vehicle.RegistrationNumber == "" || vehicle.Type == "" || vehicle.Model == "" {
		http.Error(w, "Registration number, type and model are required", http.StatusBadRequest)
		return
	}
	if !models.IsValidVehicleStatus(vehicle.Status) {
		http.Error(w, "Invalid vehicle status", http.StatusBadRequest)
		return
	}

	id, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *VehicleHandler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
		models.Vehicle
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}
	if !models.IsValidVehicleStatus(req.Status) {
		http.Error(w, "Invalid vehicle status", http.StatusBadRequest)
		return
	}

	if err := h.vehicles.UpdateVehicle(r.Context(), req.ID, req.Vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle updated"})
}

func (h *VehicleHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

// ByRegNo looks up a vehicle by its registration number.
func (h *VehicleHandler) ByRegNo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	regNo := r.URL.Query().Get("registration_number")
	if regNo == "" {
		http.Error(w, "Registration number is required", http.StatusBadRequest)
		return
	}

	vehicle, err := h.vehicles.FindVehicleByRegNo(r.Context(), regNo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}
