package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/fleet"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// FuelHandler handles fuel record operations
type FuelHandler struct {
	fuel *fleet.FuelService
}

// NewFuelHandler creates a new fuel record handler
func NewFuelHandler(fuel *fleet.FuelService) *FuelHandler {
	return &FuelHandler{fuel: fuel}
}

// Records dispatches list/create/update/delete for fuel records.
func (h *FuelHandler) Records(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
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

func (h *FuelHandler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.fuel.List(r.Context(), r.URL.Query().Get("plant"), r.URL.Query().Get("vehicle_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *FuelHandler) create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateFuelInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.fuel.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *FuelHandler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      string            `json:"id"`
		Updates models.FuelUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	if err := h.fuel.Update(r.Context(), req.ID, req.Updates); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Fuel record updated"})
}

func (h *FuelHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	if err := h.fuel.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Fuel record deleted"})
}

// Stats returns fuel consumption statistics, optionally scoped to a plant.
func (h *FuelHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.fuel.Stats(r.Context(), r.URL.Query().Get("plant"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
