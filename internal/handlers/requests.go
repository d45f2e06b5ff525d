package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/fleet"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// RequestHandler handles vehicle request operations
type RequestHandler struct {
	lifecycle *fleet.Lifecycle
}

// NewRequestHandler creates a new vehicle request handler
func NewRequestHandler(lifecycle *fleet.Lifecycle) *RequestHandler {
	return &RequestHandler{lifecycle: lifecycle}
}

// Requests lists requests on GET and submits a new one on POST.
func (h *RequestHandler) Requests(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *RequestHandler) list(w http.ResponseWriter, r *http.Request) {
	status := models.RequestStatus(r.URL.Query().Get("status"))
	if status != "" && !models.IsValidRequestStatus(status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}
	plant := r.URL.Query().Get("plant")

	requests, err := h.lifecycle.ListRequests(r.Context(), status, plant)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.lifecycle.CreateRequest(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// UpdateStatus drives a request through approval, rejection or completion.
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID            string               `json:"id"`
		Status        models.RequestStatus `json:"status"`
		VehicleID     string               `json:"vehicle_id,omitempty"`
		DriverID      string               `json:"driver_id,omitempty"`
		StartOdometer *float64             `json:"start_odometer,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.Status == "" {
		http.Error(w, "ID and status are required", http.StatusBadRequest)
		return
	}

	err := h.lifecycle.UpdateRequestStatus(r.Context(), req.ID, req.Status, req.VehicleID, req.DriverID, req.StartOdometer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Request status updated"})
}

// UpdateDetails edits the descriptive fields of a request.
func (h *RequestHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID      string               `json:"id"`
		Updates models.RequestUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	if err := h.lifecycle.UpdateRequestDetails(r.Context(), req.ID, req.Updates); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Request details updated"})
}
