package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/fleet"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, db.ErrDuplicateRegistration),
		errors.Is(err, db.ErrDuplicateLicense),
		errors.Is(err, db.ErrDuplicateAdmin),
		errors.Is(err, db.ErrVehicleUnavailable),
		errors.Is(err, db.ErrDriverUnavailable),
		errors.Is(err, fleet.ErrIllegalTransition),
		errors.Is(err, fleet.ErrTerminalState):
		status = http.StatusConflict
	case errors.Is(err, fleet.ErrMissingAssignment),
		errors.Is(err, fleet.ErrMissingEndOdometer),
		errors.Is(err, fleet.ErrOdometerRegression),
		errors.Is(err, models.ErrInvalidContactNumber):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
