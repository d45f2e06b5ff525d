package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/auth"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *auth.Service
	admins      db.AdminCollection
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, admins db.AdminCollection) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		admins:      admins,
	}
}

// Login handles admin login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var loginReq models.LoginRequest
	if err := json.Unmarshal(body, &loginReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if loginReq.AdminID == "" || loginReq.Password == "" {
		http.Error(w, "Admin ID and password are required", http.StatusBadRequest)
		return
	}

	admin, err := h.admins.FindAdminByAdminID(r.Context(), loginReq.AdminID)
	if err != nil {
		http.Error(w, "Invalid Admin ID or Password", http.StatusUnauthorized)
		return
	}

	if !h.authService.CheckPassword(loginReq.Password, admin.PasswordHash) {
		http.Error(w, "Invalid Admin ID or Password", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(admin)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	log.WithField("admin_id", admin.AdminID).Info("admin logged in")

	response := models.LoginResponse{
		Token: token,
		Admin: models.AdminProfile{
			AdminID: admin.AdminID,
			Name:    admin.Name,
			Plant:   admin.Plant,
		},
	}
	writeJSON(w, http.StatusOK, response)
}
