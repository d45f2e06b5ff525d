package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/fleet"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// NotificationHandler handles compliance notification operations
type NotificationHandler struct {
	notifier      *fleet.Notifier
	notifications db.NotificationCollection
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifier *fleet.Notifier, notifications db.NotificationCollection) *NotificationHandler {
	return &NotificationHandler{notifier: notifier, notifications: notifications}
}

// Notifications lists notifications, optionally filtered by read status.
func (h *NotificationHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := models.NotificationStatus(r.URL.Query().Get("status"))
	if status != "" && status != models.NotificationUnread && status != models.NotificationRead {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	notifications, err := h.notifications.FindNotifications(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// Sync runs the expiry scan. Safe to call on every page load.
func (h *NotificationHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.notifier.SyncExpiries(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Expiry sync completed"})
}

// UnreadCount returns the number of unread notifications.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := h.notifications.CountUnread(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// MarkRead marks a single notification as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification as read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := h.notifications.MarkAllRead(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": count})
}
