package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Aidyn-B/Learning_Dashboard/internal/services"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/logger"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

// GET /notifications
func (h *NotificationHandler) GetUserNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	notifications, err := h.Service.GetUserNotifications(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch notifications: %v", err)
		http.Error(w, "Failed to get notifications", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(notifications)
}

// POST /notifications/{id}/read
func (h *NotificationHandler) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notifID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid notification ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.MarkNotificationAsRead(r.Context(), notifID); err != nil {
		logger.Log.Errorf("Failed to mark notification as read: %v", err)
		http.Error(w, "Failed to mark as read", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Notification marked as read"})
}

// POST /notifications/read-all
func (h *NotificationHandler) MarkAllReadHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	count, err := h.Service.MarkAllNotificationsRead(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to mark all notifications as read: %v", err)
		http.Error(w, "Failed to mark notifications as read", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"message": fmt.Sprintf("Marked %d notifications as read", count),
	})
}

// DELETE /notifications
func (h *NotificationHandler) DeleteAllNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	if _, err := h.Service.DeleteAllNotifications(r.Context(), userID); err != nil {
		logger.Log.Errorf("Failed to delete notifications: %v", err)
		http.Error(w, "Failed to delete notifications", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "All notifications deleted"})
}
