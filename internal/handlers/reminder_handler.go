package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"github.com/Aidyn-B/Learning_Dashboard/internal/services"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/logger"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReminderHandler struct {
	Service *services.ReminderService
}

func NewReminderHandler(service *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{Service: service}
}

type reminderRequest struct {
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	ReminderType string    `json:"reminder_type"`
	Frequency    string    `json:"frequency"`
	NextReminder time.Time `json:"next_reminder"`
	GoalID       *string   `json:"goal_id"`
	IsActive     *bool     `json:"is_active"`
	EmailEnabled *bool     `json:"email_enabled"`
	InAppEnabled *bool     `json:"in_app_enabled"`
}

func (req *reminderRequest) toModel() (*models.Reminder, error) {
	reminder := &models.Reminder{
		Title:        req.Title,
		Message:      req.Message,
		ReminderType: req.ReminderType,
		Frequency:    req.Frequency,
		NextReminder: req.NextReminder,
		IsActive:     true,
		EmailEnabled: true,
		InAppEnabled: true,
	}
	if req.GoalID != nil {
		goalID, err := primitive.ObjectIDFromHex(*req.GoalID)
		if err != nil {
			return nil, err
		}
		reminder.GoalID = &goalID
	}
	if req.IsActive != nil {
		reminder.IsActive = *req.IsActive
	}
	if req.EmailEnabled != nil {
		reminder.EmailEnabled = *req.EmailEnabled
	}
	if req.InAppEnabled != nil {
		reminder.InAppEnabled = *req.InAppEnabled
	}
	return reminder, nil
}

// POST /reminders
func (h *ReminderHandler) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reminder, err := req.toModel()
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}
	reminder.UserID, _ = primitive.ObjectIDFromHex(claims.UserID)

	created, err := h.Service.CreateReminder(r.Context(), reminder)
	if err != nil {
		logger.Log.Errorf("Failed to create reminder: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GET /reminders
func (h *ReminderHandler) GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	reminders, err := h.Service.GetUserReminders(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch reminders: %v", err)
		http.Error(w, "Failed to get reminders", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(reminders)
}

// GET /reminders/{id}
func (h *ReminderHandler) GetReminderHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reminderID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	reminder, err := h.Service.GetReminder(r.Context(), reminderID, userID)
	if err != nil {
		http.Error(w, "Reminder not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(reminder)
}

// PUT /reminders/{id}
func (h *ReminderHandler) UpdateReminderHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reminderID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := req.toModel()
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	reminder, err := h.Service.UpdateReminder(r.Context(), reminderID, userID, updated)
	if err != nil {
		logger.Log.Errorf("Failed to update reminder: %v", err)
		http.Error(w, "Failed to update reminder", http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(reminder)
}

// DELETE /reminders/{id}
func (h *ReminderHandler) DeleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reminderID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	if err := h.Service.DeleteReminder(r.Context(), reminderID, userID); err != nil {
		logger.Log.Errorf("Failed to delete reminder: %v", err)
		http.Error(w, "Failed to delete reminder", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Reminder deleted"})
}
