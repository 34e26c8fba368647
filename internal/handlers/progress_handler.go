package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"github.com/Aidyn-B/Learning_Dashboard/internal/services"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/logger"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler records study progress and triggers the achievement check
// after every progress-affecting mutation.
type ProgressHandler struct {
	Progress     services.ProgressStore
	Achievements *services.AchievementService
}

func NewProgressHandler(progress services.ProgressStore, achievements *services.AchievementService) *ProgressHandler {
	return &ProgressHandler{Progress: progress, Achievements: achievements}
}

type progressRequest struct {
	GoalID       *string `json:"goal_id"`
	Minutes      int     `json:"minutes"`
	Notes        string  `json:"notes"`
	ActivityType string  `json:"activity_type"`
}

// POST /progress
func (h *ProgressHandler) CreateProgressLogHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Minutes <= 0 {
		http.Error(w, "Minutes must be positive", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	log := &models.ProgressLog{
		UserID:       userID,
		Minutes:      req.Minutes,
		Notes:        req.Notes,
		ActivityType: req.ActivityType,
	}
	if req.GoalID != nil {
		goalID, err := primitive.ObjectIDFromHex(*req.GoalID)
		if err != nil {
			http.Error(w, "Invalid goal ID", http.StatusBadRequest)
			return
		}
		log.GoalID = &goalID
	}

	created, err := h.Progress.CreateProgressLog(r.Context(), log)
	if err != nil {
		logger.Log.Errorf("Failed to create progress log: %v", err)
		http.Error(w, "Failed to log progress", http.StatusInternalServerError)
		return
	}

	// A missed badge never fails the logged progress.
	if err := h.Achievements.CheckAchievements(r.Context(), userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID.Hex()).Warn("Achievement check failed after progress log")
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// POST /achievements/check
func (h *ProgressHandler) CheckAchievementsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	if err := h.Achievements.CheckAchievements(r.Context(), userID); err != nil {
		logger.Log.Errorf("Achievement check failed: %v", err)
		http.Error(w, "Achievement check failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Achievements checked"})
}

// GET /achievements
func (h *ProgressHandler) GetAchievementsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	achievements, err := h.Achievements.GetUserAchievements(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch achievements: %v", err)
		http.Error(w, "Failed to get achievements", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(achievements)
}
