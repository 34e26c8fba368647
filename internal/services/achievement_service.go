package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type milestone struct {
	value           int64
	achievementType string
	title           string
	description     string
	badgeIcon       string
}

// Milestones fire on exact equality: the award can only trigger on the run
// where the stat lands on the milestone value. The stored achievement record
// is what makes each award one-time.
var (
	goalMilestones = []milestone{
		{1, "first_goal", "🎯 First Goal Completed", "You completed your very first goal!", "🎯"},
		{5, "five_goals", "⭐ Five Goals Completed", "Five goals down. You're building a habit!", "⭐"},
		{10, "ten_goals", "🏆 Ten Goals Completed", "Ten completed goals. Seriously impressive!", "🏆"},
	}
	streakMilestones = []milestone{
		{7, "week_streak", "🔥 7-Day Streak", "A full week of learning every day!", "🔥"},
		{30, "month_streak", "🔥 30-Day Streak", "Thirty days straight. Unstoppable!", "🔥"},
		{100, "hundred_streak", "💯 100-Day Streak", "One hundred consecutive learning days!", "💯"},
	}
)

// AchievementService evaluates milestone achievements after progress-affecting
// events. CheckAchievements is the manual trigger the request layer calls
// synchronously after a goal completion or progress log.
type AchievementService struct {
	achievements  AchievementStore
	notifications NotificationStore
	goals         GoalStore
	progress      ProgressStore
	now           func() time.Time
}

// NewAchievementService creates a new instance of AchievementService.
func NewAchievementService(achievements AchievementStore, notifications NotificationStore, goals GoalStore, progress ProgressStore) *AchievementService {
	return &AchievementService{
		achievements:  achievements,
		notifications: notifications,
		goals:         goals,
		progress:      progress,
		now:           time.Now,
	}
}

// CheckAchievements recomputes the user's completed-goal count and learning
// streak and awards any milestone they just reached. Failures are logged;
// the caller's mutation already succeeded and must not be rolled back over
// a missed badge.
func (s *AchievementService) CheckAchievements(ctx context.Context, userID primitive.ObjectID) error {
	completed, err := s.goals.CountCompletedGoals(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count completed goals: %v", err)
	}
	for _, m := range goalMilestones {
		if completed == m.value {
			s.award(ctx, userID, m)
		}
	}

	now := s.now()
	dates, err := s.progress.GetLogDatesSince(ctx, userID, now.AddDate(0, 0, -streakLookbackDays))
	if err != nil {
		return fmt.Errorf("failed to load progress dates: %v", err)
	}
	streak := int64(StreakFromDates(dates, now))
	for _, m := range streakMilestones {
		if streak == m.value {
			s.award(ctx, userID, m)
		}
	}

	return nil
}

// GetUserAchievements returns all achievements earned by a user.
func (s *AchievementService) GetUserAchievements(ctx context.Context, userID primitive.ObjectID) ([]models.Achievement, error) {
	return s.achievements.GetUserAchievements(ctx, userID)
}

func (s *AchievementService) award(ctx context.Context, userID primitive.ObjectID, m milestone) {
	earned, err := s.achievements.HasAchievement(ctx, userID, m.achievementType)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID.Hex()).Warn("Failed achievement lookup")
		return
	}
	if earned {
		return
	}

	achievement := &models.Achievement{
		UserID:          userID,
		AchievementType: m.achievementType,
		Title:           m.title,
		Description:     m.description,
		BadgeIcon:       m.badgeIcon,
		EarnedAt:        s.now(),
	}
	if err := s.achievements.CreateAchievement(ctx, achievement); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":          userID.Hex(),
			"achievement_type": m.achievementType,
		}).Warn("Failed to record achievement")
		return
	}

	notif := &models.Notification{
		UserID:   userID,
		Type:     models.NotificationTypeAchievement,
		Title:    m.title,
		Message:  m.description,
		Metadata: bson.M{"achievement_type": m.achievementType},
	}
	if err := s.notifications.CreateNotification(ctx, notif); err != nil {
		logrus.WithError(err).WithField("user_id", userID.Hex()).Warn("Failed to create achievement notification")
		return
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id":          userID.Hex(),
		"achievement_type": m.achievementType,
	}).Info("Achievement awarded")
}
