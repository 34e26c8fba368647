package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Aidyn-B/Learning_Dashboard/internal/config"
	"github.com/Aidyn-B/Learning_Dashboard/internal/database"
	"github.com/Aidyn-B/Learning_Dashboard/internal/handlers"
	"github.com/Aidyn-B/Learning_Dashboard/internal/repository"
	"github.com/Aidyn-B/Learning_Dashboard/internal/scheduler"
	"github.com/Aidyn-B/Learning_Dashboard/internal/services"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/email"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/logger"
	"github.com/Aidyn-B/Learning_Dashboard/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	// --- Mailer ---
	var mailer services.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)
	} else {
		logger.Log.Info("SMTP not configured, emails go to the log")
		mailer = &email.ConsoleMailer{}
	}

	// --- Services ---
	userService := services.NewUserService(userRepo)
	reminderService := services.NewReminderService(reminderRepo, notificationRepo, userRepo, mailer)
	notificationService := services.NewNotificationService(notificationRepo, goalRepo, userRepo, progressRepo, mailer)
	achievementService := services.NewAchievementService(achievementRepo, notificationRepo, goalRepo, progressRepo)

	// --- Background jobs ---
	sched := scheduler.New()
	if err := scheduler.RegisterJobs(sched, reminderService, notificationService, cfg.DigestHour); err != nil {
		log.Fatalf("Failed to register scheduled jobs: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// --- Handlers ---
	reminderHandler := handlers.NewReminderHandler(reminderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	progressHandler := handlers.NewProgressHandler(progressRepo, achievementService)

	router := mux.NewRouter()

	protectedReminderRoutes := router.PathPrefix("/reminders").Subrouter()
	protectedReminderRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedReminderRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedReminderRoutes.HandleFunc("", reminderHandler.CreateReminderHandler).Methods("POST")
	protectedReminderRoutes.HandleFunc("", reminderHandler.GetRemindersHandler).Methods("GET")
	protectedReminderRoutes.HandleFunc("/{id}", reminderHandler.GetReminderHandler).Methods("GET")
	protectedReminderRoutes.HandleFunc("/{id}", reminderHandler.UpdateReminderHandler).Methods("PUT")
	protectedReminderRoutes.HandleFunc("/{id}", reminderHandler.DeleteReminderHandler).Methods("DELETE")

	protectedNotificationRoutes := router.PathPrefix("/notifications").Subrouter()
	protectedNotificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedNotificationRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedNotificationRoutes.HandleFunc("", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	protectedNotificationRoutes.HandleFunc("", notificationHandler.DeleteAllNotificationsHandler).Methods("DELETE")
	protectedNotificationRoutes.HandleFunc("/read-all", notificationHandler.MarkAllReadHandler).Methods("POST")
	protectedNotificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")

	protectedProgressRoutes := router.PathPrefix("/progress").Subrouter()
	protectedProgressRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedProgressRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedProgressRoutes.HandleFunc("", progressHandler.CreateProgressLogHandler).Methods("POST")

	protectedAchievementRoutes := router.PathPrefix("/achievements").Subrouter()
	protectedAchievementRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedAchievementRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedAchievementRoutes.HandleFunc("", progressHandler.GetAchievementsHandler).Methods("GET")
	protectedAchievementRoutes.HandleFunc("/check", progressHandler.CheckAchievementsHandler).Methods("POST")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
