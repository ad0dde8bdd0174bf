package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/api"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/auth"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/config"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/database"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/logger"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/mail"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/monitoring"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}
	if err := database.SeedRoles(db, func() string { return uuid.New().String() },
		models.RoleAdmin, models.RoleDirector, models.RoleTeacher, models.RoleStudent, models.RoleParent); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed roles")
	}

	// Set up the mail collaborator
	mailer, err := mail.NewSMTPMailer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize SMTP mailer")
	}

	// Set up the token issuer and access policy
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	policy := auth.DefaultPolicy()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db, eventService)
	authService := services.NewAuthService(userService, issuer, eventService)
	resetService := services.NewPasswordResetService(db, userService, mailer, eventService, cfg.ResetTokenTTL)
	roleService := services.NewRoleService(db, eventService)
	studentService := services.NewStudentService(db, eventService)
	employeeService := services.NewEmployeeService(db, eventService)
	classService := services.NewClassService(db, eventService)
	subjectService := services.NewSubjectService(db, eventService)
	scheduleService := services.NewScheduleService(db, eventService)
	markService := services.NewMarkService(db, eventService)
	attendanceService := services.NewAttendanceService(db, eventService)
	homeworkService := services.NewHomeworkService(db, eventService)
	announcementService := services.NewAnnouncementService(db, hub, eventService)
	messageService := services.NewMessageService(db, hub, userService, eventService)

	// Set up and run the background announcement publisher
	publisher := monitoring.NewPublisher(announcementService)
	go publisher.Run()

	// Set up router
	router := api.NewRouter(hub, issuer, policy, api.Services{
		Auth:         authService,
		Reset:        resetService,
		Users:        userService,
		Roles:        roleService,
		Students:     studentService,
		Employees:    employeeService,
		Classes:      classService,
		Subjects:     subjectService,
		Schedules:    scheduleService,
		Marks:        markService,
		Attendance:   attendanceService,
		Homework:     homeworkService,
		Announcement: announcementService,
		Messages:     messageService,
		Events:       eventService,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	publisher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
