package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/api/handlers"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/auth"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/websocket"
)

// Services bundles everything the router needs wired in.
type Services struct {
	Auth         services.AuthServiceProvider
	Reset        services.PasswordResetServiceProvider
	Users        services.UserServiceProvider
	Roles        services.RoleServiceProvider
	Students     services.StudentServiceProvider
	Employees    services.EmployeeServiceProvider
	Classes      services.ClassServiceProvider
	Subjects     services.SubjectServiceProvider
	Schedules    services.ScheduleServiceProvider
	Marks        services.MarkServiceProvider
	Attendance   services.AttendanceServiceProvider
	Homework     services.HomeworkServiceProvider
	Announcement services.AnnouncementServiceProvider
	Messages     services.MessageServiceProvider
	Events       services.EventServiceProvider
}

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, issuer *auth.TokenIssuer, policy *auth.Policy, svc Services) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Auth, svc.Reset)
	userHandler := handlers.NewUserHandler(svc.Users)
	roleHandler := handlers.NewRoleHandler(svc.Roles)
	studentHandler := handlers.NewStudentHandler(svc.Students)
	employeeHandler := handlers.NewEmployeeHandler(svc.Employees)
	classHandler := handlers.NewClassHandler(svc.Classes, svc.Schedules)
	subjectHandler := handlers.NewSubjectHandler(svc.Subjects)
	scheduleHandler := handlers.NewScheduleHandler(svc.Schedules)
	markHandler := handlers.NewMarkHandler(svc.Marks)
	attendanceHandler := handlers.NewAttendanceHandler(svc.Attendance)
	homeworkHandler := handlers.NewHomeworkHandler(svc.Homework)
	announcementHandler := handlers.NewAnnouncementHandler(svc.Announcement)
	messageHandler := handlers.NewMessageHandler(svc.Messages)
	eventHandler := handlers.NewEventHandler(svc.Events)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/sign-in", authHandler.SignIn)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		// Everything below requires a valid bearer token; the policy then
		// gates the admin and director surfaces by role.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(issuer))
			r.Use(auth.RequirePolicy(policy))

			r.Get("/ws", wsHandler.Serve)

			r.Get("/me", userHandler.GetMe)
			r.Put("/me/password", userHandler.ChangePassword)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.GetAll)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", userHandler.Get)
					r.Put("/", userHandler.Update)
					r.Put("/active", userHandler.SetActive)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", roleHandler.GetAll)
				r.Post("/", roleHandler.Create)
				r.Delete("/{id}", roleHandler.Delete)
			})

			r.Route("/students", func(r chi.Router) {
				r.Get("/", studentHandler.GetAll)
				r.Post("/", studentHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", studentHandler.Get)
					r.Put("/", studentHandler.Update)
					r.Delete("/", studentHandler.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.GetAll)
				r.Post("/", employeeHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Delete)
				})
			})

			r.Route("/classes", func(r chi.Router) {
				r.Get("/", classHandler.GetAll)
				r.Post("/", classHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", classHandler.Get)
					r.Put("/", classHandler.Update)
					r.Delete("/", classHandler.Delete)
					r.Get("/schedules", classHandler.GetSchedules)
				})
			})

			r.Route("/subjects", func(r chi.Router) {
				r.Get("/", subjectHandler.GetAll)
				r.Post("/", subjectHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", subjectHandler.Get)
					r.Put("/", subjectHandler.Update)
					r.Delete("/", subjectHandler.Delete)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.GetAll)
				r.Post("/", scheduleHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", scheduleHandler.Get)
					r.Put("/", scheduleHandler.Update)
					r.Delete("/", scheduleHandler.Delete)
				})
			})

			r.Route("/marks", func(r chi.Router) {
				r.Get("/", markHandler.GetForStudent)
				r.Post("/", markHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", markHandler.Get)
					r.Put("/", markHandler.Update)
					r.Delete("/", markHandler.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetForStudent)
				r.Post("/", attendanceHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.Get)
					r.Put("/", attendanceHandler.Update)
					r.Delete("/", attendanceHandler.Delete)
				})
			})

			r.Route("/homework", func(r chi.Router) {
				r.Get("/", homeworkHandler.GetForSchedule)
				r.Post("/", homeworkHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", homeworkHandler.Get)
					r.Put("/", homeworkHandler.Update)
					r.Delete("/", homeworkHandler.Delete)
				})
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", announcementHandler.GetAll)
				r.Post("/", announcementHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", announcementHandler.Get)
					r.Put("/", announcementHandler.Update)
					r.Delete("/", announcementHandler.Delete)
					r.Post("/publish", announcementHandler.Publish)
				})
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/inbox", messageHandler.Inbox)
				r.Get("/sent", messageHandler.Sent)
				r.Post("/", messageHandler.Send)
				r.Put("/{id}/read", messageHandler.MarkRead)
				r.Delete("/{id}", messageHandler.Delete)
			})

			r.Get("/events", eventHandler.GetRecent)
		})
	})

	return r
}
