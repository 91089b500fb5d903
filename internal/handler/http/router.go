package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/insighthr/insighthr-backend-go/internal/domain/user"
	"github.com/insighthr/insighthr-backend-go/internal/handler/http/middleware"
	"github.com/insighthr/insighthr-backend-go/internal/handler/http/response"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/jwt"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/ratelimit"
)

type RouterConfig struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Attendance  AttendanceHandler
	Employee    EmployeeHandler
	KPI         KPIHandler
	Performance PerformanceHandler
	User        UserHandler
}

// NewRouter mounts every route under /api/v1. Kiosk attendance routes are
// public and rate limited per client IP; everything else needs a bearer token.
func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	callerResolver user.CallerResolver,
	kioskLimiter *ratelimit.KeyedLimiter,
	h Handlers,
) *chi.Mux {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  cfg.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	authenticated := func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
		r.Use(middleware.ResolveCaller(JWTService, callerResolver))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			// Kiosk, no authentication
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimitByIP(kioskLimiter))
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/{employeeId}/status", h.Attendance.KioskStatus)
			})

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Get("/", h.Attendance.ListAttendance)
				r.Post("/", h.Attendance.CreateAttendance)
				r.Post("/bulk", h.Attendance.BulkImport)
				r.Get("/{employeeId}/{date}", h.Attendance.GetAttendance)
				r.Put("/{employeeId}/{date}", h.Attendance.UpdateAttendance)
				r.Delete("/{employeeId}/{date}", h.Attendance.DeleteAttendance)
			})
		})

		r.Group(func(r chi.Router) {
			authenticated(r)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Post("/bulk", h.Employee.BulkImport)
				r.Get("/{employeeId}", h.Employee.GetEmployee)
				r.Put("/{employeeId}", h.Employee.UpdateEmployee)
				r.Delete("/{employeeId}", h.Employee.DeleteEmployee)
			})

			r.Route("/performance-scores", func(r chi.Router) {
				r.Get("/", h.Performance.ListScores)
				r.Post("/", h.Performance.CreateScore)
				r.Post("/bulk", h.Performance.BulkCreate)
				r.Get("/{employeeId}/{period}", h.Performance.GetScore)
				r.Put("/{employeeId}/{period}", h.Performance.UpdateScore)
				r.Delete("/{employeeId}/{period}", h.Performance.DeleteScore)
			})

			r.Route("/kpis", func(r chi.Router) {
				r.Get("/", h.KPI.ListKPIs)
				r.Post("/", h.KPI.CreateKPI)
				r.Get("/{kpiId}", h.KPI.GetKPI)
				r.Put("/{kpiId}", h.KPI.UpdateKPI)
				r.Delete("/{kpiId}", h.KPI.DisableKPI)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.GetMe)
				r.Put("/me", h.User.UpdateMe)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.User.ListUsers)
					r.Post("/", h.User.CreateUser)
					r.Put("/{userId}", h.User.UpdateUser)
					r.Delete("/{userId}", h.User.DeleteUser)
					r.Put("/{userId}/disable", h.User.DisableUser)
					r.Put("/{userId}/enable", h.User.EnableUser)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
